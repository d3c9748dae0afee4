package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"softraster/internal/app"
	"softraster/internal/config"
	"softraster/internal/demo"
	"softraster/internal/host/term"
	"softraster/internal/logging"
	"softraster/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to a .json or .toml config file")
	aa := flag.String("aa", "", "Antialiasing: none, msaa, ssaa")
	projection := flag.String("projection", "", "Projection: gl, dx, ortho")
	fps := flag.Int("fps", 30, "Frames per second")
	spin := flag.Float64("spin", 0.3, "Camera turn rate in radians per second")
	logFile := flag.String("log", "", "Write logs to this file")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	// The terminal belongs to the UI; logs only go to a file.
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logging.SetLogger(logging.NewText(logOut, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{Antialias: *aa, Projection: *projection})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Start small; the first window size message resizes to the terminal.
	mem := raster.NewMemory(cfg.MaxWidth, cfg.MaxHeight)
	ctx, err := app.NewContext(mem, 80, 44, cfg.CanvasOptions())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	loop := app.NewLoop(ctx, demo.New(demo.Options{
		View:  cfg.ViewOptions(),
		Split: cfg.Split,
		Spin:  *spin,
		Yaw:   0.6,
		Pitch: 0.45,
	}))

	if err := term.Run(loop, term.Options{FPS: *fps}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
