package main

import (
	"flag"
	"fmt"
	"os"

	"softraster/internal/app"
	"softraster/internal/config"
	"softraster/internal/demo"
	"softraster/internal/host/window"
	"softraster/internal/logging"
	"softraster/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to a .json or .toml config file")
	width := flag.Int("width", 0, "Initial canvas width in pixels")
	height := flag.Int("height", 0, "Initial canvas height in pixels")
	aa := flag.String("aa", "", "Antialiasing: none, msaa, ssaa")
	projection := flag.String("projection", "", "Projection: gl, dx, ortho")
	scale := flag.Int("scale", 2, "Screen pixels per canvas pixel")
	spin := flag.Float64("spin", 0, "Camera turn rate in radians per second")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Width:      *width,
		Height:     *height,
		Antialias:  *aa,
		Projection: *projection,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	mem := raster.NewMemory(cfg.MaxWidth, cfg.MaxHeight)
	ctx, err := app.NewContext(mem, cfg.Width, cfg.Height, cfg.CanvasOptions())
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

	if err := window.Run(loop, window.Options{Title: "softraster", Scale: *scale}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
