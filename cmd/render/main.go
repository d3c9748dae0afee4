package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"softraster/internal/app"
	"softraster/internal/batch"
	"softraster/internal/config"
	"softraster/internal/demo"
	"softraster/internal/export"
	"softraster/internal/logging"
	"softraster/internal/raster"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .toml config file")
	width := flag.Int("width", 0, "Canvas width in pixels (default: 320)")
	height := flag.Int("height", 0, "Canvas height in pixels (default: 240)")
	aa := flag.String("aa", "", "Antialiasing: none, msaa, ssaa (default: msaa)")
	premul := flag.Bool("premul", false, "Store premultiplied colors")
	projection := flag.String("projection", "", "Projection: gl, dx, ortho (default: gl)")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees (default: 60)")
	lineWidth := flag.Int("line-width", 0, "Extra line width in pixels")
	split := flag.Bool("split", false, "Add top, front and side orthographic views")
	frames := flag.Int("frames", 0, "Number of frames to render (default: 1)")
	spin := flag.Float64("spin", 0.5, "Camera turn rate in radians per second")
	format := flag.String("format", "", "Output format: webp, tga, png (default: webp)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	scale := flag.Float64("scale", 0, "Resize frames by this factor before encoding")
	verbose := flag.Bool("v", false, "Verbose logging")
	writeConfig := flag.String("write-config", "", "Write the resolved config to this path and exit")

	flag.Parse()

	logging.SetLogger(logging.NewText(os.Stderr, *verbose))

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:         *width,
		Height:        *height,
		Antialias:     *aa,
		Premultiplied: setBool("premul", *premul),
		Projection:    *projection,
		FOVDegrees:    *fov,
		LineWidth:     setInt("line-width", *lineWidth),
		Split:         setBool("split", *split),
		Frames:        *frames,
		Format:        *format,
		OutputDir:     *outputDir,
		Scale:         *scale,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config:\n%v\n", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := config.Save(*writeConfig, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config: %s\n", *writeConfig)
		return
	}

	outFormat, _ := export.ParseFormat(cfg.Format)
	canvasOpts := cfg.CanvasOptions()
	viewOpts := cfg.ViewOptions()

	mem := raster.NewMemory(cfg.MaxWidth, cfg.MaxHeight)
	actx, err := app.NewContext(mem, cfg.Width, cfg.Height, canvasOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	actx.Window.Title = "softraster"
	loop := app.NewLoop(actx, demo.New(demo.Options{
		View:  viewOpts,
		Split: cfg.Split,
		Spin:  *spin,
		Yaw:   0.6,
		Pitch: 0.45,
	}))

	fmt.Printf("softraster → %s\n", outFormat)
	fmt.Printf("Canvas: %dx%d %s premultiplied=%v, projection %s\n",
		cfg.Width, cfg.Height, canvasOpts.Mode, canvasOpts.Premultiplied, viewOpts.Kind)
	fmt.Printf("Frames: %d\n", cfg.Frames)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	step := time.Second / 30

	// Run batch
	results, err := batch.Run(ctx, batch.Config{
		OutputDir: cfg.OutputDir,
		Format:    outFormat,
		Frames:    cfg.Frames,
		Step:      step,
		Scale:     cfg.Scale,
	}, loop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var failures []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			failures = append(failures, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, cfg.Frames)

	if len(failures) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(20, len(failures))
		for _, f := range failures[:limit] {
			fmt.Printf("  frame %d: %s\n", f.Index, f.Error)
		}
	}

	// Write manifest
	manifest := batch.NewManifest(results)
	manifest.Antialias = canvasOpts.Mode.String()
	manifest.Premultiplied = canvasOpts.Premultiplied
	manifest.Projection = viewOpts.Kind.String()
	manifest.Format = outFormat.String()
	manifest.StepMillis = step.Milliseconds()

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 || err != nil {
		os.Exit(1)
	}
}

// setBool returns &v if the named flag was given on the command line.
func setBool(name string, v bool) *bool {
	if !isSet(name) {
		return nil
	}
	return &v
}

// setInt returns &v if the named flag was given on the command line.
func setInt(name string, v int) *int {
	if !isSet(name) {
		return nil
	}
	return &v
}

func isSet(name string) bool {
	var set bool
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
