package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"softraster/internal/app"
	"softraster/internal/export"
	"softraster/internal/logging"
)

// Config holds the settings of one batch run.
type Config struct {
	OutputDir string
	Format    export.Format
	Frames    int
	// Step is the simulated time between frames.
	Step time.Duration
	// Scale resizes each frame before encoding; 1 keeps the canvas size.
	Scale float64
	// Prefix names the files: <prefix><index>.<ext>.
	Prefix string
}

// Result holds the outcome of one frame.
type Result struct {
	Index   int
	Image   string // path relative to OutputDir
	Width   int
	Height  int
	Success bool
	Error   string
}

// Run renders cfg.Frames frames through loop and writes each one to
// OutputDir. A frame that fails to encode is recorded in its Result and
// does not stop the run; errors from the loop itself do.
func Run(ctx context.Context, cfg Config, loop *app.Loop) ([]Result, error) {
	if cfg.Frames <= 0 {
		cfg.Frames = 1
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "frame"
	}
	total := cfg.Frames
	results := make([]Result, 0, total)
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					logging.Logger().Info("progress",
						"done", p, "total", total,
						"fps", fmt.Sprintf("%.1f", float64(p)/elapsed))
				}
			}
		}
	}()

	err := loop.Run(ctx, total, cfg.Step, func(i int, c *app.Context) error {
		results = append(results, writeFrame(cfg, i, c))
		processed.Add(1)
		return nil
	})
	return results, err
}

func writeFrame(cfg Config, index int, c *app.Context) Result {
	name := fmt.Sprintf("%s%04d%s", cfg.Prefix, index, cfg.Format.Ext())
	res := Result{Index: index, Image: name}

	img := c.Canvas.Image()
	if cfg.Scale > 0 && cfg.Scale != 1 {
		b := img.Bounds()
		w, h := export.ScaleSize(b.Dx(), b.Dy(), cfg.Scale)
		img = export.Rescale(img, w, h)
	}
	res.Width, res.Height = img.Bounds().Dx(), img.Bounds().Dy()

	if err := export.WriteFile(filepath.Join(cfg.OutputDir, name), img, cfg.Format); err != nil {
		res.Error = err.Error()
		logging.Logger().Warn("frame failed", "index", index, "err", err)
		return res
	}
	res.Success = true
	return res
}
