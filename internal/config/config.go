package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"softraster/internal/export"
	"softraster/internal/frustum"
	"softraster/internal/logging"
	"softraster/internal/raster"
	"softraster/internal/viewport"
)

// Config holds canvas, projection and output settings. Files may be JSON or
// TOML; both use the same snake_case keys.
type Config struct {
	// Canvas
	Width         int    `json:"width" toml:"width"`
	Height        int    `json:"height" toml:"height"`
	Antialias     string `json:"antialias" toml:"antialias"`
	Premultiplied bool   `json:"premultiplied" toml:"premultiplied"`
	MaxWidth      int    `json:"max_width" toml:"max_width"`
	MaxHeight     int    `json:"max_height" toml:"max_height"`

	// Projection
	Projection string  `json:"projection" toml:"projection"`
	FOVDegrees float64 `json:"fov_degrees" toml:"fov_degrees"`
	Near       float64 `json:"near" toml:"near"`
	Far        float64 `json:"far" toml:"far"`
	LineWidth  int     `json:"line_width" toml:"line_width"`
	Split      bool    `json:"split" toml:"split"`

	// Output
	Frames    int     `json:"frames" toml:"frames"`
	Format    string  `json:"format" toml:"format"`
	OutputDir string  `json:"output_dir" toml:"output_dir"`
	Scale     float64 `json:"scale" toml:"scale"`
}

// Load reads a config file. Files ending in .toml are decoded as TOML,
// everything else as JSON. Fields not set in the file keep their zero
// values.
func Load(path string) (Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path in the format picked by its extension.
func Save(path string, cfg Config) error {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("config: encode %s: %w", path, err)
		}
	} else {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("config: encode %s: %w", path, err)
		}
		buf.Write(data)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values and nil pointers leave the file setting alone.
type Flags struct {
	Width         int
	Height        int
	Antialias     string
	Premultiplied *bool
	Projection    string
	FOVDegrees    float64
	LineWidth     *int
	Split         *bool
	Frames        int
	Format        string
	OutputDir     string
	Scale         float64
}

// Resolve applies flags over the file values, then fills in defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Antialias != "" {
		c.Antialias = flags.Antialias
	}
	if flags.Premultiplied != nil {
		c.Premultiplied = *flags.Premultiplied
	}
	if flags.Projection != "" {
		c.Projection = flags.Projection
	}
	if flags.FOVDegrees > 0 {
		c.FOVDegrees = flags.FOVDegrees
	}
	if flags.LineWidth != nil {
		c.LineWidth = *flags.LineWidth
	}
	if flags.Split != nil {
		c.Split = *flags.Split
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 240
	}
	if c.Antialias == "" {
		c.Antialias = raster.AAMultiSample.String()
	}
	if c.Projection == "" {
		c.Projection = frustum.PerspectiveGL.String()
	}
	if c.FOVDegrees <= 0 {
		c.FOVDegrees = 60
	}
	if c.Near <= 0 {
		c.Near = 0.1
	}
	if c.Far <= 0 {
		c.Far = 100
	}
	if c.LineWidth < 0 {
		c.LineWidth = 0
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.OutputDir == "" {
		c.OutputDir = "frames"
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	c.MaxWidth = max(c.MaxWidth, c.Width, 1920)
	c.MaxHeight = max(c.MaxHeight, c.Height, 1080)

	logging.Logger().Debug("config resolved",
		"size", fmt.Sprintf("%dx%d", c.Width, c.Height),
		"antialias", c.Antialias,
		"projection", c.Projection,
		"frames", c.Frames,
		"format", c.Format)
}

// Validate checks the enumerated fields and numeric ranges. Call it after
// Resolve.
func (c *Config) Validate() error {
	var errs []error
	if _, err := raster.ParseMode(c.Antialias); err != nil {
		errs = append(errs, err)
	}
	if _, err := frustum.ParseKind(c.Projection); err != nil {
		errs = append(errs, err)
	}
	if _, err := export.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("config: size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Far <= c.Near {
		errs = append(errs, fmt.Errorf("config: far %g must exceed near %g", c.Far, c.Near))
	}
	if c.FOVDegrees >= 180 {
		errs = append(errs, fmt.Errorf("config: fov_degrees %g must be below 180", c.FOVDegrees))
	}
	return errors.Join(errs...)
}

// CanvasOptions converts the canvas settings. Unknown modes fall back to no
// antialiasing; Validate reports them.
func (c *Config) CanvasOptions() raster.Options {
	mode, _ := raster.ParseMode(c.Antialias)
	return raster.Options{Mode: mode, Premultiplied: c.Premultiplied}
}

// ViewOptions converts the projection settings.
func (c *Config) ViewOptions() viewport.Options {
	kind, err := frustum.ParseKind(c.Projection)
	if err != nil {
		kind = frustum.PerspectiveGL
	}
	return viewport.Options{
		Kind:        kind,
		FocalLength: viewport.FocalLength(c.FOVDegrees),
		Near:        c.Near,
		Far:         c.Far,
		LineWidth:   c.LineWidth,
	}
}
