package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"softraster/internal/frustum"
	"softraster/internal/raster"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSONAndTOML(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "render.json", `{"width": 640, "antialias": "ssaa", "near": 0.5, "split": true}`},
		{"toml", "render.toml", "width = 640\nantialias = \"ssaa\"\nnear = 0.5\nsplit = true\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tc.file, tc.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Width != 640 || cfg.Antialias != "ssaa" || cfg.Near != 0.5 || !cfg.Split {
				t.Errorf("loaded %+v", cfg)
			}
			if cfg.Height != 0 {
				t.Errorf("unset height = %d, want 0", cfg.Height)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
	if _, err := Load(writeFile(t, "bad.json", "{")); err == nil || !strings.HasPrefix(err.Error(), "config: parse") {
		t.Errorf("bad json error = %v", err)
	}
	if _, err := Load(writeFile(t, "bad.toml", "width = ")); err == nil {
		t.Error("bad toml loaded")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	for _, name := range []string{"out.json", "out.toml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := Save(path, cfg); err != nil {
			t.Fatalf("Save %s: %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load %s: %v", name, err)
		}
		if got != cfg {
			t.Errorf("%s round trip: %+v, want %+v", name, got, cfg)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Antialias != "msaa" || cfg.Projection != "gl" || cfg.Format != "webp" {
		t.Errorf("enums %q %q %q", cfg.Antialias, cfg.Projection, cfg.Format)
	}
	if cfg.Frames != 1 || cfg.Scale != 1 || cfg.FOVDegrees != 60 {
		t.Errorf("frames %d scale %v fov %v", cfg.Frames, cfg.Scale, cfg.FOVDegrees)
	}
	if cfg.MaxWidth < cfg.Width || cfg.MaxHeight < cfg.Height {
		t.Error("max size below canvas size")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	off := false
	cfg := Config{Width: 100, Premultiplied: true, Split: true, Projection: "dx"}
	cfg.Resolve(Flags{Width: 4000, Antialias: "none", Premultiplied: &off, Format: "tga"})

	if cfg.Width != 4000 || cfg.MaxWidth != 4000 {
		t.Errorf("width %d max %d", cfg.Width, cfg.MaxWidth)
	}
	if cfg.Premultiplied {
		t.Error("premultiplied flag ignored")
	}
	if !cfg.Split {
		t.Error("nil split flag cleared the file value")
	}
	if cfg.Projection != "dx" || cfg.Antialias != "none" || cfg.Format != "tga" {
		t.Errorf("%q %q %q", cfg.Projection, cfg.Antialias, cfg.Format)
	}
}

func TestResolveLineWidthFlag(t *testing.T) {
	zero, three := 0, 3
	tests := []struct {
		name string
		flag *int
		want int
	}{
		{"unset keeps file", nil, 2},
		{"zero clears file", &zero, 0},
		{"override", &three, 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{LineWidth: 2}
			cfg.Resolve(Flags{LineWidth: tc.flag})
			if cfg.LineWidth != tc.want {
				t.Errorf("LineWidth = %d, want %d", cfg.LineWidth, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"antialias", func(c *Config) { c.Antialias = "fxaa" }, "antialias"},
		{"projection", func(c *Config) { c.Projection = "fisheye" }, "projection"},
		{"format", func(c *Config) { c.Format = "gif" }, "format"},
		{"depth range", func(c *Config) { c.Far = c.Near }, "far"},
		{"fov", func(c *Config) { c.FOVDegrees = 200 }, "fov"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestConversions(t *testing.T) {
	cfg := Config{Antialias: "ssaa", Premultiplied: true, Projection: "ortho", FOVDegrees: 90, Near: 1, Far: 50, LineWidth: 2}
	if got := cfg.CanvasOptions(); got != (raster.Options{Mode: raster.AASuperSample, Premultiplied: true}) {
		t.Errorf("CanvasOptions = %+v", got)
	}
	v := cfg.ViewOptions()
	if v.Kind != frustum.Orthographic || v.Near != 1 || v.Far != 50 || v.LineWidth != 2 {
		t.Errorf("ViewOptions = %+v", v)
	}
	if v.FocalLength < 0.999 || v.FocalLength > 1.001 {
		t.Errorf("focal length %v, want 1 for 90°", v.FocalLength)
	}
}
