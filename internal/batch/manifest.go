package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// Manifest describes a rendered sequence.
type Manifest struct {
	Antialias     string          `json:"antialias"`
	Premultiplied bool            `json:"premultiplied"`
	Projection    string          `json:"projection"`
	Format        string          `json:"format"`
	StepMillis    int64           `json:"step_ms"`
	Frames        []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Index  int    `json:"index"`
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// NewManifest lists the successful frames of results.
func NewManifest(results []Result) Manifest {
	m := Manifest{Frames: []ManifestEntry{}}
	for _, r := range results {
		if !r.Success {
			continue
		}
		m.Frames = append(m.Frames, ManifestEntry{
			Index:  r.Index,
			Image:  r.Image,
			Width:  r.Width,
			Height: r.Height,
		})
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("batch: read %s: %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	return m, nil
}
