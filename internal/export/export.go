// Package export writes rendered frames to image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"softraster/internal/logging"
)

// ErrUnknownFormat is returned for format names other than webp, tga and
// png.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format selects the file encoder.
type Format int

const (
	WebP Format = iota
	TGA
	PNG
)

func (f Format) String() string {
	switch f {
	case WebP:
		return "webp"
	case TGA:
		return "tga"
	case PNG:
		return "png"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Ext is the file extension including the dot.
func (f Format) Ext() string {
	return "." + f.String()
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "webp":
		return WebP, nil
	case "tga":
		return TGA, nil
	case "png":
		return PNG, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Encode writes img to w. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case WebP:
		err = nativewebp.Encode(w, img, nil)
	case TGA:
		err = tga.Encode(w, img)
	case PNG:
		err = png.Encode(w, img)
	default:
		return fmt.Errorf("%w %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("export: %s encode: %w", f, err)
	}
	return nil
}

// WriteFile encodes img into path, creating parent directories.
func WriteFile(path string, img image.Image, f Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}

	b := img.Bounds()
	logging.Logger().Debug("frame written", "path", path, "width", b.Dx(), "height", b.Dy())
	return nil
}
