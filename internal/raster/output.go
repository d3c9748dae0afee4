package raster

import (
	"image"
	"math"
)

// PackRGB resolves antialiasing, gamma-encodes and packs every logical pixel
// as 0x00RRGGBB, row-major. dst must hold Width*Height entries; a shorter
// slice is filled as far as it goes.
func (c *Canvas) PackRGB(dst []uint32) {
	n := min(len(dst), c.width*c.height)
	for i := 0; i < n; i++ {
		r, g, b := c.RGB(i%c.width, i/c.width)
		dst[i] = uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
}

// RGBA writes opaque RGBA bytes (alpha 255), the layout window blitters
// expect. dst must hold Width*Height*4 bytes.
func (c *Canvas) RGBA(dst []byte) {
	n := min(len(dst)/4, c.width*c.height)
	for i := 0; i < n; i++ {
		r, g, b := c.RGB(i%c.width, i/c.width)
		j := i * 4
		dst[j] = r
		dst[j+1] = g
		dst[j+2] = b
		dst[j+3] = 0xFF
	}
}

// Image returns the canvas as a straight-alpha NRGBA image, for encoders
// that keep transparency.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		off := y * img.Stride
		for x := 0; x < c.width; x++ {
			p := c.Pixel(x, y)
			if c.premultiplied && p.A > 0 {
				inv := 1 / p.A
				p.R *= inv
				p.G *= inv
				p.B *= inv
			}
			i := off + x*4
			img.Pix[i] = encode8(p.R)
			img.Pix[i+1] = encode8(p.G)
			img.Pix[i+2] = encode8(p.B)
			img.Pix[i+3] = clamp255(math.Min(float64(p.A), 1) * 255)
		}
	}
	return img
}
