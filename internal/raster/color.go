package raster

import "math"

// Color is a display-space color with channels in [0, 1].
type Color struct {
	R, G, B float32
}

// RGB8 converts 8-bit display channels to a Color.
func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

var (
	Black = Color{}
	White = Color{1, 1, 1}
)

// Pixel is a stored canvas value. R, G and B hold the square of the display
// value, which approximates linear light, so all blending happens in
// (roughly) linear space. When the canvas is premultiplied the channels are
// also scaled by A.
type Pixel struct {
	R, G, B, A float32
}

// squared returns c in storage form with opacity a.
func squared(c Color, a float32, premultiplied bool) Pixel {
	p := Pixel{c.R * c.R, c.G * c.G, c.B * c.B, a}
	if premultiplied {
		p.R *= a
		p.G *= a
		p.B *= a
	}
	return p
}

func (p Pixel) black() bool {
	return p.R == 0 && p.G == 0 && p.B == 0
}

// over composites fg on top of bg.
func over(fg, bg Pixel, premultiplied bool) Pixel {
	k := 1 - fg.A
	a := fg.A + bg.A*k
	if premultiplied {
		return Pixel{fg.R + bg.R*k, fg.G + bg.G*k, fg.B + bg.B*k, a}
	}
	if a <= 0 {
		return Pixel{}
	}
	wb := bg.A * k
	inv := 1 / a
	return Pixel{
		(fg.R*fg.A + bg.R*wb) * inv,
		(fg.G*fg.A + bg.G*wb) * inv,
		(fg.B*fg.A + bg.B*wb) * inv,
		a,
	}
}

// average4 is an equal-weight mean. Sums are paired so that four identical
// inputs reproduce the input exactly.
func average4(p0, p1, p2, p3 Pixel) Pixel {
	return Pixel{
		((p0.R + p1.R) + (p2.R + p3.R)) * 0.25,
		((p0.G + p1.G) + (p2.G + p3.G)) * 0.25,
		((p0.B + p1.B) + (p2.B + p3.B)) * 0.25,
		((p0.A + p1.A) + (p2.A + p3.A)) * 0.25,
	}
}

// averageWeighted4 averages straight-alpha pixels with color weighted by
// opacity, so transparent samples do not darken the result.
func averageWeighted4(p0, p1, p2, p3 Pixel) Pixel {
	a := (p0.A + p1.A) + (p2.A + p3.A)
	if a <= 0 {
		return Pixel{}
	}
	inv := 1 / a
	return Pixel{
		((p0.R*p0.A + p1.R*p1.A) + (p2.R*p2.A + p3.R*p3.A)) * inv,
		((p0.G*p0.A + p1.G*p1.A) + (p2.G*p2.A + p3.G*p3.A)) * inv,
		((p0.B*p0.A + p1.B*p1.A) + (p2.B*p2.A + p3.B*p3.A)) * inv,
		a * 0.25,
	}
}

// encode8 turns a stored (squared) channel into an 8-bit display value.
func encode8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	return clamp255(math.Sqrt(float64(v)) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
