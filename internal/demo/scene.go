package demo

import (
	"math"

	"softraster/internal/geom"
	"softraster/internal/mathutil"
	"softraster/internal/raster"
	"softraster/internal/viewport"
)

// Line is a world-space segment.
type Line struct {
	A, B    mathutil.Vec3
	Color   raster.Color
	Opacity float32
}

// Triangle is a world-space triangle. It is drawn from both sides.
type Triangle struct {
	A, B, C mathutil.Vec3
	Color   raster.Color
	Opacity float32
}

// Normal is the unit face normal, zero for a degenerate triangle.
func (t Triangle) Normal() mathutil.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A)).Normalize()
}

// Shaded returns the triangle color lit by lightDir from either side.
func (t Triangle) Shaded() raster.Color {
	k := float32(ambient + (1-ambient)*math.Abs(t.Normal().Dot(lightDir)))
	return raster.Color{R: t.Color.R * k, G: t.Color.G * k, B: t.Color.B * k}
}

// Scene is static world geometry.
type Scene struct {
	Lines     []Line
	Triangles []Triangle
}

var (
	gridColor  = raster.RGB8(90, 90, 100)
	boxColor   = raster.RGB8(240, 240, 240)
	axisX      = raster.RGB8(230, 60, 60)
	axisY      = raster.RGB8(60, 220, 90)
	axisZ      = raster.RGB8(70, 110, 240)
	warmColor  = raster.RGB8(250, 150, 40)
	coolColor  = raster.RGB8(40, 200, 220)
	background = raster.RGB8(18, 18, 24)
)

// lightDir points toward the light. Faces get ambient plus a two-sided
// diffuse term.
var lightDir = mathutil.Vec3{0.4, 0.8, -0.45}.Normalize()

const ambient = 0.35

// DefaultScene is a ground grid, the three axes, a wireframe box resting on
// the grid and two interpenetrating triangles inside it.
func DefaultScene() *Scene {
	s := &Scene{}

	// Grid
	const half = 5
	for i := -half; i <= half; i++ {
		f := float64(i)
		s.Lines = append(s.Lines,
			Line{A: mathutil.Vec3{f, 0, -half}, B: mathutil.Vec3{f, 0, half}, Color: gridColor, Opacity: 0.6},
			Line{A: mathutil.Vec3{-half, 0, f}, B: mathutil.Vec3{half, 0, f}, Color: gridColor, Opacity: 0.6},
		)
	}

	// Axes
	o := mathutil.Vec3{}
	s.Lines = append(s.Lines,
		Line{A: o, B: mathutil.Vec3{2, 0, 0}, Color: axisX, Opacity: 1},
		Line{A: o, B: mathutil.Vec3{0, 2, 0}, Color: axisY, Opacity: 1},
		Line{A: o, B: mathutil.Vec3{0, 0, 2}, Color: axisZ, Opacity: 1},
	)

	s.AddBox(mathutil.Vec3{-1, 0, -1}, mathutil.Vec3{1, 2, 1}, boxColor, 1)

	s.Triangles = append(s.Triangles,
		Triangle{
			A: mathutil.Vec3{-0.9, 0.1, 0}, B: mathutil.Vec3{0.9, 0.1, 0}, C: mathutil.Vec3{0, 1.9, 0},
			Color: warmColor, Opacity: 1,
		},
		Triangle{
			A: mathutil.Vec3{0, 0.1, -0.9}, B: mathutil.Vec3{0, 0.1, 0.9}, C: mathutil.Vec3{0, 1.6, 0},
			Color: coolColor, Opacity: 0.7,
		},
	)
	return s
}

// AddBox appends the twelve edges of the axis-aligned box [lo, hi].
func (s *Scene) AddBox(lo, hi mathutil.Vec3, col raster.Color, opacity float32) {
	corner := func(i int) mathutil.Vec3 {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		return c
	}
	for i := 0; i < 8; i++ {
		for bit := 1; bit < 8; bit <<= 1 {
			if i&bit == 0 {
				s.Lines = append(s.Lines, Line{A: corner(i), B: corner(i | bit), Color: col, Opacity: opacity})
			}
		}
	}
}

// Bounds returns the box enclosing all geometry.
func (s *Scene) Bounds() (lo, hi mathutil.Vec3) {
	first := true
	grow := func(p mathutil.Vec3) {
		if first {
			lo, hi, first = p, p, false
			return
		}
		lo, hi = lo.Min(p), hi.Max(p)
	}
	for _, l := range s.Lines {
		grow(l.A)
		grow(l.B)
	}
	for _, t := range s.Triangles {
		grow(t.A)
		grow(t.B)
		grow(t.C)
	}
	return lo, hi
}

// DrawStats counts what survived clipping.
type DrawStats struct {
	Lines     int
	Triangles int
}

// Draw renders the scene into v. Triangles go first so lines drawn on top
// of them at equal depth stay visible.
func (s *Scene) Draw(v *viewport.Viewport, clip *geom.Rect) DrawStats {
	var st DrawStats
	for _, t := range s.Triangles {
		// Only one of the two windings faces the camera.
		col := t.Shaded()
		a := v.DrawWorldTriangle(t.A, t.B, t.C, col, t.Opacity, clip)
		b := v.DrawWorldTriangle(t.A, t.C, t.B, col, t.Opacity, clip)
		if a || b {
			st.Triangles++
		}
	}
	for _, l := range s.Lines {
		if v.DrawWorldLine(l.A, l.B, l.Color, l.Opacity, clip) {
			st.Lines++
		}
	}
	return st
}
