package raster

import (
	"math"

	"softraster/internal/geom"
)

// Point is a screen-space position in logical pixels.
type Point struct {
	X, Y float64
}

// FillTriangle fills a flat-colored triangle at a single depth.
//
// Winding decides visibility: on the y-down screen a counter-clockwise
// triangle has negative signed area and is front facing; its vertices are
// swapped so the edge functions are positive inside. Clockwise (back facing)
// and zero-area triangles draw nothing.
//
// Pixels are sampled at their centers; a pixel is inside when all three
// barycentric weights are non-negative.
func (c *Canvas) FillTriangle(v0, v1, v2 Point, col Color, opacity, depth float32, clip *geom.Rect) {
	if opacity <= 0 {
		return
	}
	s := float64(c.scale)
	v0 = Point{v0.X * s, v0.Y * s}
	v1 = Point{v1.X * s, v1.Y * s}
	v2 = Point{v2.X * s, v2.Y * s}

	// Signed area from two edge vectors
	area := (v1.X-v0.X)*(v2.Y-v0.Y) - (v1.Y-v0.Y)*(v2.X-v0.X)
	if area >= 0 {
		return
	}
	v1, v2 = v2, v1
	area = -area

	// Bounding box of the pixel centers inside the triangle's extent
	box := geom.Rect{
		X: geom.Range{
			First: int(math.Floor(math.Min(math.Min(v0.X, v1.X), v2.X))),
			Last:  int(math.Ceil(math.Max(math.Max(v0.X, v1.X), v2.X))) - 1,
		},
		Y: geom.Range{
			First: int(math.Floor(math.Min(math.Min(v0.Y, v1.Y), v2.Y))),
			Last:  int(math.Ceil(math.Max(math.Max(v0.Y, v1.Y), v2.Y))) - 1,
		},
	}
	box = box.Intersect(c.bufferClip(clip))
	if box.Empty() {
		return
	}

	// Edge function setup, normalized so the three weights sum to 1.
	// wK is the weight of the vertex opposite edge K.
	invArea := 1 / area
	e0 := newEdgeFn(v1, v2, invArea)
	e1 := newEdgeFn(v2, v0, invArea)
	e2 := newEdgeFn(v0, v1, invArea)

	px := float64(box.X.First) + 0.5
	py := float64(box.Y.First) + 0.5
	r0, r1, r2 := e0.at(px, py), e1.at(px, py), e2.at(px, py)

	for y := box.Y.First; y <= box.Y.Last; y++ {
		w0, w1, w2 := r0, r1, r2
		inside := false
		for x := box.X.First; x <= box.X.Last; x++ {
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				inside = true
				c.SetPixel(x, y, col, opacity, depth)
			} else if inside {
				// Convex: once we leave, the rest of the row is outside.
				break
			}
			w0 += e0.stepX
			w1 += e1.stepX
			w2 += e2.stepX
		}
		r0 += e0.stepY
		r1 += e1.stepY
		r2 += e2.stepY
	}
}

// edgeFn is the normalized edge function of a→b evaluated incrementally.
type edgeFn struct {
	a            Point
	dx, dy       float64
	stepX, stepY float64
}

func newEdgeFn(a, b Point, invArea float64) edgeFn {
	dx := (b.X - a.X) * invArea
	dy := (b.Y - a.Y) * invArea
	return edgeFn{a: a, dx: dx, dy: dy, stepX: -dy, stepY: dx}
}

func (e edgeFn) at(x, y float64) float64 {
	return e.dx*(y-e.a.Y) - e.dy*(x-e.a.X)
}
