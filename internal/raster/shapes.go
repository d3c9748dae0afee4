package raster

import "softraster/internal/geom"

// FillRect fills the logical rectangle r.
func (c *Canvas) FillRect(r geom.Rect, col Color, opacity, depth float32, clip *geom.Rect) {
	if opacity <= 0 || r.Empty() {
		return
	}
	c.fillBuffer(r.Scale(c.scale).Intersect(c.bufferClip(clip)), col, opacity, depth)
}

// DrawRect outlines r with a one logical pixel border. Corners are written
// once.
func (c *Canvas) DrawRect(r geom.Rect, col Color, opacity, depth float32, clip *geom.Rect) {
	if opacity <= 0 || r.Empty() {
		return
	}
	top := geom.Rect{X: r.X, Y: geom.Range{First: r.Y.First, Last: r.Y.First}}
	c.FillRect(top, col, opacity, depth, clip)
	if r.Y.Len() == 1 {
		return
	}
	bottom := geom.Rect{X: r.X, Y: geom.Range{First: r.Y.Last, Last: r.Y.Last}}
	c.FillRect(bottom, col, opacity, depth, clip)

	sides := geom.Range{First: r.Y.First + 1, Last: r.Y.Last - 1}
	c.FillRect(geom.Rect{X: geom.Range{First: r.X.First, Last: r.X.First}, Y: sides}, col, opacity, depth, clip)
	if r.X.Len() > 1 {
		c.FillRect(geom.Rect{X: geom.Range{First: r.X.Last, Last: r.X.Last}, Y: sides}, col, opacity, depth, clip)
	}
}

// FillCircle fills the disc of radius r around logical pixel (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int, col Color, opacity, depth float32, clip *geom.Rect) {
	c.circle(cx, cy, r, true, col, opacity, depth, clip)
}

// DrawCircle outlines the circle of radius r around logical pixel (cx, cy).
func (c *Canvas) DrawCircle(cx, cy, r int, col Color, opacity, depth float32, clip *geom.Rect) {
	c.circle(cx, cy, r, false, col, opacity, depth, clip)
}

// circle steps the midpoint scheme one row at a time, tracking the squared
// radius instead of evaluating any trigonometry. Every row is collapsed into
// horizontal spans mirrored about the center so no pixel is written twice.
//
// Offsets are kept doubled so one test covers both layouts: with scale 1 the
// center is a pixel center, in supersample mode it is the corner shared by
// the four buffer pixels of logical pixel (cx, cy).
func (c *Canvas) circle(cx, cy, r int, fill bool, col Color, opacity, depth float32, clip *geom.Rect) {
	if opacity <= 0 || r <= 0 {
		return
	}
	bounds := c.bufferClip(clip)
	if bounds.Empty() {
		return
	}

	s := c.scale
	half := s - 1
	// Left/top and right/bottom pixels at offset 0.
	x0, x1 := cx*s, cx*s+half
	y0, y1 := cy*s, cy*s+half
	rb := r * s
	box := geom.Rect{X: geom.Range{First: x0 - rb, Last: x1 + rb}, Y: geom.Range{First: y0 - rb, Last: y1 + rb}}
	if box.Intersect(bounds).Empty() {
		return
	}

	limit := 4 * s * s * (r*r + r)
	inside := func(i, j int) bool {
		a, b := 2*i+half, 2*j+half
		return a*a+b*b <= limit
	}

	x := rb
	for dy := 0; dy <= rb; dy++ {
		for x >= 0 && !inside(x, dy) {
			x--
		}
		if x < 0 {
			break
		}
		lo := 0
		if !fill {
			// Next row's half width; the ring is what this row adds.
			next := x
			for next >= 0 && !inside(next, dy+1) {
				next--
			}
			lo = min(next+1, x)
		}
		c.mirroredSpans(x0, x1, y1+dy, lo, x, col, opacity, depth, bounds)
		if y0-dy != y1+dy {
			c.mirroredSpans(x0, x1, y0-dy, lo, x, col, opacity, depth, bounds)
		}
	}
}

// mirroredSpans writes [x1+lo, x1+hi] and [x0-hi, x0-lo] on row y, merging
// them when lo is 0.
func (c *Canvas) mirroredSpans(x0, x1, y, lo, hi int, col Color, opacity, depth float32, bounds geom.Rect) {
	if lo == 0 {
		c.hspan(x0-hi, x1+hi, y, col, opacity, depth, bounds)
		return
	}
	c.hspan(x1+lo, x1+hi, y, col, opacity, depth, bounds)
	c.hspan(x0-hi, x0-lo, y, col, opacity, depth, bounds)
}

func (c *Canvas) hspan(x0, x1, y int, col Color, opacity, depth float32, bounds geom.Rect) {
	if !bounds.Y.Contains(y) {
		return
	}
	xs := geom.Range{First: x0, Last: x1}.Intersect(bounds.X)
	for x := xs.First; x <= xs.Last; x++ {
		c.SetPixel(x, y, col, opacity, depth)
	}
}

// fillBuffer writes every pixel of a rectangle already in buffer coordinates.
func (c *Canvas) fillBuffer(r geom.Rect, col Color, opacity, depth float32) {
	for y := r.Y.First; y <= r.Y.Last; y++ {
		for x := r.X.First; x <= r.X.Last; x++ {
			c.SetPixel(x, y, col, opacity, depth)
		}
	}
}
