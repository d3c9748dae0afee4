package raster

import (
	"math"

	"softraster/internal/geom"
)

// lineJob carries the per-call constants of one line through the stepping
// branches.
type lineJob struct {
	col     Color
	opacity float32
	width   int
	bounds  geom.Rect // buffer coordinates

	// 1/z at both ends; both zero for depth-less overlay lines
	invZ0, invZ1 float64
	overlay      bool
}

// DrawLine rasterizes an antialiased line between two screen positions with
// camera-space depths z0 and z1. A depth of 0 at either end draws the line as
// depth-less overlay content. lineWidth adds that many fully covered pixels
// across the line. clip optionally restricts drawing to a logical
// sub-rectangle.
//
// The crossed pixel of every step gets the full opacity and its two
// neighbours across the line get opacity scaled by the sub-pixel position,
// which gives a soft one pixel edge. Depth is interpolated as 1/z.
func (c *Canvas) DrawLine(x0, y0, z0, x1, y1, z1 float64, col Color, opacity float32, lineWidth int, clip *geom.Rect) {
	j, ok := c.newLineJob(z0, z1, col, opacity, lineWidth, clip)
	if !ok {
		return
	}
	s := float64(c.scale)
	x0, y0, x1, y1 = x0*s, y0*s, x1*s, y1*s

	switch {
	case x0 == x1 && y0 == y1:
		return
	case y0 == y1:
		c.lineHorizontal(j, x0, x1, y0)
	case x0 == x1:
		c.lineVertical(j, y0, y1, x0)
	default:
		c.lineGeneral(j, x0, y0, x1, y1)
	}
}

func (c *Canvas) newLineJob(z0, z1 float64, col Color, opacity float32, lineWidth int, clip *geom.Rect) (*lineJob, bool) {
	if opacity <= 0 {
		return nil, false
	}
	bounds := c.bufferClip(clip)
	if bounds.Empty() {
		return nil, false
	}
	j := &lineJob{
		col:     col,
		opacity: min(opacity, 1),
		width:   max(lineWidth, 0) * c.scale,
		bounds:  bounds,
	}
	if z0 == 0 || z1 == 0 {
		j.overlay = true
	} else {
		j.invZ0, j.invZ1 = 1/z0, 1/z1
	}
	return j, true
}

// lineGeneral handles any direction by mapping the line onto a major axis a
// and a minor axis b. steep lines step along y.
func (c *Canvas) lineGeneral(j *lineJob, x0, y0, x1, y1 float64) {
	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	a0, b0, a1, b1 := x0, y0, x1, y1
	if steep {
		a0, b0, a1, b1 = y0, x0, y1, x1
	}
	if a0 == a1 {
		return
	}
	if a0 > a1 {
		a0, b0, a1, b1 = a1, b1, a0, b0
		j.invZ0, j.invZ1 = j.invZ1, j.invZ0
	}

	slope := (b1 - b0) / (a1 - a0)
	first, last, ok := j.majorCells(steep, a0, a1)
	if !ok {
		return
	}
	for cell := first; cell <= last; cell++ {
		cov, m, d, nb := j.sample(cell, a0, a1)
		if cov <= 0 {
			continue
		}
		b := b0 + slope*(m-a0)
		c.crossSection(j, steep, cell, b, j.opacity*cov, d, nb)
	}
}

// lineHorizontal is lineGeneral for y0 == y1: the cross section position is
// the same for every step.
func (c *Canvas) lineHorizontal(j *lineJob, x0, x1, y float64) {
	if x0 > x1 {
		x0, x1 = x1, x0
		j.invZ0, j.invZ1 = j.invZ1, j.invZ0
	}
	first, last, ok := j.majorCells(false, x0, x1)
	if !ok {
		return
	}
	for cell := first; cell <= last; cell++ {
		cov, _, d, nb := j.sample(cell, x0, x1)
		if cov <= 0 {
			continue
		}
		c.crossSection(j, false, cell, y, j.opacity*cov, d, nb)
	}
}

// lineVertical is lineGeneral for x0 == x1.
func (c *Canvas) lineVertical(j *lineJob, y0, y1, x float64) {
	if y0 > y1 {
		y0, y1 = y1, y0
		j.invZ0, j.invZ1 = j.invZ1, j.invZ0
	}
	first, last, ok := j.majorCells(true, y0, y1)
	if !ok {
		return
	}
	for cell := first; cell <= last; cell++ {
		cov, _, d, nb := j.sample(cell, y0, y1)
		if cov <= 0 {
			continue
		}
		c.crossSection(j, true, cell, x, j.opacity*cov, d, nb)
	}
}

// majorCells returns the cells [first, last] along the major axis touched by
// [a0, a1], limited to the clip bounds.
func (j *lineJob) majorCells(steep bool, a0, a1 float64) (int, int, bool) {
	r := j.bounds.X
	if steep {
		r = j.bounds.Y
	}
	first := max(int(math.Floor(a0)), r.First)
	last := min(int(math.Ceil(a1))-1, r.Last)
	return first, last, first <= last
}

// sample evaluates a major-axis cell: its coverage by [a0, a1] (endpoint
// cells are partially covered by their sub-pixel overhang), the sample
// position m, the perspective-correct depth there and, for multi-sample
// canvases, the depths half a step before and after.
func (j *lineJob) sample(cell int, a0, a1 float64) (cov float32, m float64, depth float32, neighbors [2]float32) {
	lo := math.Max(float64(cell), a0)
	hi := math.Min(float64(cell+1), a1)
	cov = float32(hi - lo)

	m = math.Min(math.Max(float64(cell)+0.5, a0), a1)
	if j.overlay {
		return cov, m, 0, neighbors
	}
	span := a1 - a0
	depth = j.depthAt((m - a0) / span)
	neighbors[0] = j.depthAt((math.Max(m-0.5, a0) - a0) / span)
	neighbors[1] = j.depthAt((math.Min(m+0.5, a1) - a0) / span)
	return cov, m, depth, neighbors
}

// depthAt interpolates 1/z linearly in screen space and inverts it back.
func (j *lineJob) depthAt(t float64) float32 {
	inv := j.invZ0 + (j.invZ1-j.invZ0)*t
	if inv <= 0 {
		return float32(math.Inf(1))
	}
	return float32(1 / inv)
}

// crossSection paints one step: the crossed pixel (plus width extra pixels)
// at full opacity and one soft pixel on either side.
func (c *Canvas) crossSection(j *lineJob, steep bool, cell int, b float64, opacity, depth float32, nb [2]float32) {
	row := int(math.Floor(b))
	frac := float32(b - math.Floor(b))
	lo := j.width / 2
	hi := j.width - lo

	for k := row - lo; k <= row+hi; k++ {
		c.plot(j, steep, cell, k, opacity, depth, nb)
	}
	c.plot(j, steep, cell, row-lo-1, opacity*(1-frac), depth, nb)
	c.plot(j, steep, cell, row+hi+1, opacity*frac, depth, nb)
}

func (c *Canvas) plot(j *lineJob, steep bool, major, minor int, opacity, depth float32, nb [2]float32) {
	x, y := major, minor
	if steep {
		x, y = minor, major
	}
	if !j.bounds.Contains(x, y) {
		return
	}
	if c.mode == AAMultiSample {
		c.SetPixel(x, y, j.col, opacity, depth, nb[0], nb[1])
		return
	}
	c.SetPixel(x, y, j.col, opacity, depth)
}
