// Package geom holds the closed integer intervals and rectangles used as clip
// bounds throughout the raster pipeline.
//
// An interval whose Last is smaller than its First is empty. That is a normal
// value, not an error: intersecting disjoint bounds simply yields an empty
// result and every consumer treats it as "nothing to draw".
package geom

// Range is the closed interval [First, Last].
type Range struct {
	First int
	Last  int
}

// Span returns the range covering first..first+n-1.
func Span(first, n int) Range {
	return Range{First: first, Last: first + n - 1}
}

func (r Range) Empty() bool {
	return r.Last < r.First
}

// Len is the number of integers in r, zero when empty.
func (r Range) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

func (r Range) Contains(v int) bool {
	return v >= r.First && v <= r.Last
}

// Intersect returns the overlap of r and o.
func (r Range) Intersect(o Range) Range {
	return Range{First: max(r.First, o.First), Last: min(r.Last, o.Last)}
}

// Clamp limits v to r. The result is meaningless for an empty range.
func (r Range) Clamp(v int) int {
	if v < r.First {
		return r.First
	}
	if v > r.Last {
		return r.Last
	}
	return v
}

// Scale maps r to a buffer that is factor times denser, so that every
// logical cell covers factor physical cells.
func (r Range) Scale(factor int) Range {
	if r.Empty() {
		return Range{First: r.First * factor, Last: r.First*factor - 1}
	}
	return Range{First: r.First * factor, Last: r.Last*factor + factor - 1}
}

// Rect is an axis-aligned rectangle of closed ranges.
type Rect struct {
	X Range
	Y Range
}

// RectXYWH builds the rectangle with top-left (x, y) and size w×h.
func RectXYWH(x, y, w, h int) Rect {
	return Rect{X: Span(x, w), Y: Span(y, h)}
}

func (r Rect) Empty() bool {
	return r.X.Empty() || r.Y.Empty()
}

func (r Rect) Width() int  { return r.X.Len() }
func (r Rect) Height() int { return r.Y.Len() }

func (r Rect) Contains(x, y int) bool {
	return r.X.Contains(x) && r.Y.Contains(y)
}

func (r Rect) Intersect(o Rect) Rect {
	return Rect{X: r.X.Intersect(o.X), Y: r.Y.Intersect(o.Y)}
}

// Clip intersects r with an optional rectangle; nil leaves r unchanged.
func (r Rect) Clip(o *Rect) Rect {
	if o == nil {
		return r
	}
	return r.Intersect(*o)
}

func (r Rect) Scale(factor int) Rect {
	return Rect{X: r.X.Scale(factor), Y: r.Y.Scale(factor)}
}
