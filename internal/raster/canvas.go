// Package raster owns the pixel and depth buffers of a frame and the shape
// rasterizers that write into them.
//
// Every shape funnels through Canvas.SetPixel, the single compositing
// primitive. The antialiasing Mode is chosen when the canvas is built and
// decides both the buffer layout and how SetPixel combines fragments:
//
//	AANone         W×H pixels, W×H depths
//	AAMultiSample  W×H pixels, 4·W·H depths (one per logical sub-sample)
//	AASuperSample  2W×2H pixels and depths, 2×2 box filtered on output
//
// Nothing in this package logs or returns errors from drawing calls:
// off-canvas, degenerate and empty shapes are silently ignored.
package raster

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"softraster/internal/arena"
	"softraster/internal/geom"
)

// Mode is the antialiasing strategy of a canvas.
type Mode int

const (
	AANone Mode = iota
	AAMultiSample
	AASuperSample
)

func (m Mode) String() string {
	switch m {
	case AANone:
		return "none"
	case AAMultiSample:
		return "msaa"
	case AASuperSample:
		return "ssaa"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "off":
		return AANone, nil
	case "msaa", "multisample":
		return AAMultiSample, nil
	case "ssaa", "supersample":
		return AASuperSample, nil
	}
	return 0, fmt.Errorf("raster: unknown antialias mode %q", s)
}

// Options are fixed for the lifetime of a canvas.
type Options struct {
	Mode          Mode
	Premultiplied bool
}

// ErrTooLarge is returned when a canvas exceeds the resolution its Memory was
// reserved for.
var ErrTooLarge = errors.New("raster: canvas larger than reserved memory")

// Memory is the pre-reserved storage canvases are carved from. It is sized
// once for the largest resolution in the most demanding mode and lives as
// long as the application.
type Memory struct {
	maxW, maxH int
	pixels     *arena.Region[Pixel]
	depth      *arena.Region[float32]
}

// NewMemory reserves room for one maxW×maxH canvas in any mode.
func NewMemory(maxW, maxH int) *Memory {
	n := 4 * max(maxW, 0) * max(maxH, 0)
	return &Memory{
		maxW:   maxW,
		maxH:   maxH,
		pixels: arena.NewRegion[Pixel](n),
		depth:  arena.NewRegion[float32](n),
	}
}

// MaxSize is the largest logical canvas resolution this memory accepts.
func (m *Memory) MaxSize() (int, int) { return m.maxW, m.maxH }

// Reset releases every canvas carved from m. Canvases built before the reset
// must not be used afterwards.
func (m *Memory) Reset() {
	m.pixels.Reset()
	m.depth.Reset()
}

// Canvas is a frame's pixel and depth storage. It is not safe for concurrent
// use.
type Canvas struct {
	width, height int // logical (output) resolution
	bw, bh        int // buffer resolution
	scale         int
	mode          Mode
	premultiplied bool

	pixels []Pixel
	depth  []float32
}

// NewCanvas allocates a w×h canvas from mem and clears it to transparent
// black.
func NewCanvas(mem *Memory, w, h int, opts Options) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: new canvas %dx%d: invalid size", w, h)
	}
	if w > mem.maxW || h > mem.maxH {
		return nil, fmt.Errorf("raster: new canvas %dx%d (max %dx%d): %w", w, h, mem.maxW, mem.maxH, ErrTooLarge)
	}

	c := &Canvas{
		width:         w,
		height:        h,
		bw:            w,
		bh:            h,
		scale:         1,
		mode:          opts.Mode,
		premultiplied: opts.Premultiplied,
	}
	depthPerPixel := 1
	switch opts.Mode {
	case AAMultiSample:
		depthPerPixel = 4
	case AASuperSample:
		c.scale = 2
		c.bw, c.bh = 2*w, 2*h
	}

	var err error
	if c.pixels, err = mem.pixels.Alloc(c.bw * c.bh); err != nil {
		return nil, fmt.Errorf("raster: new canvas %dx%d pixels: %w", w, h, err)
	}
	if c.depth, err = mem.depth.Alloc(c.bw * c.bh * depthPerPixel); err != nil {
		return nil, fmt.Errorf("raster: new canvas %dx%d depth: %w", w, h, err)
	}
	c.Clear(Black, 0)
	return c, nil
}

// New builds a canvas backed by its own exactly-sized Memory.
func New(w, h int, opts Options) (*Canvas, error) {
	return NewCanvas(NewMemory(w, h), w, h, opts)
}

func (c *Canvas) Width() int          { return c.width }
func (c *Canvas) Height() int         { return c.height }
func (c *Canvas) Mode() Mode          { return c.mode }
func (c *Canvas) Premultiplied() bool { return c.premultiplied }

// Bounds is the logical pixel rectangle of the canvas.
func (c *Canvas) Bounds() geom.Rect {
	return geom.RectXYWH(0, 0, c.width, c.height)
}

// BufferSize is the resolution SetPixel addresses: twice the logical size
// when supersampling.
func (c *Canvas) BufferSize() (int, int) { return c.bw, c.bh }

// bufferClip converts an optional logical clip rectangle into buffer
// coordinates intersected with the buffer.
func (c *Canvas) bufferClip(clip *geom.Rect) geom.Rect {
	r := c.Bounds().Clip(clip)
	if c.scale != 1 {
		r = r.Scale(c.scale)
	}
	return r
}

// Clear sets every pixel to col at the given opacity and every depth sample
// to +Inf.
func (c *Canvas) Clear(col Color, opacity float32) {
	p := squared(col, opacity, c.premultiplied)
	for i := range c.pixels {
		c.pixels[i] = p
	}
	inf := float32(math.Inf(1))
	for i := range c.depth {
		c.depth[i] = inf
	}
}

// ClearRect is Clear limited to the logical rectangle r.
func (c *Canvas) ClearRect(r geom.Rect, col Color, opacity float32) {
	b := c.bufferClip(&r)
	if b.Empty() {
		return
	}
	p := squared(col, opacity, c.premultiplied)
	inf := float32(math.Inf(1))
	for y := b.Y.First; y <= b.Y.Last; y++ {
		for x := b.X.First; x <= b.X.Last; x++ {
			i := y*c.bw + x
			c.pixels[i] = p
			samples := c.depthSamples(i)
			for k := range samples {
				samples[k] = inf
			}
		}
	}
}

// depthSamples returns the depth slots of buffer pixel i.
func (c *Canvas) depthSamples(i int) []float32 {
	if c.mode == AAMultiSample {
		return c.depth[i*4 : i*4+4 : i*4+4]
	}
	return c.depth[i : i+1 : i+1]
}

// SetPixel composites one fragment into buffer pixel (x, y).
//
// Depth 0 marks depth-less overlay content and always counts as nearest.
// Otherwise the smaller depth is in front. In multi-sample mode the fragment
// carries up to four sample depths: depth for the pixel center plus the
// optional neighbors; missing neighbors repeat depth. Each sample is depth
// sorted and blended on its own and the four results are averaged into the
// stored pixel.
func (c *Canvas) SetPixel(x, y int, col Color, opacity, depth float32, neighbors ...float32) {
	if opacity <= 0 || x < 0 || y < 0 || x >= c.bw || y >= c.bh {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	i := y*c.bw + x
	dst := &c.pixels[i]
	samples := c.depthSamples(i)
	src := squared(col, opacity, c.premultiplied)

	// Fast path: nothing to blend with, or opaque overlay content.
	if (dst.black() && allInf(samples)) || (opacity >= 1 && depth == 0) {
		*dst = src
		for k := range samples {
			samples[k] = depth
		}
		if c.mode == AAMultiSample {
			for k := 1; k < 4 && k-1 < len(neighbors); k++ {
				samples[k] = neighbors[k-1]
			}
		}
		return
	}

	if c.mode != AAMultiSample {
		if depth == 0 || depth < samples[0] {
			*dst = over(src, *dst, c.premultiplied)
			samples[0] = depth
		} else {
			*dst = over(*dst, src, c.premultiplied)
		}
		return
	}

	var blended [4]Pixel
	for k := 0; k < 4; k++ {
		d := depth
		if k > 0 && k-1 < len(neighbors) {
			d = neighbors[k-1]
		}
		if d == 0 || d < samples[k] {
			blended[k] = over(src, *dst, c.premultiplied)
			samples[k] = d
		} else {
			blended[k] = over(*dst, src, c.premultiplied)
		}
	}
	*dst = average4(blended[0], blended[1], blended[2], blended[3])
}

func allInf(samples []float32) bool {
	for _, d := range samples {
		if !math.IsInf(float64(d), 1) {
			return false
		}
	}
	return true
}

// Pixel returns the stored value of logical pixel (x, y), resolving the 2×2
// block in supersample mode. Out-of-range coordinates yield the zero Pixel.
func (c *Canvas) Pixel(x, y int) Pixel {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Pixel{}
	}
	if c.scale == 1 {
		return c.pixels[y*c.bw+x]
	}
	i := 2*y*c.bw + 2*x
	p0, p1 := c.pixels[i], c.pixels[i+1]
	p2, p3 := c.pixels[i+c.bw], c.pixels[i+c.bw+1]
	if c.premultiplied {
		return average4(p0, p1, p2, p3)
	}
	return averageWeighted4(p0, p1, p2, p3)
}

// At returns the stored value and nearest depth of logical pixel (x, y).
func (c *Canvas) At(x, y int) (Pixel, float32) {
	return c.Pixel(x, y), c.Depth(x, y)
}

// Depth returns the nearest stored depth of logical pixel (x, y).
func (c *Canvas) Depth(x, y int) float32 {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return float32(math.Inf(1))
	}
	switch c.mode {
	case AAMultiSample:
		return c.depth[(y*c.bw+x)*4]
	case AASuperSample:
		i := 2*y*c.bw + 2*x
		return min(c.depth[i], c.depth[i+1], c.depth[i+c.bw], c.depth[i+c.bw+1])
	}
	return c.depth[y*c.bw+x]
}

// RGB returns the gamma-encoded color of logical pixel (x, y) composited over
// black.
func (c *Canvas) RGB(x, y int) (r, g, b uint8) {
	p := c.Pixel(x, y)
	if !c.premultiplied {
		p.R *= p.A
		p.G *= p.A
		p.B *= p.A
	}
	return encode8(p.R), encode8(p.G), encode8(p.B)
}
