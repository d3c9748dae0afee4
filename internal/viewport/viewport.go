// Package viewport ties a camera and a view frustum to a rectangle of a
// shared canvas and draws world or camera space geometry into it.
package viewport

import (
	"math"

	"softraster/internal/frustum"
	"softraster/internal/geom"
	"softraster/internal/mathutil"
	"softraster/internal/raster"
)

// Options configure the projection and line style of a viewport.
type Options struct {
	Kind        frustum.Kind
	FocalLength float64
	Near        float64
	Far         float64
	LineWidth   int
}

// DefaultOptions is a 60° GL perspective with a 0.1..100 depth range.
func DefaultOptions() Options {
	return Options{
		Kind:        frustum.PerspectiveGL,
		FocalLength: FocalLength(60),
		Near:        0.1,
		Far:         100,
	}
}

// FocalLength converts a vertical field of view in degrees to the focal
// length used by the projection.
func FocalLength(fovDegrees float64) float64 {
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return 1
	}
	return 1 / math.Tan(mathutil.Deg2Rad(fovDegrees)/2)
}

// Viewport renders through one camera into region of canvas. Several
// viewports may share a canvas with disjoint regions.
type Viewport struct {
	Camera *Camera

	canvas  *raster.Canvas
	region  geom.Rect
	dims    frustum.Dimensions
	opts    Options
	frustum *frustum.Frustum
}

// New creates a viewport. region is in canvas pixels and is clipped to the
// canvas bounds.
func New(cam *Camera, canvas *raster.Canvas, region geom.Rect, opts Options) *Viewport {
	v := &Viewport{Camera: cam, canvas: canvas, opts: opts}
	v.frustum = frustum.New(opts.Kind, opts.Near, opts.Far, opts.FocalLength, 1)
	v.SetRegion(region)
	return v
}

// SetRegion moves the viewport and recomputes its dimensions and
// projection.
func (v *Viewport) SetRegion(r geom.Rect) {
	v.region = r.Intersect(v.canvas.Bounds())
	v.dims = frustum.NewDimensions(v.region.Width(), v.region.Height())
	v.frustum.UpdateProjection(v.opts.FocalLength, v.dims.HeightOverWidth)
}

// SetOptions replaces the projection settings.
func (v *Viewport) SetOptions(opts Options) {
	v.opts = opts
	v.frustum.Kind = opts.Kind
	v.frustum.Near = opts.Near
	v.frustum.Far = opts.Far
	v.frustum.UpdateProjection(opts.FocalLength, v.dims.HeightOverWidth)
}

// SetCanvas retargets the viewport after the canvas was rebuilt, keeping
// the region clipped to the new bounds.
func (v *Viewport) SetCanvas(c *raster.Canvas, region geom.Rect) {
	v.canvas = c
	v.SetRegion(region)
}

func (v *Viewport) Canvas() *raster.Canvas         { return v.canvas }
func (v *Viewport) Region() geom.Rect              { return v.region }
func (v *Viewport) Dimensions() frustum.Dimensions { return v.dims }
func (v *Viewport) Options() Options               { return v.opts }
func (v *Viewport) Frustum() *frustum.Frustum      { return v.frustum }

// bounds is the region narrowed by an optional clip in canvas pixels.
func (v *Viewport) bounds(clip *geom.Rect) geom.Rect {
	return v.region.Clip(clip)
}

// DrawEdge clips a camera-space edge to the frustum, projects it into the
// region and draws it as a line. It reports whether anything survived
// clipping.
func (v *Viewport) DrawEdge(e frustum.Edge, col raster.Color, opacity float32, clip *geom.Rect) bool {
	b := v.bounds(clip)
	if b.Empty() || opacity <= 0 {
		return false
	}
	if !v.frustum.CullAndClipEdge(&e, v.opts.FocalLength, v.dims.HeightOverWidth) {
		return false
	}
	v.frustum.ProjectEdge(&e, v.dims)

	ox, oy := float64(v.region.X.First), float64(v.region.Y.First)
	v.canvas.DrawLine(
		e.From[0]+ox, e.From[1]+oy, e.From[2],
		e.To[0]+ox, e.To[1]+oy, e.To[2],
		col, opacity, v.opts.LineWidth, &b,
	)
	return true
}

// DrawWorldLine draws the world-space segment a→b.
func (v *Viewport) DrawWorldLine(a, b mathutil.Vec3, col raster.Color, opacity float32, clip *geom.Rect) bool {
	view := v.Camera.View()
	return v.DrawEdge(frustum.Edge{From: view.MulPoint(a), To: view.MulPoint(b)}, col, opacity, clip)
}

// DrawWorldTriangle fills a world-space triangle at the average of its
// camera-space vertex depths. Triangles are not clipped: one with any
// vertex outside the near or far plane is dropped whole. Front faces wind
// counter-clockwise as seen from the camera.
func (v *Viewport) DrawWorldTriangle(a, b, c mathutil.Vec3, col raster.Color, opacity float32, clip *geom.Rect) bool {
	bounds := v.bounds(clip)
	if bounds.Empty() || opacity <= 0 {
		return false
	}
	view := v.Camera.View()
	pts := [3]mathutil.Vec3{view.MulPoint(a), view.MulPoint(b), view.MulPoint(c)}

	var depth float64
	var screen [3]raster.Point
	ox, oy := float64(v.region.X.First), float64(v.region.Y.First)
	for i, p := range pts {
		if p[2] < v.opts.Near || p[2] > v.opts.Far {
			return false
		}
		depth += p[2]
		s := v.frustum.ProjectPoint(p, v.dims)
		screen[i] = raster.Point{X: s[0] + ox, Y: s[1] + oy}
	}
	v.canvas.FillTriangle(screen[0], screen[1], screen[2], col, opacity, float32(depth/3), &bounds)
	return true
}

// Project maps a world-space point to canvas pixels. ok is false when the
// point is outside the frustum.
func (v *Viewport) Project(p mathutil.Vec3) (x, y, depth float64, ok bool) {
	c := v.Camera.View().MulPoint(p)
	if !v.frustum.Contains(c, v.opts.FocalLength, v.dims.HeightOverWidth) {
		return 0, 0, 0, false
	}
	s := v.frustum.ProjectPoint(c, v.dims)
	return s[0] + float64(v.region.X.First), s[1] + float64(v.region.Y.First), c[2], true
}

// Clear fills only the viewport region with col and resets its depth.
func (v *Viewport) Clear(col raster.Color, opacity float32) {
	v.canvas.ClearRect(v.region, col, opacity)
}
