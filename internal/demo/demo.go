// Package demo is the built-in application: an orbiting view of a small
// scene, optionally split into four viewports, with a depth-less HUD drawn
// over it.
package demo

import (
	"math"

	"softraster/internal/app"
	"softraster/internal/frustum"
	"softraster/internal/geom"
	"softraster/internal/logging"
	"softraster/internal/mathutil"
	"softraster/internal/raster"
	"softraster/internal/viewport"
)

const (
	orbitSpeed = 1.5 // radians per second while an arrow key is held
	dragSpeed  = 0.01
	zoomStep   = 1.1
	// orthoFocal shows about ±6 world units across the short side.
	orthoFocal = 1.0 / 6
	orthoDist  = 20
)

// Options configure the demo.
type Options struct {
	View  viewport.Options
	Split bool
	// Spin turns the main camera at this many radians per second.
	Spin float64
	// Yaw and Pitch are the initial orbit angles in radians.
	Yaw, Pitch float64
}

// Demo implements app.Handler.
type Demo struct {
	app.Base

	opts   Options
	scene  *Scene
	target mathutil.Vec3
	dist   float64
	yaw    float64
	pitch  float64
	paused bool

	views []*viewport.Viewport
	stats DrawStats
}

// New returns a demo over DefaultScene.
func New(opts Options) *Demo {
	if opts.View.FocalLength <= 0 {
		opts.View = viewport.DefaultOptions()
	}
	return &Demo{opts: opts, scene: DefaultScene()}
}

// Init frames the scene and lays out the viewports.
func (d *Demo) Init(ctx *app.Context) error {
	lo, hi := d.scene.Bounds()
	d.target = lo.Lerp(hi, 0.5)
	d.yaw, d.pitch = d.opts.Yaw, d.opts.Pitch

	cam := viewport.NewCamera(mathutil.Vec3{}, d.yaw, d.pitch)
	hw := float64(ctx.Canvas.Height()) / float64(ctx.Canvas.Width())
	d.dist = cam.Frame(lo, hi, d.opts.View.FocalLength, hw)
	d.layout(ctx)
	return nil
}

// Resized re-targets the viewports at the rebuilt canvas.
func (d *Demo) Resized(ctx *app.Context) {
	d.layout(ctx)
}

// Split reports whether four viewports are shown.
func (d *Demo) Split() bool { return d.opts.Split }

// Viewports returns the current viewports; the first is the main view.
func (d *Demo) Viewports() []*viewport.Viewport { return d.views }

// Stats returns the draw counts of the main viewport for the last frame.
func (d *Demo) Stats() DrawStats { return d.stats }

// regions splits the canvas into one full region or four quadrants.
func regions(bounds geom.Rect, split bool) []geom.Rect {
	if !split {
		return []geom.Rect{bounds}
	}
	w, h := bounds.Width(), bounds.Height()
	lw, th := w/2, h/2
	return []geom.Rect{
		geom.RectXYWH(0, 0, lw, th),
		geom.RectXYWH(lw, 0, w-lw, th),
		geom.RectXYWH(0, th, lw, h-th),
		geom.RectXYWH(lw, th, w-lw, h-th),
	}
}

func (d *Demo) layout(ctx *app.Context) {
	rs := regions(ctx.Canvas.Bounds(), d.opts.Split)
	d.views = d.views[:0]

	cam := &viewport.Camera{}
	cam.Orbit(d.target, d.dist, d.yaw, d.pitch)
	d.views = append(d.views, viewport.New(cam, ctx.Canvas, rs[0], d.mainOptions()))
	if len(rs) == 1 {
		return
	}

	// Front, top and side orthographic views.
	ortho := d.opts.View
	ortho.Kind = frustum.Orthographic
	ortho.FocalLength = orthoFocal
	angles := [][2]float64{{0, 0}, {0, math.Pi / 2}, {math.Pi / 2, 0}}
	for i, a := range angles {
		cam := &viewport.Camera{}
		cam.Orbit(d.target, orthoDist, a[0], a[1])
		d.views = append(d.views, viewport.New(cam, ctx.Canvas, rs[i+1], ortho))
	}
}

// Update applies input: arrows orbit, zoom keys dolly, the mode keys cycle
// canvas and projection settings.
func (d *Demo) Update(ctx *app.Context) error {
	in := &ctx.Input
	dt := ctx.Clock.Seconds()

	if in.Pressed(app.KeyQuit) {
		return app.ErrQuit
	}
	if in.Pressed(app.KeyPause) {
		d.paused = !d.paused
	}

	if in.Held(app.KeyLeft) {
		d.yaw -= orbitSpeed * dt
	}
	if in.Held(app.KeyRight) {
		d.yaw += orbitSpeed * dt
	}
	if in.Held(app.KeyUp) {
		d.pitch += orbitSpeed * dt
	}
	if in.Held(app.KeyDown) {
		d.pitch -= orbitSpeed * dt
	}
	d.yaw += in.DragX * dragSpeed
	d.pitch += in.DragY * dragSpeed
	if !d.paused {
		d.yaw += d.opts.Spin * dt
	}

	if in.Pressed(app.KeyZoomIn) {
		d.dist /= zoomStep
	}
	if in.Pressed(app.KeyZoomOut) {
		d.dist *= zoomStep
	}
	if in.Wheel != 0 {
		d.dist /= math.Pow(zoomStep, in.Wheel)
	}
	d.dist = math.Max(d.dist, d.opts.View.Near*2)

	relayout := false
	if in.Pressed(app.KeyProjection) {
		d.opts.View.Kind = (d.opts.View.Kind + 1) % 3
		relayout = true
	}
	if in.Pressed(app.KeyLineWidth) {
		d.opts.View.LineWidth = (d.opts.View.LineWidth + 1) % 4
		relayout = true
	}
	if in.Pressed(app.KeySplit) {
		d.opts.Split = !d.opts.Split
		relayout = true
	}

	opts := ctx.CanvasOptions
	if in.Pressed(app.KeyAntialias) {
		opts.Mode = (opts.Mode + 1) % 3
	}
	if in.Pressed(app.KeyPremultiplied) {
		opts.Premultiplied = !opts.Premultiplied
	}
	if opts != ctx.CanvasOptions {
		// The loop calls Resized, which lays out again.
		if err := ctx.SetCanvasOptions(opts); err != nil {
			logging.Logger().Warn("canvas options rejected", "err", err)
		}
	} else if relayout {
		d.layout(ctx)
	}

	// The main camera orbits; the ortho views stay fixed.
	main := d.views[0]
	main.Camera.Orbit(d.target, d.dist, d.yaw, d.pitch)
	d.yaw, d.pitch = main.Camera.Yaw, main.Camera.Pitch
	main.SetOptions(d.mainOptions())
	return nil
}

// mainOptions returns the main view settings. An orthographic main view
// keeps the apparent size the perspective view has at the orbit target.
func (d *Demo) mainOptions() viewport.Options {
	o := d.opts.View
	if o.Kind == frustum.Orthographic && d.dist > 0 {
		o.FocalLength /= d.dist
	}
	return o
}

// Draw renders every viewport and then the HUD.
func (d *Demo) Draw(ctx *app.Context) {
	c := ctx.Canvas
	c.Clear(background, 1)
	for i, v := range d.views {
		st := d.scene.Draw(v, nil)
		if i == 0 {
			d.stats = st
		}
	}
	d.drawHUD(c)
}

var (
	hudPanel  = raster.RGB8(0, 0, 0)
	hudBorder = raster.RGB8(120, 120, 140)
	hudActive = raster.RGB8(255, 220, 80)
	hudIdle   = raster.RGB8(110, 110, 110)
)

// drawHUD draws overlay content at depth 0: viewport borders and two rows of
// indicator dots, one for the antialias mode and one for the projection of
// the main view.
func (d *Demo) drawHUD(c *raster.Canvas) {
	if len(d.views) > 1 {
		for _, v := range d.views {
			c.DrawRect(v.Region(), hudBorder, 1, 0, nil)
		}
	}

	const r, step, pad = 3, 10, 4
	panel := geom.RectXYWH(pad, pad, 3*step+pad, 2*step+pad)
	c.FillRect(panel, hudPanel, 0.5, 0, nil)

	row := func(y, active int) {
		for i := 0; i < 3; i++ {
			cx := pad + pad/2 + r + i*step
			if i == active {
				c.FillCircle(cx, y, r, hudActive, 1, 0, &panel)
			} else {
				c.DrawCircle(cx, y, r, hudIdle, 1, 0, &panel)
			}
		}
	}
	row(pad+pad/2+r, int(c.Mode()))
	row(pad+pad/2+r+step, int(d.opts.View.Kind))
}
