// Package app holds the explicit application state handed to every
// callback and the frame loop that drives a Handler. Hosts (headless,
// window, terminal) own a Loop and feed it time, input and resizes.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"softraster/internal/logging"
	"softraster/internal/raster"
)

// ErrQuit stops a loop without reporting a failure.
var ErrQuit = errors.New("app: quit")

// Window describes the output surface the canvas is shown on.
type Window struct {
	Title  string
	Width  int
	Height int
}

// Context is the state shared between a host and its Handler.
type Context struct {
	Clock  Clock
	Input  Input
	Window Window

	Memory        *raster.Memory
	Canvas        *raster.Canvas
	CanvasOptions raster.Options

	rebuilt bool
}

// NewContext carves a w×h canvas out of mem.
func NewContext(mem *raster.Memory, w, h int, opts raster.Options) (*Context, error) {
	c := &Context{Memory: mem, CanvasOptions: opts}
	if err := c.rebuild(w, h, opts); err != nil {
		return nil, err
	}
	c.rebuilt = false
	return c, nil
}

// Resize releases all canvas memory and builds a w×h canvas.
func (c *Context) Resize(w, h int) error {
	if c.Canvas != nil && w == c.Canvas.Width() && h == c.Canvas.Height() {
		return nil
	}
	return c.rebuild(w, h, c.CanvasOptions)
}

// SetCanvasOptions rebuilds the canvas with a new antialias mode or alpha
// representation.
func (c *Context) SetCanvasOptions(opts raster.Options) error {
	if c.Canvas != nil && opts == c.CanvasOptions {
		return nil
	}
	w, h := c.Window.Width, c.Window.Height
	return c.rebuild(w, h, opts)
}

func (c *Context) rebuild(w, h int, opts raster.Options) error {
	c.Memory.Reset()
	canvas, err := raster.NewCanvas(c.Memory, w, h, opts)
	if err != nil {
		// Keep a usable canvas at the old settings when possible.
		if c.Canvas != nil {
			c.Memory.Reset()
			if old, oldErr := raster.NewCanvas(c.Memory, c.Window.Width, c.Window.Height, c.CanvasOptions); oldErr == nil {
				c.Canvas = old
				c.rebuilt = true
			}
		}
		return fmt.Errorf("app: canvas %dx%d %s: %w", w, h, opts.Mode, err)
	}
	c.Canvas = canvas
	c.CanvasOptions = opts
	c.Window.Width, c.Window.Height = w, h
	c.rebuilt = true
	logging.Logger().Debug("canvas rebuilt", "width", w, "height", h,
		"mode", opts.Mode.String(), "premultiplied", opts.Premultiplied)
	return nil
}

// Handler receives the application callbacks. Embed Base to implement
// only the ones you need.
type Handler interface {
	// Init runs once before the first frame.
	Init(ctx *Context) error
	// Update handles input and advances state. Returning ErrQuit stops the
	// loop cleanly.
	Update(ctx *Context) error
	// Draw renders into ctx.Canvas.
	Draw(ctx *Context)
	// Resized runs after the canvas was rebuilt.
	Resized(ctx *Context)
	// Close runs once when the loop stops.
	Close(ctx *Context)
}

// Base is a Handler that does nothing.
type Base struct{}

func (Base) Init(*Context) error   { return nil }
func (Base) Update(*Context) error { return nil }
func (Base) Draw(*Context)         {}
func (Base) Resized(*Context)      {}
func (Base) Close(*Context)        {}

// Loop drives a Handler one frame at a time.
type Loop struct {
	ctx     *Context
	handler Handler
	started bool
	closed  bool

	resizeW, resizeH int
}

func NewLoop(ctx *Context, h Handler) *Loop {
	return &Loop{ctx: ctx, handler: h}
}

func (l *Loop) Context() *Context { return l.ctx }

// Start calls Init once.
func (l *Loop) Start() error {
	if l.started {
		return nil
	}
	l.started = true
	return l.handler.Init(l.ctx)
}

// RequestResize defers a resize to the next frame boundary.
func (l *Loop) RequestResize(w, h int) {
	l.resizeW, l.resizeH = w, h
}

// Frame runs one update and draw at time now.
func (l *Loop) Frame(now time.Time) error {
	if err := l.Start(); err != nil {
		return err
	}
	if l.resizeW > 0 && l.resizeH > 0 {
		w, h := l.resizeW, l.resizeH
		l.resizeW, l.resizeH = 0, 0
		if err := l.ctx.Resize(w, h); err != nil {
			logging.Logger().Warn("resize rejected", "width", w, "height", h, "err", err)
		}
	}
	l.notifyRebuilt()

	l.ctx.Clock.Tick(now)
	if err := l.handler.Update(l.ctx); err != nil {
		return err
	}
	l.notifyRebuilt()
	l.handler.Draw(l.ctx)
	l.ctx.Input.EndFrame()
	return nil
}

func (l *Loop) notifyRebuilt() {
	if l.ctx.rebuilt {
		l.ctx.rebuilt = false
		l.handler.Resized(l.ctx)
	}
}

// Close calls the handler's Close once.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	if l.started {
		l.handler.Close(l.ctx)
	}
}

// Run drives frames on a fixed time step without a window. frames <= 0
// runs until ctx is cancelled or the handler quits. after, if non-nil, is
// called once each frame has been drawn.
func (l *Loop) Run(ctx context.Context, frames int, step time.Duration, after func(frame int, c *Context) error) error {
	defer l.Close()
	if step <= 0 {
		step = time.Second / 60
	}
	now := time.Unix(0, 0)
	for i := 0; frames <= 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := l.Frame(now); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
		if after != nil {
			if err := after(i, l.ctx); err != nil {
				return err
			}
		}
		now = now.Add(step)
	}
	return nil
}
