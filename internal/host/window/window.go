// Package window shows the canvas in a desktop window through ebiten.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"softraster/internal/app"
	"softraster/internal/logging"
)

// Options configure the window host.
type Options struct {
	Title string
	// Scale is the number of screen pixels per canvas pixel.
	Scale int
}

var keyMap = []struct {
	key ebiten.Key
	app app.Key
}{
	{ebiten.KeyArrowLeft, app.KeyLeft},
	{ebiten.KeyArrowRight, app.KeyRight},
	{ebiten.KeyArrowUp, app.KeyUp},
	{ebiten.KeyArrowDown, app.KeyDown},
	{ebiten.KeyEqual, app.KeyZoomIn},
	{ebiten.KeyNumpadAdd, app.KeyZoomIn},
	{ebiten.KeyMinus, app.KeyZoomOut},
	{ebiten.KeyNumpadSubtract, app.KeyZoomOut},
	{ebiten.KeyA, app.KeyAntialias},
	{ebiten.KeyP, app.KeyProjection},
	{ebiten.KeyM, app.KeyPremultiplied},
	{ebiten.KeyS, app.KeySplit},
	{ebiten.KeyW, app.KeyLineWidth},
	{ebiten.KeySpace, app.KeyPause},
	{ebiten.KeyEscape, app.KeyQuit},
	{ebiten.KeyQ, app.KeyQuit},
}

type game struct {
	loop  *app.Loop
	scale int

	pix   []byte
	img   *ebiten.Image
	imgW  int
	imgH  int
	lastX int
	lastY int
	drag  bool
}

func (g *game) poll() {
	in := &g.loop.Context().Input
	for _, k := range keyMap {
		if inpututil.IsKeyJustPressed(k.key) {
			in.Press(k.app)
		}
		if inpututil.IsKeyJustReleased(k.key) {
			in.Release(k.app)
		}
	}

	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.drag {
			in.Drag(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.drag = true
	} else {
		g.drag = false
	}
	g.lastX, g.lastY = x, y

	if _, dy := ebiten.Wheel(); dy != 0 {
		in.Wheel += dy
	}
}

func (g *game) Update() error {
	g.poll()
	if err := g.loop.Frame(time.Now()); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return ebiten.Termination
		}
		return err
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	c := g.loop.Context().Canvas
	w, h := c.Width(), c.Height()
	if g.img == nil || g.imgW != w || g.imgH != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
		g.pix = make([]byte, 4*w*h)
		g.imgW, g.imgH = w, h
	}
	c.RGBA(g.pix)
	g.img.WritePixels(g.pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ctx := g.loop.Context()
	w, h := outsideWidth/g.scale, outsideHeight/g.scale
	mw, mh := ctx.Memory.MaxSize()
	w, h = min(max(w, 1), mw), min(max(h, 1), mh)
	if w != ctx.Canvas.Width() || h != ctx.Canvas.Height() {
		g.loop.RequestResize(w, h)
	}
	return ctx.Canvas.Width(), ctx.Canvas.Height()
}

// Run opens a window showing loop and blocks until it closes.
func Run(loop *app.Loop, opts Options) error {
	defer loop.Close()
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.Title == "" {
		opts.Title = "softraster"
	}
	if err := loop.Start(); err != nil {
		return err
	}

	win := loop.Context().Window
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(win.Width*opts.Scale, win.Height*opts.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	logging.Logger().Info("window opened", "width", win.Width, "height", win.Height, "scale", opts.Scale)
	if err := ebiten.RunGame(&game{loop: loop, scale: opts.Scale}); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
