package demo

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"softraster/internal/app"
	"softraster/internal/frustum"
	"softraster/internal/geom"
	"softraster/internal/mathutil"
	"softraster/internal/raster"
)

func TestDefaultScene(t *testing.T) {
	s := DefaultScene()
	// 22 grid lines, 3 axes, 12 box edges
	if n := len(s.Lines); n != 37 {
		t.Errorf("%d lines, want 37", n)
	}
	if n := len(s.Triangles); n != 2 {
		t.Errorf("%d triangles, want 2", n)
	}
	lo, hi := s.Bounds()
	if lo[0] != -5 || lo[1] != 0 || lo[2] != -5 || hi[0] != 5 || hi[1] != 2 || hi[2] != 5 {
		t.Errorf("bounds %v..%v", lo, hi)
	}
}

func TestTriangleShading(t *testing.T) {
	col := raster.Color{R: 1, G: 0.5, B: 0.25}
	near := func(a, b raster.Color) bool {
		const eps = 1e-5
		return math.Abs(float64(a.R-b.R)) < eps && math.Abs(float64(a.G-b.G)) < eps && math.Abs(float64(a.B-b.B)) < eps
	}

	flat := Triangle{A: mathutil.Vec3{}, B: mathutil.Vec3{1, 0, 0}, C: mathutil.Vec3{0, 1, 0}, Color: col}
	if n := flat.Normal(); n != (mathutil.Vec3{0, 0, 1}) {
		t.Errorf("Normal = %v, want +Z", n)
	}
	flipped := Triangle{A: flat.A, B: flat.C, C: flat.B, Color: col}
	if a, b := flat.Shaded(), flipped.Shaded(); !near(a, b) {
		t.Errorf("windings shade differently: %v vs %v", a, b)
	}

	u := lightDir.Cross(mathutil.Vec3{1, 0, 0}).Normalize()
	v := lightDir.Cross(u)
	lit := Triangle{A: mathutil.Vec3{}, B: u, C: v, Color: col}
	if got := lit.Shaded(); !near(got, col) {
		t.Errorf("face toward the light = %v, want %v", got, col)
	}

	degenerate := Triangle{A: mathutil.Vec3{1, 1, 1}, B: mathutil.Vec3{2, 2, 2}, C: mathutil.Vec3{3, 3, 3}, Color: col}
	want := raster.Color{R: col.R * ambient, G: col.G * ambient, B: col.B * ambient}
	if got := degenerate.Shaded(); !near(got, want) {
		t.Errorf("degenerate = %v, want ambient %v", got, want)
	}
}

func TestRegions(t *testing.T) {
	bounds := geom.RectXYWH(0, 0, 101, 51)
	if rs := regions(bounds, false); len(rs) != 1 || rs[0] != bounds {
		t.Errorf("unsplit regions %v", rs)
	}

	rs := regions(bounds, true)
	if len(rs) != 4 {
		t.Fatalf("%d regions, want 4", len(rs))
	}
	area := 0
	for i, a := range rs {
		area += a.Width() * a.Height()
		for _, b := range rs[i+1:] {
			if !a.Intersect(b).Empty() {
				t.Errorf("regions %v and %v overlap", a, b)
			}
		}
	}
	if area != 101*51 {
		t.Errorf("regions cover %d pixels, want %d", area, 101*51)
	}
}

func newTestLoop(t *testing.T, opts raster.Options, d *Demo) *app.Loop {
	t.Helper()
	ctx, err := app.NewContext(raster.NewMemory(160, 120), 160, 120, opts)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return app.NewLoop(ctx, d)
}

func TestDemoRendersInEveryMode(t *testing.T) {
	for _, mode := range []raster.Mode{raster.AANone, raster.AAMultiSample, raster.AASuperSample} {
		for _, kind := range []frustum.Kind{frustum.Orthographic, frustum.PerspectiveGL, frustum.PerspectiveDX} {
			t.Run(mode.String()+"/"+kind.String(), func(t *testing.T) {
				d := New(Options{Yaw: 0.6, Pitch: 0.4, Spin: 0.5})
				d.opts.View.Kind = kind
				l := newTestLoop(t, raster.Options{Mode: mode}, d)

				if err := l.Run(context.Background(), 3, 0, nil); err != nil {
					t.Fatalf("Run: %v", err)
				}
				st := d.Stats()
				if st.Lines == 0 || st.Triangles == 0 {
					t.Errorf("stats %+v, want lines and triangles drawn", st)
				}

				// Active antialias dot of the HUD.
				c := l.Context().Canvas
				if r, g, b := c.RGB(9, 9); r != 255 || g < 200 || b > 100 {
					t.Errorf("HUD dot is (%d,%d,%d)", r, g, b)
				}
				// Something other than the background was drawn in the scene.
				bg := raster.RGB8(18, 18, 24)
				br, bgG, bb := encode(bg)
				found := false
				for y := 40; y < 120 && !found; y++ {
					for x := 0; x < 160; x++ {
						if r, g, b := c.RGB(x, y); r != br || g != bgG || b != bb {
							found = true
							break
						}
					}
				}
				if !found {
					t.Error("scene area holds only background")
				}
			})
		}
	}
}

// encode renders col through a 1×1 canvas to get its 8-bit form.
func encode(col raster.Color) (uint8, uint8, uint8) {
	c, _ := raster.New(1, 1, raster.Options{})
	c.Clear(col, 1)
	return c.RGB(0, 0)
}

func TestDemoKeys(t *testing.T) {
	d := New(Options{})
	l := newTestLoop(t, raster.Options{}, d)
	ctx := l.Context()
	now := time.Unix(0, 0)
	frame := func(keys ...app.Key) {
		t.Helper()
		for _, k := range keys {
			ctx.Input.Tap(k)
		}
		now = now.Add(time.Second / 30)
		if err := l.Frame(now); err != nil {
			t.Fatalf("Frame: %v", err)
		}
	}

	frame()
	if len(d.Viewports()) != 1 {
		t.Fatalf("%d viewports, want 1", len(d.Viewports()))
	}

	frame(app.KeySplit)
	if !d.Split() || len(d.Viewports()) != 4 {
		t.Fatalf("split: %d viewports", len(d.Viewports()))
	}
	for _, v := range d.Viewports()[1:] {
		if v.Options().Kind != frustum.Orthographic {
			t.Error("secondary view is not orthographic")
		}
	}

	frame(app.KeyAntialias)
	if ctx.Canvas.Mode() != raster.AAMultiSample {
		t.Errorf("mode %v after cycling, want msaa", ctx.Canvas.Mode())
	}
	for _, v := range d.Viewports() {
		if v.Canvas() != ctx.Canvas {
			t.Fatal("viewport still draws into the old canvas")
		}
	}

	frame(app.KeyPremultiplied)
	if !ctx.Canvas.Premultiplied() {
		t.Error("premultiplied not toggled")
	}

	before := d.Viewports()[0].Options().Kind
	frame(app.KeyProjection)
	if after := d.Viewports()[0].Options().Kind; after == before {
		t.Error("projection not cycled")
	}

	yaw := d.Viewports()[0].Camera.Yaw
	ctx.Input.Press(app.KeyRight)
	frame()
	ctx.Input.Release(app.KeyRight)
	if d.Viewports()[0].Camera.Yaw <= yaw {
		t.Error("right arrow did not orbit")
	}

	dist := d.dist
	frame(app.KeyZoomIn)
	if d.dist >= dist {
		t.Error("zoom in did not move closer")
	}

	ctx.Input.Tap(app.KeyQuit)
	if err := l.Frame(now.Add(time.Second)); !errors.Is(err, app.ErrQuit) {
		t.Errorf("quit key returned %v", err)
	}
}

func TestDemoOverlayIgnoresDepth(t *testing.T) {
	d := New(Options{Split: true})
	l := newTestLoop(t, raster.Options{}, d)
	if err := l.Run(context.Background(), 1, 0, nil); err != nil {
		t.Fatalf("Run: %v", err)
	}
	c := l.Context().Canvas
	// Border of the bottom-right quadrant.
	r := d.Viewports()[3].Region()
	if depth := c.Depth(r.X.First, r.Y.First+10); depth != 0 {
		t.Errorf("border depth %v, want 0", depth)
	}
}
