package term

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"softraster/internal/app"
	"softraster/internal/raster"
)

func TestRenderCellLayout(t *testing.T) {
	tests := []struct {
		w, h      int
		wantLines int
	}{
		{4, 2, 1},
		{4, 3, 2},
		{1, 6, 3},
	}
	for _, tc := range tests {
		c, err := raster.New(tc.w, tc.h, raster.Options{})
		if err != nil {
			t.Fatal(err)
		}
		c.FillRect(c.Bounds(), raster.White, 1, 1, nil)
		out := Render(c)
		lines := strings.Split(out, "\n")
		if len(lines) != tc.wantLines {
			t.Errorf("%dx%d: %d lines, want %d", tc.w, tc.h, len(lines), tc.wantLines)
		}
		for i, l := range lines {
			if n := strings.Count(l, halfBlock); n != tc.w {
				t.Errorf("%dx%d line %d: %d cells, want %d", tc.w, tc.h, i, n, tc.w)
			}
		}
	}
}

func TestHex(t *testing.T) {
	if got := hex(255, 16, 0); got != "#FF1000" {
		t.Errorf("hex = %q", got)
	}
}

func TestCanvasSize(t *testing.T) {
	mem := raster.NewMemory(100, 40)
	if w, h := canvasSize(mem, 80, 24); w != 80 || h != 40 {
		t.Errorf("80x24 terminal -> %dx%d, want 80x40 (clamped)", w, h)
	}
	if w, h := canvasSize(mem, 200, 12); w != 100 || h != 20 {
		t.Errorf("200x12 terminal -> %dx%d, want 100x20", w, h)
	}
}

type keyRecorder struct {
	app.Base
	seen []app.Key
	drag float64
}

func (r *keyRecorder) Update(ctx *app.Context) error {
	for k := app.KeyLeft; k <= app.KeyQuit; k++ {
		if ctx.Input.Pressed(k) {
			r.seen = append(r.seen, k)
		}
	}
	r.drag += ctx.Input.DragX
	return nil
}

func newTestModel(t *testing.T, h app.Handler) Model {
	t.Helper()
	ctx, err := app.NewContext(raster.NewMemory(120, 80), 10, 10, raster.Options{})
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return New(app.NewLoop(ctx, h), Options{})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelResizesCanvas(t *testing.T) {
	m := newTestModel(t, &keyRecorder{})
	m = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 12})
	m = step(t, m, frameMsg(time.Unix(0, 0)))

	c := m.loop.Context().Canvas
	if c.Width() != 40 || c.Height() != 20 {
		t.Errorf("canvas %dx%d, want 40x20", c.Width(), c.Height())
	}
	view := m.View()
	if n := strings.Count(view, halfBlock); n != 40*10 {
		t.Errorf("view has %d cells, want %d", n, 400)
	}
	if !strings.Contains(view, "40x20") {
		t.Error("status line missing the canvas size")
	}
}

func TestModelKeys(t *testing.T) {
	r := &keyRecorder{}
	m := newTestModel(t, r)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = step(t, m, frameMsg(time.Unix(0, 0)))

	if len(r.seen) != 2 || r.seen[0] != app.KeyAntialias || r.seen[1] != app.KeySplit {
		t.Errorf("handler saw %v", r.seen)
	}
	if r.drag != orbitDrag {
		t.Errorf("drag %v, want %v", r.drag, orbitDrag)
	}

	m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	if !m.showHelp {
		t.Error("help not toggled")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("quit key returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not quit")
	}
}

type quitter struct{ app.Base }

func (quitter) Update(*app.Context) error { return app.ErrQuit }

func TestModelHandlerQuit(t *testing.T) {
	m := newTestModel(t, quitter{})
	next, cmd := m.Update(frameMsg(time.Unix(0, 0)))
	if !next.(Model).quitting || cmd == nil {
		t.Fatal("ErrQuit from the handler did not stop the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}
