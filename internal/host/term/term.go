// Package term shows the canvas in a terminal. Every character cell holds
// two vertically stacked pixels drawn as an upper half block with the top
// pixel as foreground and the bottom pixel as background color.
package term

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"softraster/internal/app"
	"softraster/internal/logging"
	"softraster/internal/raster"
)

const (
	halfBlock = "▀"
	// footerLines holds the status line and the help line.
	footerLines = 2
	// orbitDrag is the drag distance one arrow key press stands for.
	orbitDrag = 12
)

type frameMsg time.Time

// Options configure the terminal host.
type Options struct {
	FPS int
}

// Model is the bubbletea model driving an app.Loop.
type Model struct {
	loop     *app.Loop
	interval time.Duration

	width  int
	height int

	help     help.Model
	showHelp bool
	err      error
	quitting bool

	frames    int
	fpsStart  time.Time
	fpsFrames int
	fps       float64
}

// New wraps loop. The canvas is resized to the terminal on the first
// window size message.
func New(loop *app.Loop, opts Options) Model {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	return Model{
		loop:     loop,
		interval: time.Second / time.Duration(opts.FPS),
		help:     help.New(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Model) Init() tea.Cmd {
	if err := m.loop.Start(); err != nil {
		return func() tea.Msg { return err }
	}
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := m.loop.Context()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		w, h := canvasSize(ctx.Memory, msg.Width, msg.Height)
		if w > 0 && h > 0 {
			m.loop.RequestResize(w, h)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		case key.Matches(msg, keys.Left):
			ctx.Input.Drag(-orbitDrag, 0)
		case key.Matches(msg, keys.Right):
			ctx.Input.Drag(orbitDrag, 0)
		case key.Matches(msg, keys.Up):
			ctx.Input.Drag(0, orbitDrag)
		case key.Matches(msg, keys.Down):
			ctx.Input.Drag(0, -orbitDrag)
		default:
			for _, t := range taps {
				if key.Matches(msg, *t.binding) {
					ctx.Input.Tap(t.key)
				}
			}
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ctx.Input.Wheel++
		case tea.MouseButtonWheelDown:
			ctx.Input.Wheel--
		}

	case frameMsg:
		if err := m.loop.Frame(time.Time(msg)); err != nil {
			if errors.Is(err, app.ErrQuit) {
				m.quitting = true
				return m, tea.Quit
			}
			m.err = err
			logging.Logger().Warn("frame failed", "err", err)
		}
		m.countFrame(time.Time(msg))
		return m, m.tick()

	case error:
		m.err = msg
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) countFrame(now time.Time) {
	m.frames++
	m.fpsFrames++
	if m.fpsStart.IsZero() {
		m.fpsStart = now
		return
	}
	if d := now.Sub(m.fpsStart); d >= time.Second {
		m.fps = float64(m.fpsFrames) / d.Seconds()
		m.fpsStart, m.fpsFrames = now, 0
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "starting…"
	}
	ctx := m.loop.Context()

	var b strings.Builder
	b.WriteString(Render(ctx.Canvas))
	b.WriteByte('\n')

	status := fmt.Sprintf(" %dx%d  aa:%s  premul:%v  %.0f fps",
		ctx.Canvas.Width(), ctx.Canvas.Height(), ctx.Canvas.Mode(), ctx.Canvas.Premultiplied(), m.fps)
	if m.err != nil {
		status += "  " + errStyle.Render(m.err.Error())
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')
	b.WriteString(dimStyle.Render(m.help.View(keys)))
	return b.String()
}

// canvasSize is the pixel size fitting a cols×rows terminal above the
// footer, limited to what mem can hold.
func canvasSize(mem *raster.Memory, cols, rows int) (int, int) {
	w, h := cols, 2*(rows-footerLines)
	mw, mh := mem.MaxSize()
	return min(w, mw), min(h, mh)
}

// Render draws c as rows of half-block cells. Runs of cells with the same
// colors share one styled segment. An odd last pixel row pairs with black.
func Render(c *raster.Canvas) string {
	var b strings.Builder
	w, h := c.Width(), c.Height()
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run int
		var runFg, runBg string
		flush := func() {
			if run == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(runFg)).
				Background(lipgloss.Color(runBg))
			b.WriteString(style.Render(strings.Repeat(halfBlock, run)))
			run = 0
		}
		for x := 0; x < w; x++ {
			fg := hex(c.RGB(x, y))
			bg := "#000000"
			if y+1 < h {
				bg = hex(c.RGB(x, y+1))
			}
			if run > 0 && (fg != runFg || bg != runBg) {
				flush()
			}
			runFg, runBg = fg, bg
			run++
		}
		flush()
	}
	return b.String()
}

func hex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Run shows loop in the terminal until the user quits.
func Run(loop *app.Loop, opts Options) error {
	defer loop.Close()
	p := tea.NewProgram(New(loop, opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("term: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
