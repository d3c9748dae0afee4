package term

import (
	"github.com/charmbracelet/bubbles/key"

	"softraster/internal/app"
)

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	Up         key.Binding
	Down       key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Antialias  key.Binding
	Projection key.Binding
	Premul     key.Binding
	Split      key.Binding
	LineWidth  key.Binding
	Pause      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "orbit left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "orbit right")),
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "tilt up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "tilt down")),
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	Antialias:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "antialias")),
	Projection: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projection")),
	Premul:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "premultiplied")),
	Split:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "split")),
	LineWidth:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "line width")),
	Pause:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Antialias, k.Projection, k.Split, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.ZoomIn, k.ZoomOut, k.Pause},
		{k.Antialias, k.Projection, k.Premul, k.Split, k.LineWidth},
		{k.Help, k.Quit},
	}
}

// taps maps edge-triggered bindings to application keys.
var taps = []struct {
	binding *key.Binding
	key     app.Key
}{
	{&keys.ZoomIn, app.KeyZoomIn},
	{&keys.ZoomOut, app.KeyZoomOut},
	{&keys.Antialias, app.KeyAntialias},
	{&keys.Projection, app.KeyProjection},
	{&keys.Premul, app.KeyPremultiplied},
	{&keys.Split, app.KeySplit},
	{&keys.LineWidth, app.KeyLineWidth},
	{&keys.Pause, app.KeyPause},
}
