package app

// Key is a host-independent action key. Hosts translate their own key
// events into these.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyZoomIn
	KeyZoomOut
	KeyAntialias
	KeyProjection
	KeyPremultiplied
	KeySplit
	KeyLineWidth
	KeyPause
	KeyQuit
	numKeys
)

var keyNames = [numKeys]string{
	"left", "right", "up", "down", "zoom-in", "zoom-out", "antialias",
	"projection", "premultiplied", "split", "line-width", "pause", "quit",
}

func (k Key) String() string {
	if k < 0 || k >= numKeys {
		return "unknown"
	}
	return keyNames[k]
}

// Input is the per-frame keyboard and pointer state. Hosts feed it between
// frames; the loop clears the edge-triggered parts after each frame.
type Input struct {
	held    [numKeys]bool
	pressed [numKeys]bool

	// Pointer drag since the last frame, in window pixels.
	DragX, DragY float64
	// Wheel movement since the last frame; positive zooms in.
	Wheel float64
}

// Press records a key going down.
func (in *Input) Press(k Key) {
	if k < 0 || k >= numKeys {
		return
	}
	if !in.held[k] {
		in.pressed[k] = true
	}
	in.held[k] = true
}

// Release records a key going up.
func (in *Input) Release(k Key) {
	if k < 0 || k >= numKeys {
		return
	}
	in.held[k] = false
}

// Tap is Press followed by Release, for hosts that only see key repeats.
func (in *Input) Tap(k Key) {
	in.Press(k)
	in.Release(k)
}

// Held reports whether k is currently down.
func (in *Input) Held(k Key) bool {
	return k >= 0 && k < numKeys && in.held[k]
}

// Pressed reports whether k went down during the current frame.
func (in *Input) Pressed(k Key) bool {
	return k >= 0 && k < numKeys && in.pressed[k]
}

// Drag accumulates pointer movement.
func (in *Input) Drag(dx, dy float64) {
	in.DragX += dx
	in.DragY += dy
}

// EndFrame clears the edge-triggered state.
func (in *Input) EndFrame() {
	in.pressed = [numKeys]bool{}
	in.DragX, in.DragY, in.Wheel = 0, 0, 0
}
