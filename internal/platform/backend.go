// Package platform defines the host windowing boundary: displays, top-level
// frames, drawable surfaces and the listeners they deliver input to.
package platform

import "errors"

// ErrNoDisplays is returned when a host reports no usable display.
var ErrNoDisplays = errors.New("no displays available")

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID                  int
	Name                string
	Bounds              Rect
	FullscreenSupported bool
}

// Center returns the display's center point.
func (d Display) Center() (int, int) {
	return d.Bounds.X + d.Bounds.Width>>1, d.Bounds.Y + d.Bounds.Height>>1
}

// Host abstracts a window system.
type Host interface {
	Displays() ([]Display, error)
	NewFrame(title string) (Frame, error)
	NewSurface(width, height int) (Surface, error)
}

// Frame is a top-level window.
type Frame interface {
	SetTitle(title string)
	SetDecorated(decorated bool)
	SetBounds(r Rect)
	Bounds() Rect
	// SetFullscreen requests or releases exclusive fullscreen on d.
	SetFullscreen(d Display, on bool) error
	// SetIcon takes a PNG-encoded image.
	SetIcon(png []byte) error
	SetVisible(visible bool)
	Visible() bool
	Attach(s Surface) error
	Detach(s Surface)
	// Pack fits the frame around its attached surface.
	Pack()
	AddKeyListener(l KeyListener)
	AddWindowListener(l WindowListener)
	WindowListeners() []WindowListener
	Dispose()
}

// Surface is a drawable area hosted inside a frame.
type Surface interface {
	Size() (int, int)
	SetEnabled(enabled bool)
	// Present displays width*height ARGB pixels.
	Present(pixels []uint32)
	// SetPainter installs the callback used when the host needs a repaint.
	SetPainter(p Painter)
	AddMouseListener(l MouseListener)
	RemoveMouseListener(l MouseListener)
	Destroy()
}

// Painter repaints a surface from its owner's current content.
type Painter interface {
	Paint()
}

// KeyListener receives key transitions as input key codes.
type KeyListener interface {
	KeyDown(code int)
	KeyUp(code int)
}

// MouseListener receives pointer events in surface pixels.
type MouseListener interface {
	ButtonDown(button, x, y int)
	ButtonUp(button, x, y int)
	Moved(x, y int)
	Wheel(rotation, amount int)
}

// WindowEventKind identifies a frame lifecycle event.
type WindowEventKind int

const (
	WindowOpened WindowEventKind = iota
	WindowClosing
	WindowClosed
	WindowExposed
	WindowResized
	WindowFocused
	WindowUnfocused
)

var windowEventNames = [...]string{
	WindowOpened:    "opened",
	WindowClosing:   "closing",
	WindowClosed:    "closed",
	WindowExposed:   "exposed",
	WindowResized:   "resized",
	WindowFocused:   "focused",
	WindowUnfocused: "unfocused",
}

func (k WindowEventKind) String() string {
	if k < 0 || int(k) >= len(windowEventNames) {
		return "unknown"
	}
	return windowEventNames[k]
}

// WindowEvent is delivered to window listeners.
type WindowEvent struct {
	Kind   WindowEventKind
	Width  int
	Height int
}

// WindowListener receives frame lifecycle events.
type WindowListener interface {
	WindowEvent(ev WindowEvent)
}

// WindowListenerFunc adapts a function to WindowListener.
type WindowListenerFunc func(ev WindowEvent)

func (f WindowListenerFunc) WindowEvent(ev WindowEvent) { f(ev) }
