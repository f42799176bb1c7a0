// Package window manages a top-level host window: its frame, the canvas it
// displays, the input devices bound to it and its mode.
package window

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/imageio"
	"github.com/1broseidon/pixelwin/internal/platform"
)

// Options configure New.
type Options struct {
	Width   int
	Height  int
	Title   string
	Mode    Mode
	Monitor int
	Visible bool
	Logger  *slog.Logger
}

// Window owns one host frame and one active canvas. Its methods are meant to
// be called from a single goroutine; host callbacks never mutate it.
type Window struct {
	host     platform.Host
	displays *platform.Registry
	logger   *slog.Logger

	frame      platform.Frame
	canvas     DrawCanvas
	ownsCanvas bool

	width, height       int
	reqWidth, reqHeight int
	title               string
	mode                Mode
	effective           Mode
	monitor             int
	visible             bool

	icon    *buffer.PixelBuffer
	iconPNG []byte

	keyboards []platform.KeyListener
	mice      []platform.MouseListener
	closed    bool
}

// ErrClosed is returned by operations on a closed window.
var ErrClosed = errors.New("window closed")

// New builds a window on host. displays resolves Options.Monitor.
func New(host platform.Host, displays *platform.Registry, opts Options) (*Window, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: window %dx%d", buffer.ErrDimensions, opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	w := &Window{
		host:      host,
		displays:  displays,
		logger:    logger,
		width:     opts.Width,
		height:    opts.Height,
		reqWidth:  opts.Width,
		reqHeight: opts.Height,
		title:     opts.Title,
		mode:      opts.Mode,
		monitor:   opts.Monitor,
	}
	frame, canvas, bounds, err := w.build(opts.Title)
	if err != nil {
		return nil, err
	}
	w.commit(frame, canvas, bounds, carryOver{title: opts.Title, visible: opts.Visible})
	return w, nil
}

// Width returns the current canvas width.
func (w *Window) Width() int { return w.width }

// Height returns the current canvas height.
func (w *Window) Height() int { return w.height }

func (w *Window) Title() string { return w.title }

// Mode returns the last requested mode.
func (w *Window) Mode() Mode { return w.mode }

// EffectiveMode returns the mode actually applied. It differs from Mode
// when Fullscreen fell back to Windowed.
func (w *Window) EffectiveMode() Mode { return w.effective }

func (w *Window) Visible() bool { return w.visible }

// Canvas returns the active canvas.
func (w *Window) Canvas() DrawCanvas { return w.canvas }

// Display returns the display the window targets.
func (w *Window) Display() platform.Display { return w.displays.Display(w.monitor) }

// Swap forwards pixels to the active canvas.
func (w *Window) Swap(pixels []uint32) error {
	if w.closed {
		return ErrClosed
	}
	return w.canvas.Swap(pixels)
}

// SwapBuffer swaps the content of a pixel buffer.
func (w *Window) SwapBuffer(b *buffer.PixelBuffer) error {
	return w.Swap(b.Content())
}

// SetTitle updates the frame title.
func (w *Window) SetTitle(title string) {
	w.title = title
	if !w.closed {
		w.frame.SetTitle(title)
	}
}

// SetVisible shows or hides the frame.
func (w *Window) SetVisible(visible bool) {
	w.visible = visible
	if !w.closed {
		w.frame.SetVisible(visible)
	}
}

// SetDrawCanvas replaces the displayed canvas. The previous canvas is
// disabled and detached, and released if the window created it. Mouse
// devices move to the new canvas and the window takes on its size.
func (w *Window) SetDrawCanvas(c DrawCanvas) error {
	if w.closed {
		return ErrClosed
	}
	return w.attach(c, false)
}

func (w *Window) attach(c DrawCanvas, owned bool) error {
	if c == nil {
		return errors.New("nil canvas")
	}
	if c == w.canvas {
		return nil
	}

	prev, prevOwned := w.canvas, w.ownsCanvas
	if prev != nil {
		w.unbind(prev)
	}
	if err := w.bind(c); err != nil {
		if prev != nil {
			if rerr := w.bind(prev); rerr != nil {
				w.logger.Warn("previous canvas not restored", "error", rerr)
			}
		}
		return err
	}
	if prev != nil && prevOwned {
		release(prev)
	}

	w.setCanvas(c, owned)
	w.frame.Pack()
	return nil
}

// bind attaches c's surface to the frame and moves the mice onto it.
func (w *Window) bind(c DrawCanvas) error {
	surface := c.Component()
	if err := w.frame.Attach(surface); err != nil {
		return fmt.Errorf("attach canvas: %w", err)
	}
	for _, m := range w.mice {
		surface.AddMouseListener(m)
	}
	surface.SetEnabled(true)
	return nil
}

// unbind disables c and takes its surface off the frame.
func (w *Window) unbind(c DrawCanvas) {
	surface := c.Component()
	surface.SetEnabled(false)
	for _, m := range w.mice {
		surface.RemoveMouseListener(m)
	}
	w.frame.Detach(surface)
}

func (w *Window) setCanvas(c DrawCanvas, owned bool) {
	w.canvas = c
	w.ownsCanvas = owned
	w.width, w.height = c.Width(), c.Height()
	if !w.effective.fillsDisplay() {
		w.reqWidth, w.reqHeight = w.width, w.height
	}
}

func release(c DrawCanvas) {
	if pc, ok := c.(*PixelCanvas); ok {
		pc.Release()
	}
}

// detachCanvas unbinds the active canvas from the frame and releases it
// when the window created it.
func (w *Window) detachCanvas() {
	if w.canvas == nil {
		return
	}
	w.unbind(w.canvas)
	if w.ownsCanvas {
		release(w.canvas)
	}
	w.canvas = nil
	w.ownsCanvas = false
}

// AddMouse binds a mouse device to the current canvas. Bound devices follow
// canvas replacements and rebuilds.
func (w *Window) AddMouse(m platform.MouseListener) {
	w.mice = append(w.mice, m)
	if !w.closed && w.canvas != nil {
		w.canvas.Component().AddMouseListener(m)
	}
}

// AddKeyboard binds a keyboard device to the frame.
func (w *Window) AddKeyboard(k platform.KeyListener) {
	w.keyboards = append(w.keyboards, k)
	if !w.closed {
		w.frame.AddKeyListener(k)
	}
}

// AddWindowListener registers l with the frame. Listeners survive rebuilds.
func (w *Window) AddWindowListener(l platform.WindowListener) {
	if !w.closed {
		w.frame.AddWindowListener(l)
	}
}

// SetIcon sets the frame icon from img. A nil img leaves the icon unchanged.
// The window keeps its own copy of img.
func (w *Window) SetIcon(img *buffer.PixelBuffer) error {
	if img == nil {
		return nil
	}
	data, err := imageio.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("set icon: %w", err)
	}
	if w.icon != nil {
		w.icon.Free()
	}
	w.icon = img.Copy()
	w.iconPNG = data
	if w.closed {
		return nil
	}
	if err := w.frame.SetIcon(data); err != nil {
		return fmt.Errorf("set icon: %w", err)
	}
	return nil
}

// Icon returns the stored icon, or nil.
func (w *Window) Icon() *buffer.PixelBuffer { return w.icon }

// Close disposes the frame and releases the canvas the window created.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.detachCanvas()
	w.frame.SetVisible(false)
	w.frame.Dispose()
	if w.icon != nil {
		w.icon.Free()
		w.icon = nil
	}
	w.closed = true
}
