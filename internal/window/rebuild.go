package window

import (
	"fmt"

	"github.com/1broseidon/pixelwin/internal/platform"
)

// carryOver is the state that survives a frame rebuild. Everything else
// belongs to the frame and is recreated.
type carryOver struct {
	title     string
	listeners []platform.WindowListener
	visible   bool
}

// SetWindowMode rebuilds the frame in mode m. The display list is refreshed
// first so monitor changes are picked up. The new frame and canvas are built
// before the old ones are torn down; on error the window keeps its previous
// frame, canvas and mode.
func (w *Window) SetWindowMode(m Mode) error {
	if w.closed {
		return ErrClosed
	}
	if err := w.displays.Refresh(); err != nil {
		w.logger.Warn("display refresh failed, using cached list", "error", err)
	}

	carry := w.capture()
	prevMode, prevEffective := w.mode, w.effective
	prevWidth, prevHeight := w.width, w.height

	w.mode = m
	frame, canvas, bounds, err := w.build(carry.title)
	if err != nil {
		w.mode, w.effective = prevMode, prevEffective
		w.width, w.height = prevWidth, prevHeight
		w.logger.Warn("mode change failed, keeping current frame",
			"mode", m.String(), "error", err)
		return err
	}
	w.teardown()
	w.commit(frame, canvas, bounds, carry)
	return nil
}

func (w *Window) capture() carryOver {
	return carryOver{
		title:     w.title,
		listeners: w.frame.WindowListeners(),
		visible:   w.visible,
	}
}

// teardown detaches the canvas, then hides and disposes the frame.
func (w *Window) teardown() {
	w.detachCanvas()
	w.frame.SetVisible(false)
	w.frame.Dispose()
	w.frame = nil
}

// build creates a frame in w.mode with a new default canvas attached. It
// does not touch the current frame; everything it created is released again
// when it fails.
func (w *Window) build(title string) (platform.Frame, *PixelCanvas, platform.Rect, error) {
	frame, err := w.host.NewFrame(title)
	if err != nil {
		return nil, nil, platform.Rect{}, fmt.Errorf("create frame: %w", err)
	}
	if w.iconPNG != nil {
		if err := frame.SetIcon(w.iconPNG); err != nil {
			w.logger.Warn("icon not applied", "error", err)
		}
	}

	bounds := w.applyMode(frame)

	canvas, err := NewPixelCanvas(w.host, w.width, w.height)
	if err != nil {
		frame.Dispose()
		return nil, nil, platform.Rect{}, err
	}
	if err := frame.Attach(canvas.Component()); err != nil {
		canvas.Release()
		frame.Dispose()
		return nil, nil, platform.Rect{}, fmt.Errorf("attach canvas: %w", err)
	}
	return frame, canvas, bounds, nil
}

// commit makes frame and canvas current and restores the carried state.
func (w *Window) commit(frame platform.Frame, canvas *PixelCanvas, bounds platform.Rect, carry carryOver) {
	w.frame = frame
	for _, l := range carry.listeners {
		frame.AddWindowListener(l)
	}
	for _, k := range w.keyboards {
		frame.AddKeyListener(k)
	}

	surface := canvas.Component()
	for _, m := range w.mice {
		surface.AddMouseListener(m)
	}
	surface.SetEnabled(true)
	w.setCanvas(canvas, true)

	// Pack keeps the frame's size in step with the canvas; the position
	// chosen by the mode is restored afterwards.
	frame.Pack()
	frame.SetBounds(bounds)

	w.visible = carry.visible
	frame.SetVisible(carry.visible)
	w.logger.Debug("window built",
		"mode", w.mode.String(),
		"effective_mode", w.effective.String(),
		"width", w.width,
		"height", w.height)
}

// applyMode runs the entry actions of w.mode against frame and returns the
// bounds it chose. Fullscreen on a display without exclusive
// fullscreen runs the Windowed entry actions instead.
func (w *Window) applyMode(frame platform.Frame) platform.Rect {
	d := w.displays.Display(w.monitor)

	switch w.mode {
	case Fullscreen:
		if !d.FullscreenSupported {
			w.logger.Info("fullscreen not supported, falling back to windowed", "display", d.Name)
			return w.enterCentered(frame, d, Windowed)
		}
		bounds := w.enterFull(frame, d)
		if err := frame.SetFullscreen(d, true); err != nil {
			w.logger.Info("fullscreen request refused, falling back to windowed",
				"display", d.Name, "error", err)
			return w.enterCentered(frame, d, Windowed)
		}
		w.effective = Fullscreen
		return bounds
	case BorderlessFull:
		bounds := w.enterFull(frame, d)
		w.effective = BorderlessFull
		return bounds
	case Borderless:
		return w.enterCentered(frame, d, Borderless)
	default:
		return w.enterCentered(frame, d, Windowed)
	}
}

// enterCentered sizes the frame to the requested size, centered on d.
func (w *Window) enterCentered(frame platform.Frame, d platform.Display, mode Mode) platform.Rect {
	w.width, w.height = w.reqWidth, w.reqHeight
	cx, cy := d.Center()
	bounds := platform.Rect{
		X:      cx - w.width>>1,
		Y:      cy - w.height>>1,
		Width:  w.width,
		Height: w.height,
	}
	frame.SetDecorated(mode == Windowed)
	frame.SetBounds(bounds)
	w.effective = mode
	return bounds
}

// enterFull sizes the undecorated frame to cover d.
func (w *Window) enterFull(frame platform.Frame, d platform.Display) platform.Rect {
	w.width, w.height = d.Bounds.Width, d.Bounds.Height
	frame.SetDecorated(false)
	frame.SetBounds(d.Bounds)
	return d.Bounds
}
