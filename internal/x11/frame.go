package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const frameEvents = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskExposure |
	xproto.EventMaskFocusChange

// FrameCallbacks receive events for a frame. They run on the event loop
// goroutine; nil callbacks are skipped.
type FrameCallbacks struct {
	Key    func(code int, down bool)
	Close  func()
	Expose func()
	Resize func(width, height int)
	Focus  func(focused bool)
	Mapped func(visible bool)
}

// Frame is a top-level X window.
type Frame struct {
	conn *Connection
	win  *xwindow.Window
}

// NewFrame creates an unmapped top-level window with the given title and
// initial size.
func (c *Connection) NewFrame(title string, width, height int, cb FrameCallbacks) (*Frame, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("generate window id: %w", err)
	}
	err = win.CreateChecked(c.Root, 0, 0, max(width, 1), max(height, 1),
		xproto.CwBackPixel|xproto.CwEventMask, 0, frameEvents)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	f := &Frame{conn: c, win: win}
	if err := f.SetTitle(title); err != nil {
		win.Destroy()
		return nil, err
	}
	f.connect(cb)
	return f, nil
}

// ID returns the X window id.
func (f *Frame) ID() xproto.Window {
	return f.win.Id
}

func (f *Frame) connect(cb FrameCallbacks) {
	xu := f.conn.XUtil
	id := f.win.Id

	f.win.WMGracefulClose(func(*xwindow.Window) {
		if cb.Close != nil {
			cb.Close()
		}
	})
	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		if cb.Key != nil {
			cb.Key(KeyCode(keybind.KeysymGet(xu, ev.Detail, 0)), true)
		}
	}).Connect(xu, id)
	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		if cb.Key != nil {
			cb.Key(KeyCode(keybind.KeysymGet(xu, ev.Detail, 0)), false)
		}
	}).Connect(xu, id)
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 && cb.Expose != nil {
			cb.Expose()
		}
	}).Connect(xu, id)
	xevent.ConfigureNotifyFun(func(_ *xgbutil.XUtil, ev xevent.ConfigureNotifyEvent) {
		if cb.Resize != nil {
			cb.Resize(int(ev.Width), int(ev.Height))
		}
	}).Connect(xu, id)
	xevent.FocusInFun(func(*xgbutil.XUtil, xevent.FocusInEvent) {
		if cb.Focus != nil {
			cb.Focus(true)
		}
	}).Connect(xu, id)
	xevent.FocusOutFun(func(*xgbutil.XUtil, xevent.FocusOutEvent) {
		if cb.Focus != nil {
			cb.Focus(false)
		}
	}).Connect(xu, id)
	xevent.MapNotifyFun(func(*xgbutil.XUtil, xevent.MapNotifyEvent) {
		if cb.Mapped != nil {
			cb.Mapped(true)
		}
	}).Connect(xu, id)
	xevent.UnmapNotifyFun(func(*xgbutil.XUtil, xevent.UnmapNotifyEvent) {
		if cb.Mapped != nil {
			cb.Mapped(false)
		}
	}).Connect(xu, id)
}

// SetTitle sets both the EWMH (UTF-8) and ICCCM window names.
func (f *Frame) SetTitle(title string) error {
	if err := ewmh.WmNameSet(f.conn.XUtil, f.win.Id, title); err != nil {
		return fmt.Errorf("set _NET_WM_NAME: %w", err)
	}
	return icccm.WmNameSet(f.conn.XUtil, f.win.Id, title)
}

// SetDecorated toggles window manager decorations through Motif hints.
func (f *Frame) SetDecorated(decorated bool) error {
	hints := &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}
	if decorated {
		hints.Decoration = motif.DecorationAll
	}
	return motif.WmHintsSet(f.conn.XUtil, f.win.Id, hints)
}

// MoveResize moves and resizes the frame. The position is pinned through
// WM_NORMAL_HINTS so window managers honour it on map.
func (f *Frame) MoveResize(x, y, width, height int) {
	_ = icccm.WmNormalHintsSet(f.conn.XUtil, f.win.Id, &icccm.NormalHints{
		Flags:  icccm.SizeHintUSPosition | icccm.SizeHintUSSize,
		X:      x,
		Y:      y,
		Width:  uint(width),
		Height: uint(height),
	})

	// Prefer the EWMH request for WM compatibility; fall back to a direct
	// configure when no EWMH manager is running.
	if err := ewmh.MoveresizeWindow(f.conn.XUtil, f.win.Id, x, y, width, height); err != nil {
		f.win.MoveResize(x, y, width, height)
	}
}

// SetFullscreen adds or removes _NET_WM_STATE_FULLSCREEN.
func (f *Frame) SetFullscreen(on bool) error {
	action := ewmh.StateRemove
	if on {
		action = ewmh.StateAdd
	}
	if err := ewmh.WmStateReq(f.conn.XUtil, f.win.Id, action, fullscreenAtom); err != nil {
		return fmt.Errorf("fullscreen request: %w", err)
	}
	return nil
}

// SetIcon publishes img as _NET_WM_ICON.
func (f *Frame) SetIcon(img image.Image) error {
	return ewmh.WmIconSet(f.conn.XUtil, f.win.Id, []ewmh.WmIcon{IconFromImage(img)})
}

// Map shows the frame.
func (f *Frame) Map() {
	f.win.Map()
}

// Unmap hides the frame.
func (f *Frame) Unmap() {
	f.win.Unmap()
}

// Destroy detaches the frame's callbacks and destroys the window.
func (f *Frame) Destroy() {
	f.win.Destroy()
}

// IconFromImage converts img into the ARGB cardinal layout of _NET_WM_ICON.
func IconFromImage(img image.Image) ewmh.WmIcon {
	b := img.Bounds()
	icon := ewmh.WmIcon{
		Width:  uint(b.Dx()),
		Height: uint(b.Dy()),
		Data:   make([]uint, 0, b.Dx()*b.Dy()),
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			icon.Data = append(icon.Data,
				uint(a>>8)<<24|uint(r>>8)<<16|uint(g>>8)<<8|uint(bl>>8))
		}
	}
	return icon
}
