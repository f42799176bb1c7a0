package x11

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xgraphics"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const surfaceEvents = xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure

// X core protocol reports wheel motion as buttons 4 (up) and 5 (down).
const (
	wheelUp   = 4
	wheelDown = 5
)

// SurfaceCallbacks receive pointer and expose events for a surface.
type SurfaceCallbacks struct {
	Button func(button, x, y int, down bool)
	Motion func(x, y int)
	Wheel  func(rotation int)
	Expose func()
}

// Surface is a child window backed by an xgraphics image. It is created
// under the root window and reparented into a frame on Attach.
type Surface struct {
	conn *Connection
	win  *xwindow.Window
	img  *xgraphics.Image
}

// NewSurface creates an unmapped width x height surface.
func (c *Connection) NewSurface(width, height int, cb SurfaceCallbacks) (*Surface, error) {
	width, height = max(width, 1), max(height, 1)

	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("generate surface id: %w", err)
	}
	err = win.CreateChecked(c.Root, 0, 0, width, height, xproto.CwEventMask, surfaceEvents)
	if err != nil {
		return nil, fmt.Errorf("create surface window: %w", err)
	}

	img := xgraphics.New(c.XUtil, image.Rect(0, 0, width, height))
	if err := img.XSurfaceSet(win.Id); err != nil {
		win.Destroy()
		return nil, fmt.Errorf("set surface pixmap: %w", err)
	}

	s := &Surface{conn: c, win: win, img: img}
	s.connect(cb)
	return s, nil
}

func (s *Surface) connect(cb SurfaceCallbacks) {
	xu := s.conn.XUtil
	id := s.win.Id

	xevent.ButtonPressFun(func(_ *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		switch ev.Detail {
		case wheelUp:
			if cb.Wheel != nil {
				cb.Wheel(-1)
			}
		case wheelDown:
			if cb.Wheel != nil {
				cb.Wheel(1)
			}
		default:
			if cb.Button != nil {
				cb.Button(int(ev.Detail), int(ev.EventX), int(ev.EventY), true)
			}
		}
	}).Connect(xu, id)
	xevent.ButtonReleaseFun(func(_ *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail == wheelUp || ev.Detail == wheelDown {
			return
		}
		if cb.Button != nil {
			cb.Button(int(ev.Detail), int(ev.EventX), int(ev.EventY), false)
		}
	}).Connect(xu, id)
	xevent.MotionNotifyFun(func(_ *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		if cb.Motion != nil {
			cb.Motion(int(ev.EventX), int(ev.EventY))
		}
	}).Connect(xu, id)
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 && cb.Expose != nil {
			cb.Expose()
		}
	}).Connect(xu, id)
}

// Reparent moves the surface into parent at (0, 0) and maps it.
func (s *Surface) Reparent(parent xproto.Window) error {
	if err := xproto.ReparentWindowChecked(s.conn.XUtil.Conn(), s.win.Id, parent, 0, 0).Check(); err != nil {
		return fmt.Errorf("reparent surface: %w", err)
	}
	s.win.Map()
	return nil
}

// Orphan unmaps the surface and moves it back under the root window.
func (s *Surface) Orphan() {
	s.win.Unmap()
	xproto.ReparentWindow(s.conn.XUtil.Conn(), s.win.Id, s.conn.Root, 0, 0)
}

// Present copies ARGB pixels into the backing image and paints it.
func (s *Surface) Present(pixels []uint32) {
	b := s.img.Bounds()
	FillBGRA(s.img.Pix, s.img.Stride, pixels, b.Dx(), b.Dy())
	s.img.XDraw()
	s.img.XPaint(s.win.Id)
}

// Destroy frees the pixmap and the window.
func (s *Surface) Destroy() {
	s.img.Destroy()
	s.win.Destroy()
}

// FillBGRA writes width x height ARGB pixels into a BGRA byte slice with the
// given stride. Missing source pixels leave dst untouched.
func FillBGRA(dst []uint8, stride int, src []uint32, width, height int) {
	for y := 0; y < height; y++ {
		row := y * width
		if row+width > len(src) {
			return
		}
		o := y * stride
		for _, p := range src[row : row+width] {
			dst[o+0] = uint8(p)
			dst[o+1] = uint8(p >> 8)
			dst[o+2] = uint8(p >> 16)
			dst[o+3] = uint8(p >> 24)
			o += 4
		}
	}
}
