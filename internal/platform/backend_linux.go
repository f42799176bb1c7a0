//go:build linux

package platform

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/pixelwin/internal/imageio"
	"github.com/1broseidon/pixelwin/internal/x11"
)

// X11Host implements Host on an X11 connection.
type X11Host struct {
	conn   *x11.Connection
	logger *slog.Logger
}

var _ Host = (*X11Host)(nil)

// NewX11Host connects to the named X display ("" uses $DISPLAY).
func NewX11Host(display string, logger *slog.Logger) (*X11Host, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &X11Host{conn: conn, logger: logger}, nil
}

// Run processes X events until ctx is cancelled. The loop exits on the first
// event delivered after cancellation.
func (h *X11Host) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		h.conn.Quit()
	}()
	h.conn.EventLoop()
	return ctx.Err()
}

// Close disconnects from the X server.
func (h *X11Host) Close() {
	if h != nil && h.conn != nil {
		h.conn.Close()
	}
}

// Displays returns all active monitors.
func (h *X11Host) Displays() ([]Display, error) {
	monitors, err := h.conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	fullscreen := h.conn.FullscreenSupported()

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:                  m.ID,
			Name:                m.Name,
			Bounds:              Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			FullscreenSupported: fullscreen,
		})
	}
	return displays, nil
}

// NewFrame creates a hidden top-level window.
func (h *X11Host) NewFrame(title string) (Frame, error) {
	f := &x11Frame{host: h}
	frame, err := h.conn.NewFrame(title, 1, 1, x11.FrameCallbacks{
		Key:   f.ls.key,
		Close: func() { f.ls.emit(WindowEvent{Kind: WindowClosing}) },
		Expose: func() {
			f.ls.emit(WindowEvent{Kind: WindowExposed})
		},
		Resize: func(w, h int) {
			f.ls.emit(WindowEvent{Kind: WindowResized, Width: w, Height: h})
		},
		Focus: func(focused bool) {
			kind := WindowUnfocused
			if focused {
				kind = WindowFocused
			}
			f.ls.emit(WindowEvent{Kind: kind})
		},
	})
	if err != nil {
		return nil, err
	}
	f.frame = frame
	return f, nil
}

// NewSurface creates a surface that can be attached to an X11 frame.
func (h *X11Host) NewSurface(width, height int) (Surface, error) {
	s := &x11Surface{width: width, height: height}
	surf, err := h.conn.NewSurface(width, height, x11.SurfaceCallbacks{
		Button: func(button, x, y int, down bool) {
			if !s.enabled.Load() {
				return
			}
			s.ls.mouse(func(m MouseListener) {
				if down {
					m.ButtonDown(button, x, y)
				} else {
					m.ButtonUp(button, x, y)
				}
			})
		},
		Motion: func(x, y int) {
			if s.enabled.Load() {
				s.ls.mouse(func(m MouseListener) { m.Moved(x, y) })
			}
		},
		Wheel: func(rotation int) {
			if s.enabled.Load() {
				s.ls.mouse(func(m MouseListener) { m.Wheel(rotation, 1) })
			}
		},
		Expose: s.repaint,
	})
	if err != nil {
		return nil, err
	}
	s.surf = surf
	return s, nil
}

type x11Frame struct {
	host  *X11Host
	frame *x11.Frame
	ls    listeners

	mu      sync.Mutex
	bounds  Rect
	visible bool
	surface *x11Surface
}

func (f *x11Frame) SetTitle(title string) {
	if err := f.frame.SetTitle(title); err != nil {
		f.host.logger.Warn("set title failed", "error", err)
	}
}

func (f *x11Frame) SetDecorated(decorated bool) {
	if err := f.frame.SetDecorated(decorated); err != nil {
		f.host.logger.Warn("set decorations failed", "decorated", decorated, "error", err)
	}
}

func (f *x11Frame) SetBounds(r Rect) {
	f.mu.Lock()
	f.bounds = r
	f.mu.Unlock()
	f.frame.MoveResize(r.X, r.Y, r.Width, r.Height)
}

func (f *x11Frame) Bounds() Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds
}

func (f *x11Frame) SetFullscreen(d Display, on bool) error {
	if on && !d.FullscreenSupported {
		return fmt.Errorf("display %q: fullscreen not supported", d.Name)
	}
	return f.frame.SetFullscreen(on)
}

func (f *x11Frame) SetIcon(data []byte) error {
	img, err := imageio.DecodeImage(bytes.NewReader(data), "png")
	if err != nil {
		return fmt.Errorf("decode icon: %w", err)
	}
	return f.frame.SetIcon(img)
}

func (f *x11Frame) SetVisible(visible bool) {
	f.mu.Lock()
	changed := f.visible != visible
	f.visible = visible
	f.mu.Unlock()
	if !changed {
		return
	}
	if visible {
		f.frame.Map()
		f.ls.emit(WindowEvent{Kind: WindowOpened})
		return
	}
	f.frame.Unmap()
}

func (f *x11Frame) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *x11Frame) Attach(s Surface) error {
	xs, ok := s.(*x11Surface)
	if !ok {
		return fmt.Errorf("x11 frame cannot host %T", s)
	}
	if err := xs.surf.Reparent(f.frame.ID()); err != nil {
		return err
	}
	f.mu.Lock()
	f.surface = xs
	f.mu.Unlock()
	return nil
}

func (f *x11Frame) Detach(s Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if xs, ok := s.(*x11Surface); ok && xs == f.surface {
		xs.surf.Orphan()
		f.surface = nil
	}
}

func (f *x11Frame) Pack() {
	f.mu.Lock()
	s := f.surface
	b := f.bounds
	f.mu.Unlock()
	if s == nil {
		return
	}
	b.Width, b.Height = s.Size()
	f.SetBounds(b)
}

func (f *x11Frame) AddKeyListener(l KeyListener) { f.ls.addKey(l) }
func (f *x11Frame) AddWindowListener(l WindowListener) { f.ls.addWindow(l) }
func (f *x11Frame) WindowListeners() []WindowListener { return f.ls.windowListeners() }

func (f *x11Frame) Dispose() {
	f.ls.emit(WindowEvent{Kind: WindowClosed})
	f.frame.Destroy()
}

type x11Surface struct {
	surf          *x11.Surface
	width, height int
	enabled       atomic.Bool
	ls            listeners

	mu      sync.Mutex
	painter Painter
}

func (s *x11Surface) Size() (int, int) { return s.width, s.height }
func (s *x11Surface) SetEnabled(enabled bool) { s.enabled.Store(enabled) }
func (s *x11Surface) Present(pixels []uint32) { s.surf.Present(pixels) }
func (s *x11Surface) AddMouseListener(l MouseListener) { s.ls.addMouse(l) }
func (s *x11Surface) RemoveMouseListener(l MouseListener) { s.ls.removeMouse(l) }

func (s *x11Surface) SetPainter(p Painter) {
	s.mu.Lock()
	s.painter = p
	s.mu.Unlock()
}

func (s *x11Surface) repaint() {
	s.mu.Lock()
	p := s.painter
	s.mu.Unlock()
	if p != nil {
		p.Paint()
	}
}

func (s *x11Surface) Destroy() {
	s.surf.Destroy()
}
