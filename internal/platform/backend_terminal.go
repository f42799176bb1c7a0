package platform

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/gdamore/tcell/v2"
)

// DefaultReleaseDelay is how long a terminal key stays down when the
// terminal reports no release event.
const DefaultReleaseDelay = 120 * time.Millisecond

// halfBlock paints the upper pixel as foreground and the lower as background.
const halfBlock = '▀'

// TerminalHost implements Host on a character terminal. Each cell shows two
// vertically stacked pixels, so the single display is cols x rows*2 pixels.
type TerminalHost struct {
	screen tcell.Screen
	logger *slog.Logger

	// ReleaseDelay overrides DefaultReleaseDelay when non-zero.
	ReleaseDelay time.Duration

	drawMu sync.Mutex

	mu      sync.Mutex
	frames  []*termFrame
	held    map[int]*time.Timer
	buttons tcell.ButtonMask
}

var _ Host = (*TerminalHost)(nil)

// NewTerminalHost initializes screen for pixel output. A nil screen opens
// the controlling terminal.
func NewTerminalHost(screen tcell.Screen, logger *slog.Logger) (*TerminalHost, error) {
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("open terminal: %w", err)
		}
		screen = s
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TerminalHost{
		screen: screen,
		logger: logger,
		held:   make(map[int]*time.Timer),
	}, nil
}

// Run polls terminal events until ctx is cancelled or the screen is closed.
func (h *TerminalHost) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		h.handle(ev)
	}
}

// Close restores the terminal.
func (h *TerminalHost) Close() {
	h.mu.Lock()
	for code, t := range h.held {
		t.Stop()
		delete(h.held, code)
	}
	h.mu.Unlock()
	h.screen.Fini()
}

// Displays reports the terminal as one display.
func (h *TerminalHost) Displays() ([]Display, error) {
	d, err := TerminalDisplay(h.screen.Size())
	if err != nil {
		return nil, err
	}
	return []Display{d}, nil
}

// TerminalDisplay describes a cols x rows terminal. Each cell holds two
// vertically stacked pixels.
func TerminalDisplay(cols, rows int) (Display, error) {
	if cols <= 0 || rows <= 0 {
		return Display{}, ErrNoDisplays
	}
	return Display{
		Name:                "terminal",
		Bounds:              Rect{Width: cols, Height: rows * 2},
		FullscreenSupported: true,
	}, nil
}

// NewFrame creates a hidden frame.
func (h *TerminalHost) NewFrame(title string) (Frame, error) {
	return &termFrame{host: h, title: title, decorated: true}, nil
}

// NewSurface creates a detached surface.
func (h *TerminalHost) NewSurface(width, height int) (Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	return &termSurface{host: h, width: width, height: height}, nil
}

func (h *TerminalHost) releaseDelay() time.Duration {
	if h.ReleaseDelay > 0 {
		return h.ReleaseDelay
	}
	return DefaultReleaseDelay
}

// top returns the frontmost visible frame.
func (h *TerminalHost) top() *termFrame {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

func (h *TerminalHost) show(f *termFrame) {
	h.mu.Lock()
	h.frames = append(h.frames, f)
	h.mu.Unlock()
	h.render()
}

func (h *TerminalHost) hide(f *termFrame) {
	h.mu.Lock()
	for i, existing := range h.frames {
		if existing == f {
			h.frames = append(h.frames[:i], h.frames[i+1:]...)
			break
		}
	}
	h.mu.Unlock()
	h.render()
}

// render redraws every visible frame back to front.
func (h *TerminalHost) render() {
	h.mu.Lock()
	frames := append([]*termFrame(nil), h.frames...)
	h.mu.Unlock()

	h.drawMu.Lock()
	defer h.drawMu.Unlock()
	h.screen.Clear()
	for _, f := range frames {
		f.draw(h.screen)
	}
	h.screen.Show()
}

func (h *TerminalHost) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		cols, rows := ev.Size()
		if f := h.top(); f != nil {
			f.ls.emit(WindowEvent{Kind: WindowResized, Width: cols, Height: rows * 2})
			if s := f.attached(); s != nil {
				s.repaint()
			}
		}
		h.render()
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	}
}

func (h *TerminalHost) handleKey(ev *tcell.EventKey) {
	f := h.top()
	if f == nil {
		return
	}
	if ev.Key() == tcell.KeyCtrlC {
		f.ls.emit(WindowEvent{Kind: WindowClosing})
		return
	}
	code := TerminalKeyCode(ev)
	if code == input.KeyError {
		return
	}

	h.mu.Lock()
	t, repeat := h.held[code]
	if repeat {
		t.Reset(h.releaseDelay())
	} else {
		h.held[code] = time.AfterFunc(h.releaseDelay(), func() {
			h.mu.Lock()
			delete(h.held, code)
			h.mu.Unlock()
			f.ls.key(code, false)
		})
	}
	h.mu.Unlock()

	if !repeat {
		f.ls.key(code, true)
	}
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button int
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button3, input.ButtonMiddle},
	{tcell.Button2, input.ButtonRight},
}

func (h *TerminalHost) handleMouse(ev *tcell.EventMouse) {
	f := h.top()
	if f == nil {
		return
	}
	s := f.attached()
	if s == nil || !s.enabled.Load() {
		return
	}

	cx, cy := ev.Position()
	b := f.Bounds()
	x := cx - b.X
	y := cy*2 - b.Y

	mask := ev.Buttons()
	h.mu.Lock()
	prev := h.buttons
	h.buttons = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	h.mu.Unlock()

	s.ls.mouse(func(m MouseListener) {
		m.Moved(x, y)
		for _, mb := range mouseButtons {
			switch {
			case mask&mb.mask != 0 && prev&mb.mask == 0:
				m.ButtonDown(mb.button, x, y)
			case mask&mb.mask == 0 && prev&mb.mask != 0:
				m.ButtonUp(mb.button, x, y)
			}
		}
		if mask&tcell.WheelUp != 0 {
			m.Wheel(-1, 1)
		}
		if mask&tcell.WheelDown != 0 {
			m.Wheel(1, 1)
		}
	})
}

// TerminalKeyCode maps a tcell key event to an input key code, or
// input.KeyError.
func TerminalKeyCode(ev *tcell.EventKey) int {
	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		switch {
		case r >= 'a' && r <= 'z':
			return int(r) - 32
		case r >= 0x20 && r < 0x7f:
			return int(r)
		}
		return input.KeyError
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return input.KeyF1 + int(k-tcell.KeyF1)
	case k == tcell.KeyEnter:
		return input.KeyEnter
	case k == tcell.KeyTab:
		return input.KeyTab
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return input.KeyBackspace
	case k == tcell.KeyEsc:
		return input.KeyEsc
	case k == tcell.KeyLeft:
		return input.KeyLeft
	case k == tcell.KeyUp:
		return input.KeyUp
	case k == tcell.KeyRight:
		return input.KeyRight
	case k == tcell.KeyDown:
		return input.KeyDown
	}
	return input.KeyError
}

type termFrame struct {
	host *TerminalHost
	ls   listeners

	mu        sync.Mutex
	title     string
	decorated bool
	bounds    Rect
	visible   bool
	surface   *termSurface
}

func (f *termFrame) SetTitle(title string) {
	f.mu.Lock()
	f.title = title
	visible := f.visible
	f.mu.Unlock()
	if visible {
		f.host.screen.SetTitle(title)
		f.host.render()
	}
}

func (f *termFrame) SetDecorated(decorated bool) {
	f.mu.Lock()
	f.decorated = decorated
	f.mu.Unlock()
}

func (f *termFrame) SetBounds(r Rect) {
	f.mu.Lock()
	f.bounds = r
	f.mu.Unlock()
}

func (f *termFrame) Bounds() Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds
}

// SetFullscreen is accepted without effect: a terminal frame already covers
// the display when sized to it.
func (f *termFrame) SetFullscreen(Display, bool) error { return nil }

// SetIcon is ignored; terminals have no window icon.
func (f *termFrame) SetIcon([]byte) error { return nil }

func (f *termFrame) SetVisible(visible bool) {
	f.mu.Lock()
	changed := f.visible != visible
	f.visible = visible
	title := f.title
	f.mu.Unlock()
	if !changed {
		return
	}
	if visible {
		f.host.screen.SetTitle(title)
		f.host.show(f)
		f.ls.emit(WindowEvent{Kind: WindowOpened})
		return
	}
	f.host.hide(f)
}

func (f *termFrame) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *termFrame) Attach(s Surface) error {
	ts, ok := s.(*termSurface)
	if !ok {
		return fmt.Errorf("terminal frame cannot host %T", s)
	}
	f.mu.Lock()
	f.surface = ts
	f.mu.Unlock()
	ts.frame.Store(f)
	return nil
}

func (f *termFrame) Detach(s Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ts, ok := s.(*termSurface); ok && ts == f.surface {
		ts.frame.Store(nil)
		f.surface = nil
	}
}

func (f *termFrame) attached() *termSurface {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.surface
}

func (f *termFrame) Pack() {
	f.mu.Lock()
	if f.surface != nil {
		f.bounds.Width, f.bounds.Height = f.surface.Size()
	}
	f.mu.Unlock()
}

func (f *termFrame) AddKeyListener(l KeyListener) { f.ls.addKey(l) }

func (f *termFrame) AddWindowListener(l WindowListener) { f.ls.addWindow(l) }

func (f *termFrame) WindowListeners() []WindowListener { return f.ls.windowListeners() }

func (f *termFrame) Dispose() {
	f.SetVisible(false)
	f.ls.emit(WindowEvent{Kind: WindowClosed})
}

// draw paints the frame. Bounds are in pixels; y is halved into cell rows.
func (f *termFrame) draw(screen tcell.Screen) {
	f.mu.Lock()
	b := f.bounds
	title := f.title
	decorated := f.decorated
	s := f.surface
	f.mu.Unlock()

	ox, oy := b.X, b.Y/2
	rows := (b.Height + 1) / 2
	if decorated {
		drawBorder(screen, ox-1, oy-1, b.Width+2, rows+2, title)
	}
	if s == nil {
		return
	}

	w, h, pixels := s.content()
	if len(pixels) < w*h {
		return
	}
	for y := 0; y < h; y += 2 {
		for x := 0; x < w; x++ {
			top := pixels[y*w+x]
			bottom := uint32(0)
			if y+1 < h {
				bottom = pixels[(y+1)*w+x]
			}
			style := tcell.StyleDefault.
				Foreground(argbColor(top)).
				Background(argbColor(bottom))
			screen.SetContent(ox+x, oy+y/2, halfBlock, nil, style)
		}
	}
}

func drawBorder(screen tcell.Screen, x, y, w, h int, title string) {
	style := tcell.StyleDefault
	for i := x + 1; i < x+w-1; i++ {
		screen.SetContent(i, y, tcell.RuneHLine, nil, style)
		screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		screen.SetContent(x, j, tcell.RuneVLine, nil, style)
		screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, style)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)

	col := x + 2
	for _, r := range title {
		if col >= x+w-2 {
			break
		}
		screen.SetContent(col, y, r, nil, style.Bold(true))
		col++
	}
}

func argbColor(p uint32) tcell.Color {
	return tcell.NewRGBColor(int32(p>>16&0xff), int32(p>>8&0xff), int32(p&0xff))
}

type termSurface struct {
	host          *TerminalHost
	width, height int
	enabled       atomic.Bool
	frame         atomic.Pointer[termFrame]
	ls            listeners

	mu      sync.Mutex
	pixels  []uint32
	painter Painter
}

func (s *termSurface) Size() (int, int) { return s.width, s.height }

func (s *termSurface) SetEnabled(enabled bool) { s.enabled.Store(enabled) }

// Present keeps a copy of pixels and redraws the terminal when attached.
func (s *termSurface) Present(pixels []uint32) {
	s.mu.Lock()
	s.pixels = append(s.pixels[:0], pixels...)
	s.mu.Unlock()
	if f := s.frame.Load(); f != nil && f.Visible() {
		s.host.render()
	}
}

func (s *termSurface) content() (int, int, []uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height, append([]uint32(nil), s.pixels...)
}

func (s *termSurface) repaint() {
	s.mu.Lock()
	p := s.painter
	s.mu.Unlock()
	if p != nil {
		p.Paint()
	}
}

func (s *termSurface) SetPainter(p Painter) {
	s.mu.Lock()
	s.painter = p
	s.mu.Unlock()
}

func (s *termSurface) AddMouseListener(l MouseListener) { s.ls.addMouse(l) }

func (s *termSurface) RemoveMouseListener(l MouseListener) { s.ls.removeMouse(l) }

func (s *termSurface) Destroy() {
	s.mu.Lock()
	s.pixels = nil
	s.painter = nil
	s.mu.Unlock()
}
