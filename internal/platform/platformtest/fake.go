// Package platformtest provides an in-memory platform.Host that records the
// calls made against it.
package platformtest

import (
	"errors"
	"sync"

	"github.com/1broseidon/pixelwin/internal/platform"
)

// ErrIconRejected is returned by Frame.SetIcon when the frame is configured
// to reject icons.
var ErrIconRejected = errors.New("icon rejected")

// Host is a fake platform.Host.
type Host struct {
	mu        sync.Mutex
	displays  []platform.Display
	frames    []*Frame
	surfaces  []*Surface
	enumCalls int

	// RejectIcons makes every new frame fail SetIcon.
	RejectIcons bool
	// SurfaceErr, when set, is returned by NewSurface.
	SurfaceErr error
}

var _ platform.Host = (*Host)(nil)

// NewHost returns a host reporting the given displays.
func NewHost(displays ...platform.Display) *Host {
	return &Host{displays: displays}
}

// SetDisplays replaces the reported display list.
func (h *Host) SetDisplays(displays ...platform.Display) {
	h.mu.Lock()
	h.displays = displays
	h.mu.Unlock()
}

// EnumerateCalls counts Displays calls.
func (h *Host) EnumerateCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.enumCalls
}

func (h *Host) Displays() ([]platform.Display, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.enumCalls++
	return append([]platform.Display(nil), h.displays...), nil
}

func (h *Host) NewFrame(title string) (platform.Frame, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	f := &Frame{title: title, decorated: true, rejectIcon: h.RejectIcons}
	h.frames = append(h.frames, f)
	return f, nil
}

func (h *Host) NewSurface(width, height int) (platform.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.SurfaceErr != nil {
		return nil, h.SurfaceErr
	}
	s := &Surface{width: width, height: height}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

// Frames returns every frame created so far, oldest first.
func (h *Host) Frames() []*Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Frame(nil), h.frames...)
}

// LastFrame returns the most recently created frame.
func (h *Host) LastFrame() *Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

// Surfaces returns every surface created so far, oldest first.
func (h *Host) Surfaces() []*Surface {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]*Surface(nil), h.surfaces...)
}

// Frame is a fake platform.Frame.
type Frame struct {
	mu         sync.Mutex
	title      string
	decorated  bool
	bounds     platform.Rect
	fullscreen bool
	icon       []byte
	rejectIcon bool
	visible    bool
	surface    platform.Surface
	keys       []platform.KeyListener
	window     []platform.WindowListener
	packs      int
	disposed   bool
	calls      []string
}

func (f *Frame) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *Frame) SetTitle(title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.title = title
	f.record("title")
}

func (f *Frame) SetDecorated(decorated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.decorated = decorated
	f.record("decorated")
}

func (f *Frame) SetBounds(r platform.Rect) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bounds = r
	f.record("bounds")
}

func (f *Frame) Bounds() platform.Rect {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bounds
}

func (f *Frame) SetFullscreen(d platform.Display, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if on && !d.FullscreenSupported {
		return errors.New("fullscreen not supported")
	}
	f.fullscreen = on
	f.record("fullscreen")
	return nil
}

func (f *Frame) SetIcon(png []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("icon")
	if f.rejectIcon {
		return ErrIconRejected
	}
	f.icon = append([]byte(nil), png...)
	return nil
}

func (f *Frame) SetVisible(visible bool) {
	f.mu.Lock()
	changed := f.visible != visible
	f.visible = visible
	f.record("visible")
	f.mu.Unlock()
	if changed && visible {
		f.Emit(platform.WindowEvent{Kind: platform.WindowOpened})
	}
}

func (f *Frame) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visible
}

func (f *Frame) Attach(s platform.Surface) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.surface = s
	f.record("attach")
	return nil
}

func (f *Frame) Detach(s platform.Surface) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.surface == s {
		f.surface = nil
	}
	f.record("detach")
}

func (f *Frame) Pack() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.surface != nil {
		f.bounds.Width, f.bounds.Height = f.surface.Size()
	}
	f.packs++
	f.record("pack")
}

func (f *Frame) AddKeyListener(l platform.KeyListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, l)
}

func (f *Frame) AddWindowListener(l platform.WindowListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.window = append(f.window, l)
}

func (f *Frame) WindowListeners() []platform.WindowListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.WindowListener(nil), f.window...)
}

func (f *Frame) Dispose() {
	f.mu.Lock()
	f.disposed = true
	f.visible = false
	f.surface = nil
	f.record("dispose")
	f.mu.Unlock()
	f.Emit(platform.WindowEvent{Kind: platform.WindowClosed})
}

// Emit delivers ev to the frame's window listeners.
func (f *Frame) Emit(ev platform.WindowEvent) {
	for _, l := range f.WindowListeners() {
		l.WindowEvent(ev)
	}
}

// PressKey delivers a key down and up to the frame's key listeners.
func (f *Frame) PressKey(code int) {
	f.mu.Lock()
	keys := append([]platform.KeyListener(nil), f.keys...)
	f.mu.Unlock()
	for _, k := range keys {
		k.KeyDown(code)
	}
	for _, k := range keys {
		k.KeyUp(code)
	}
}

func (f *Frame) Title() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.title
}

func (f *Frame) Decorated() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.decorated
}

func (f *Frame) Fullscreen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fullscreen
}

func (f *Frame) Icon() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.icon
}

func (f *Frame) Surface() platform.Surface {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.surface
}

func (f *Frame) KeyListeners() []platform.KeyListener {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]platform.KeyListener(nil), f.keys...)
}

func (f *Frame) Packs() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.packs
}

func (f *Frame) Disposed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed
}

// Calls returns the recorded mutating calls in order.
func (f *Frame) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Surface is a fake platform.Surface.
type Surface struct {
	mu        sync.Mutex
	width     int
	height    int
	enabled   bool
	presented []uint32
	presents  int
	painter   platform.Painter
	mice      []platform.MouseListener
	destroyed bool
	onPresent func(pixels []uint32)
}

func (s *Surface) Size() (int, int) {
	return s.width, s.height
}

func (s *Surface) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
}

func (s *Surface) Present(pixels []uint32) {
	s.mu.Lock()
	s.presented = append(s.presented[:0], pixels...)
	s.presents++
	hook := s.onPresent
	var frame []uint32
	if hook != nil {
		frame = append([]uint32(nil), s.presented...)
	}
	s.mu.Unlock()
	if hook != nil {
		hook(frame)
	}
}

// OnPresent installs fn to receive a copy of every presented frame.
func (s *Surface) OnPresent(fn func(pixels []uint32)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPresent = fn
}

func (s *Surface) SetPainter(p platform.Painter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.painter = p
}

func (s *Surface) AddMouseListener(l platform.MouseListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mice = append(s.mice, l)
}

func (s *Surface) RemoveMouseListener(l platform.MouseListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.mice {
		if m == l {
			s.mice = append(s.mice[:i], s.mice[i+1:]...)
			return
		}
	}
}

func (s *Surface) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = true
}

// Expose asks the installed painter to repaint, as a host would on expose.
func (s *Surface) Expose() {
	s.mu.Lock()
	p := s.painter
	s.mu.Unlock()
	if p != nil {
		p.Paint()
	}
}

// Click delivers a press and release of button at (x, y) to mouse listeners.
func (s *Surface) Click(button, x, y int) {
	for _, m := range s.MouseListeners() {
		m.ButtonDown(button, x, y)
		m.ButtonUp(button, x, y)
	}
}

func (s *Surface) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Presented returns a copy of the last presented pixels.
func (s *Surface) Presented() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.presented...)
}

func (s *Surface) Presents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

func (s *Surface) MouseListeners() []platform.MouseListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]platform.MouseListener(nil), s.mice...)
}

func (s *Surface) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed
}
