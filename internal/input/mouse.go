package input

import (
	"math"
	"sync"
)

// Mouse buttons.
const (
	ButtonNone   = 0
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// NumButtons is the number of button slots a Mouse tracks.
const NumButtons = 5

// minScale keeps SetScale from dividing by zero.
const minScale = 0.0001

// Mouse tracks pointer position, button state and scrolling between frames.
type Mouse struct {
	mu       sync.Mutex
	current  [NumButtons]bool
	previous [NumButtons]bool

	x, y     int
	scroll   int
	pending  int
	invScale float64
}

// NewMouse returns a mouse at (0, 0) with a scale of 1.
func NewMouse() *Mouse {
	return &Mouse{invScale: 1}
}

// SetScale sets the factor between canvas pixels and host pixels.
// Reported positions are host positions divided by scale.
func (m *Mouse) SetScale(scale float64) {
	if scale <= 0 {
		scale = minScale
	}
	m.mu.Lock()
	m.invScale = 1 / scale
	m.mu.Unlock()
}

// Update publishes the scroll accumulated since the last call and snapshots
// button state.
func (m *Mouse) Update() {
	m.mu.Lock()
	m.scroll = m.pending
	m.pending = 0
	m.previous = m.current
	m.mu.Unlock()
}

// ButtonDown records a press at host position (x, y).
func (m *Mouse) ButtonDown(button, x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveLocked(x, y)
	if button >= 0 && button < NumButtons {
		m.current[button] = true
	}
}

// ButtonUp records a release at host position (x, y).
func (m *Mouse) ButtonUp(button, x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moveLocked(x, y)
	if button >= 0 && button < NumButtons {
		m.current[button] = false
	}
}

// Moved records pointer motion (including drags).
func (m *Mouse) Moved(x, y int) {
	m.mu.Lock()
	m.moveLocked(x, y)
	m.mu.Unlock()
}

// Wheel accumulates rotation*amount; negative rotation is away from the user.
func (m *Mouse) Wheel(rotation, amount int) {
	m.mu.Lock()
	m.pending += rotation * amount
	m.mu.Unlock()
}

func (m *Mouse) moveLocked(x, y int) {
	m.x = round(float64(x) * m.invScale)
	m.y = round(float64(y) * m.invScale)
}

func round(f float64) int {
	return int(math.Floor(f + 0.5))
}

// IsClicked reports whether the button is held.
func (m *Mouse) IsClicked(button int) bool {
	button = clamp(button, NumButtons)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current[button]
}

// IsClickedDown reports whether the button went down since the last Update.
func (m *Mouse) IsClickedDown(button int) bool {
	button = clamp(button, NumButtons)
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current[button] && !m.previous[button]
}

// IsClickedUp reports whether the button was released since the last Update.
func (m *Mouse) IsClickedUp(button int) bool {
	button = clamp(button, NumButtons)
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.current[button] && m.previous[button]
}

// IsScrolling reports whether the last Update published a non-zero scroll.
func (m *Mouse) IsScrolling() bool {
	return m.Scroll() != 0
}

// Scroll returns the signed scroll delta published by the last Update.
func (m *Mouse) Scroll() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scroll
}

// Position returns the scaled pointer position.
func (m *Mouse) Position() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.x, m.y
}

func (m *Mouse) X() int {
	x, _ := m.Position()
	return x
}

func (m *Mouse) Y() int {
	_, y := m.Position()
	return y
}
