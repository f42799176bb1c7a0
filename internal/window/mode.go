package window

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for unrecognised names.
var ErrUnknownMode = errors.New("unknown window mode")

// Mode selects how a window occupies its display.
type Mode int

const (
	// Windowed is a decorated window at the requested size, centered.
	Windowed Mode = iota
	// Borderless is an undecorated window at the requested size, centered.
	Borderless
	// Fullscreen requests exclusive fullscreen, falling back to Windowed.
	Fullscreen
	// BorderlessFull is an undecorated window covering the display.
	BorderlessFull
)

var modeNames = [...]string{
	Windowed:       "windowed",
	Borderless:     "borderless",
	Fullscreen:     "fullscreen",
	BorderlessFull: "borderless-full",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode parses a mode name as printed by String. Case is ignored.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return Windowed, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Modes returns every mode in declaration order.
func Modes() []Mode {
	return []Mode{Windowed, Borderless, Fullscreen, BorderlessFull}
}

// fillsDisplay reports whether entering m sizes the frame to the display.
func (m Mode) fillsDisplay() bool {
	return m == Fullscreen || m == BorderlessFull
}
