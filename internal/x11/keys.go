package x11

import (
	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/BurntSushi/xgb/xproto"
)

// Keysyms from X11/keysymdef.h that have no printable ASCII form.
const (
	xkBackSpace = 0xff08
	xkTab       = 0xff09
	xkReturn    = 0xff0d
	xkPause     = 0xff13
	xkEscape    = 0xff1b
	xkLeft      = 0xff51
	xkUp        = 0xff52
	xkRight     = 0xff53
	xkDown      = 0xff54
	xkKPEnter   = 0xff8d
	xkF1        = 0xffbe
	xkF12       = 0xffc9
	xkShiftL    = 0xffe1
	xkShiftR    = 0xffe2
	xkControlL  = 0xffe3
	xkControlR  = 0xffe4
	xkAltL      = 0xffe9
	xkAltR      = 0xffea
)

var specialKeys = map[xproto.Keysym]int{
	xkBackSpace: input.KeyBackspace,
	xkTab:       input.KeyTab,
	xkReturn:    input.KeyEnter,
	xkKPEnter:   input.KeyEnter,
	xkPause:     input.KeyPause,
	xkEscape:    input.KeyEsc,
	xkLeft:      input.KeyLeft,
	xkUp:        input.KeyUp,
	xkRight:     input.KeyRight,
	xkDown:      input.KeyDown,
	xkShiftL:    input.KeyShift,
	xkShiftR:    input.KeyShift,
	xkControlL:  input.KeyCtrl,
	xkControlR:  input.KeyCtrl,
	xkAltL:      input.KeyAlt,
	xkAltR:      input.KeyAlt,
}

// KeyCode maps an unshifted keysym to an input key code, or input.KeyError.
func KeyCode(sym xproto.Keysym) int {
	switch {
	case sym >= 'a' && sym <= 'z':
		return int(sym) - 32
	case sym >= 0x20 && sym <= 0x7e:
		return int(sym)
	case sym >= xkF1 && sym <= xkF12:
		return input.KeyF1 + int(sym-xkF1)
	}
	if code, ok := specialKeys[sym]; ok {
		return code
	}
	return input.KeyError
}
