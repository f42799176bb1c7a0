// Package input implements polled keyboard and mouse devices.
//
// Hosts push edge events (key down/up, button down/up, motion, wheel) from
// their event goroutine. The application calls Update once per frame, which
// snapshots the current state into a "previous" register so that edge
// queries (IsKeyDown, IsClickedUp, ...) compare this frame against the last.
package input

// Key codes. Letters and digits use their upper-case ASCII value.
const (
	KeyError = -1

	KeyBackspace = 8
	KeyTab       = 9
	KeyEnter     = 10
	KeyShift     = 16
	KeyCtrl      = 17
	KeyAlt       = 18
	KeyPause     = 19
	KeyEsc       = 27
	KeySpace     = 32

	KeyLeft  = 37
	KeyUp    = 38
	KeyRight = 39
	KeyDown  = 40

	Key0 = 48
	Key1 = 49
	Key2 = 50
	Key3 = 51
	Key4 = 52
	Key5 = 53
	Key6 = 54
	Key7 = 55
	Key8 = 56
	Key9 = 57

	KeyA = 65
	KeyB = 66
	KeyC = 67
	KeyD = 68
	KeyE = 69
	KeyF = 70
	KeyG = 71
	KeyH = 72
	KeyI = 73
	KeyJ = 74
	KeyK = 75
	KeyL = 76
	KeyM = 77
	KeyN = 78
	KeyO = 79
	KeyP = 80
	KeyQ = 81
	KeyR = 82
	KeyS = 83
	KeyT = 84
	KeyU = 85
	KeyV = 86
	KeyW = 87
	KeyX = 88
	KeyY = 89
	KeyZ = 90

	KeyF1  = 112
	KeyF2  = 113
	KeyF3  = 114
	KeyF4  = 115
	KeyF5  = 116
	KeyF6  = 117
	KeyF7  = 118
	KeyF8  = 119
	KeyF9  = 120
	KeyF10 = 121
	KeyF11 = 122
	KeyF12 = 123
)

// IsLetter reports whether code is an ASCII letter (A-Z or a-z).
func IsLetter(code int) bool {
	return (code >= 'A' && code <= 'Z') || (code >= 'a' && code <= 'z')
}

// IsNumber reports whether code is an ASCII digit.
func IsNumber(code int) bool {
	return code >= '0' && code <= '9'
}

// IsPunctuation reports whether code is one of the unshifted punctuation keys.
func IsPunctuation(code int) bool {
	switch code {
	case '`', ']', '\\', '[', '=', ';', '/', '.', '-', ',', '*', '\'':
		return true
	}
	return false
}

var shiftedDigits = [10]int{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}

var shiftedPunctuation = map[int]int{
	'`':  '~',
	'-':  '_',
	'=':  '+',
	'[':  '{',
	'\\': '|',
	']':  '}',
	';':  ':',
	'\'': '"',
	',':  '<',
	'.':  '>',
	'/':  '?',
}

// Shift returns the shifted character for code, or KeyError.
// Letters map to code+32.
func Shift(code int) int {
	if IsLetter(code) {
		return code + 32
	}
	if IsNumber(code) {
		return shiftedDigits[code-'0']
	}
	if s, ok := shiftedPunctuation[code]; ok {
		return s
	}
	return KeyError
}

// KeyString returns the character for code as a string.
func KeyString(code int) string {
	return string(rune(code))
}
