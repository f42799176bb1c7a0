package input

import "sync"

// NumKeys is the number of key codes a Keyboard tracks.
const NumKeys = 1024

// Keyboard tracks key state between frames.
type Keyboard struct {
	mu       sync.Mutex
	current  [NumKeys]bool
	previous [NumKeys]bool
}

// NewKeyboard returns a keyboard with every key up.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDown records a press. Codes outside [0, NumKeys) are ignored.
func (k *Keyboard) KeyDown(code int) {
	if code < 0 || code >= NumKeys {
		return
	}
	k.mu.Lock()
	k.current[code] = true
	k.mu.Unlock()
}

// KeyUp records a release. Codes outside [0, NumKeys) are ignored.
func (k *Keyboard) KeyUp(code int) {
	if code < 0 || code >= NumKeys {
		return
	}
	k.mu.Lock()
	k.current[code] = false
	k.mu.Unlock()
}

// Update copies the current state into the previous-frame register.
func (k *Keyboard) Update() {
	k.mu.Lock()
	k.previous = k.current
	k.mu.Unlock()
}

// IsKey reports whether the key is held.
func (k *Keyboard) IsKey(code int) bool {
	code = clamp(code, NumKeys)
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current[code]
}

// IsKeyDown reports whether the key went down since the last Update.
func (k *Keyboard) IsKeyDown(code int) bool {
	code = clamp(code, NumKeys)
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.current[code] && !k.previous[code]
}

// IsKeyUp reports whether the key was released since the last Update.
func (k *Keyboard) IsKeyUp(code int) bool {
	code = clamp(code, NumKeys)
	k.mu.Lock()
	defer k.mu.Unlock()
	return !k.current[code] && k.previous[code]
}

// clamp limits i to [0, n-1].
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
