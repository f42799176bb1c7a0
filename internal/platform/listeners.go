package platform

import "sync"

// listeners is the listener bookkeeping shared by the hosts.
type listeners struct {
	mu     sync.Mutex
	keys   []KeyListener
	mice   []MouseListener
	window []WindowListener
}

func (l *listeners) addKey(k KeyListener) {
	l.mu.Lock()
	l.keys = append(l.keys, k)
	l.mu.Unlock()
}

func (l *listeners) addMouse(m MouseListener) {
	l.mu.Lock()
	l.mice = append(l.mice, m)
	l.mu.Unlock()
}

func (l *listeners) removeMouse(m MouseListener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, existing := range l.mice {
		if existing == m {
			l.mice = append(l.mice[:i], l.mice[i+1:]...)
			return
		}
	}
}

func (l *listeners) addWindow(w WindowListener) {
	l.mu.Lock()
	l.window = append(l.window, w)
	l.mu.Unlock()
}

func (l *listeners) windowListeners() []WindowListener {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]WindowListener(nil), l.window...)
}

func (l *listeners) key(code int, down bool) {
	l.mu.Lock()
	keys := append([]KeyListener(nil), l.keys...)
	l.mu.Unlock()
	for _, k := range keys {
		if down {
			k.KeyDown(code)
		} else {
			k.KeyUp(code)
		}
	}
}

func (l *listeners) mouse(fn func(MouseListener)) {
	l.mu.Lock()
	mice := append([]MouseListener(nil), l.mice...)
	l.mu.Unlock()
	for _, m := range mice {
		fn(m)
	}
}

func (l *listeners) emit(ev WindowEvent) {
	for _, w := range l.windowListeners() {
		w.WindowEvent(ev)
	}
}
