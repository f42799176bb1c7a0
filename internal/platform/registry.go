package platform

import (
	"fmt"
	"sync"
)

// DisplaySource enumerates displays. Every Host is a DisplaySource.
type DisplaySource interface {
	Displays() ([]Display, error)
}

// Registry caches the display list of a source. Lookups clamp out-of-range
// indices to the nearest valid display.
type Registry struct {
	src DisplaySource

	mu       sync.RWMutex
	displays []Display
}

// NewRegistry loads the display list once. It fails with ErrNoDisplays when
// the source reports none.
func NewRegistry(src DisplaySource) (*Registry, error) {
	r := &Registry{src: src}
	if err := r.Refresh(); err != nil {
		return nil, err
	}
	return r, nil
}

// Refresh re-enumerates displays. On error the previous list is kept.
func (r *Registry) Refresh() error {
	displays, err := r.src.Displays()
	if err != nil {
		return fmt.Errorf("enumerate displays: %w", err)
	}
	if len(displays) == 0 {
		return ErrNoDisplays
	}

	r.mu.Lock()
	r.displays = append([]Display(nil), displays...)
	r.mu.Unlock()
	return nil
}

// Len returns the number of known displays.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.displays)
}

// Display returns display i, clamped to [0, Len()-1].
func (r *Registry) Display(i int) Display {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 {
		i = 0
	}
	if i >= len(r.displays) {
		i = len(r.displays) - 1
	}
	return r.displays[i]
}

// Displays returns a copy of the cached list.
func (r *Registry) Displays() []Display {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Display(nil), r.displays...)
}
