package window

import (
	"fmt"
	"sync"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/platform"
)

// DrawCanvas is what a window displays.
type DrawCanvas interface {
	Width() int
	Height() int
	// Swap replaces the displayed pixels. pixels must hold Width()*Height()
	// ARGB values; otherwise the canvas is unchanged and an error wrapping
	// buffer.ErrLengthMismatch is returned.
	Swap(pixels []uint32) error
	// Component returns the host surface the canvas draws to.
	Component() platform.Surface
}

// PixelCanvas is the default DrawCanvas: a pixel store presented to a host
// surface. Swap and host repaints are mutually exclusive, so the surface
// never shows a partially copied frame.
type PixelCanvas struct {
	width, height int
	surface       platform.Surface

	mu       sync.Mutex
	pixels   []uint32
	released bool
}

var (
	_ DrawCanvas       = (*PixelCanvas)(nil)
	_ platform.Painter = (*PixelCanvas)(nil)
)

// NewPixelCanvas creates a width x height canvas on a new host surface.
func NewPixelCanvas(host platform.Host, width, height int) (*PixelCanvas, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d", buffer.ErrDimensions, width, height)
	}
	surface, err := host.NewSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}
	c := &PixelCanvas{
		width:   width,
		height:  height,
		surface: surface,
		pixels:  make([]uint32, width*height),
	}
	surface.SetPainter(c)
	return c, nil
}

func (c *PixelCanvas) Width() int { return c.width }

func (c *PixelCanvas) Height() int { return c.height }

func (c *PixelCanvas) Component() platform.Surface { return c.surface }

func (c *PixelCanvas) Swap(pixels []uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return buffer.ErrReleased
	}
	if len(pixels) != len(c.pixels) {
		return fmt.Errorf("%w: got %d pixels, canvas is %dx%d",
			buffer.ErrLengthMismatch, len(pixels), c.width, c.height)
	}
	copy(c.pixels, pixels)
	c.surface.Present(c.pixels)
	return nil
}

// Paint re-presents the current content. Hosts call it on expose.
func (c *PixelCanvas) Paint() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.surface.Present(c.pixels)
}

// Pixels returns a copy of the current content.
func (c *PixelCanvas) Pixels() []uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]uint32(nil), c.pixels...)
}

// Release destroys the host surface. Later Swaps return buffer.ErrReleased.
func (c *PixelCanvas) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return
	}
	c.released = true
	c.pixels = nil
	c.surface.Destroy()
}
