// Package buffer provides fixed-size two dimensional element buffers.
//
// A Buffer stores width*height elements in row-major order and can be
// addressed by linear index, by (x, y) or by normalized (u, v, w) sampling.
// The per-element accessors are unchecked fast paths: indices outside
// [0, Len) are the caller's problem. Boundary operations (Resize, PlotAll)
// report errors instead.
package buffer

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensions reports a negative or overflowing width/height.
	ErrDimensions = errors.New("buffer: invalid dimensions")
	// ErrLengthMismatch reports a source array that does not match the buffer length.
	ErrLengthMismatch = errors.New("buffer: length mismatch")
	// ErrReleased reports use of a buffer after Free.
	ErrReleased = errors.New("buffer: use after free")
)

// Element is the set of types a Buffer can hold.
type Element interface {
	~bool | ~uint8 | ~int16 | ~int32 | ~uint32 | ~int64 | ~float32 | ~float64
}

// sampleGuard keeps u=1,v=1 from stepping one row/column past the end.
const sampleGuard = 0.999

// Buffer is a width x height grid of elements.
type Buffer[T Element] struct {
	width    int
	height   int
	data     []T
	released bool
}

// Typed buffers.
type (
	BoolBuffer   = Buffer[bool]
	ByteBuffer   = Buffer[uint8]
	ShortBuffer  = Buffer[int16]
	IntBuffer    = Buffer[int32]
	LongBuffer   = Buffer[int64]
	FloatBuffer  = Buffer[float32]
	DoubleBuffer = Buffer[float64]
	// PixelBuffer holds ARGB pixels, 8 bits per channel.
	PixelBuffer = Buffer[uint32]
)

// New allocates a zeroed width x height buffer.
// It panics with ErrDimensions when the size cannot be represented.
func New[T Element](width, height int) *Buffer[T] {
	n, err := area(width, height)
	if err != nil {
		panic(err)
	}
	return &Buffer[T]{width: width, height: height, data: make([]T, n)}
}

// NewFilled allocates a width x height buffer with every element set to v.
func NewFilled[T Element](width, height int, v T) *Buffer[T] {
	b := New[T](width, height)
	b.Clear(v)
	return b
}

// area returns width*height or ErrDimensions.
func area(width, height int) (int, error) {
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if height != 0 && width > math.MaxInt/height {
		return 0, fmt.Errorf("%w: %dx%d overflows", ErrDimensions, width, height)
	}
	return width * height, nil
}

func (b *Buffer[T]) Width() int  { return b.width }
func (b *Buffer[T]) Height() int { return b.height }

// Len returns width*height.
func (b *Buffer[T]) Len() int { return b.width * b.height }

// Released reports whether Free has been called.
func (b *Buffer[T]) Released() bool { return b.released }

func (b *Buffer[T]) mustLive() {
	if b.released {
		panic(ErrReleased)
	}
}

// Resize changes the dimensions, keeping the top-left overlap and zeroing the rest.
func (b *Buffer[T]) Resize(width, height int) error {
	var zero T
	return b.ResizeFill(width, height, zero)
}

// ResizeFill changes the dimensions. Elements inside the overlap of the old
// and new rectangle keep their value; every other element is set to fill.
func (b *Buffer[T]) ResizeFill(width, height int, fill T) error {
	if b.released {
		return ErrReleased
	}
	n, err := area(width, height)
	if err != nil {
		return err
	}

	old, oldStride := b.data, b.width
	data := make([]T, n)
	for i := range data {
		data[i] = fill
	}

	rows := min(b.height, height)
	cols := min(b.width, width)
	src, dst := 0, 0
	for y := 0; y < rows; y++ {
		copy(data[dst:dst+cols], old[src:src+cols])
		src += oldStride
		dst += width
	}

	b.width, b.height, b.data = width, height, data
	return nil
}

// Clear sets every element to v.
func (b *Buffer[T]) Clear(v T) {
	b.mustLive()
	for i := range b.data {
		b.data[i] = v
	}
}

// PlotAll overwrites the whole buffer from src, which must have exactly Len elements.
func (b *Buffer[T]) PlotAll(src []T) error {
	if b.released {
		return ErrReleased
	}
	if len(src) != len(b.data) {
		return fmt.Errorf("%w: got %d elements, want %d", ErrLengthMismatch, len(src), len(b.data))
	}
	copy(b.data, src)
	return nil
}

// Plot sets the element at linear index i.
func (b *Buffer[T]) Plot(i int, v T) { b.data[i] = v }

// PlotXY sets the element at (x, y).
func (b *Buffer[T]) PlotXY(x, y int, v T) { b.data[x+y*b.width] = v }

// Grab returns the element at linear index i.
func (b *Buffer[T]) Grab(i int) T { return b.data[i] }

// GrabXY returns the element at (x, y).
func (b *Buffer[T]) GrabXY(x, y int) T { return b.data[x+y*b.width] }

// Sample reads the element at normalized coordinates (u, v) in [0, 1).
// w is a depth divisor; pass 1 when unused.
func (b *Buffer[T]) Sample(u, v, w float64) T {
	x, y := sampleIndex(u, v, w, b.width, b.height)
	return b.data[x+y*b.width]
}

func sampleIndex(u, v, w float64, width, height int) (int, int) {
	scale := sampleGuard * w
	x := int(math.Floor(scale * u * float64(width)))
	y := int(math.Floor(scale * v * float64(height)))
	return x, y
}

// Content returns the live backing store.
func (b *Buffer[T]) Content() []T {
	b.mustLive()
	return b.data
}

// Copy returns a buffer with the same dimensions and content and no shared storage.
func (b *Buffer[T]) Copy() *Buffer[T] {
	b.mustLive()
	data := make([]T, len(b.data))
	copy(data, b.data)
	return &Buffer[T]{width: b.width, height: b.height, data: data}
}

// Snapshot is Copy; it lets Buffer and Sync share the Grid interface.
func (b *Buffer[T]) Snapshot() *Buffer[T] { return b.Copy() }

// Free drops the backing store. The buffer must not be used afterwards.
func (b *Buffer[T]) Free() {
	b.data = nil
	b.released = true
}
