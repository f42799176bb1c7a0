package buffer

import "sync"

// Grid is the operation set shared by Buffer and Sync.
type Grid[T Element] interface {
	Width() int
	Height() int
	Len() int
	Resize(width, height int) error
	ResizeFill(width, height int, fill T) error
	Clear(v T)
	PlotAll(src []T) error
	Plot(i int, v T)
	PlotXY(x, y int, v T)
	Grab(i int) T
	GrabXY(x, y int) T
	Sample(u, v, w float64) T
	Content() []T
	Snapshot() *Buffer[T]
	Free()
}

var (
	_ Grid[uint32] = (*Buffer[uint32])(nil)
	_ Grid[uint32] = (*Sync[uint32])(nil)
)

// Sync wraps a Buffer so that every operation is mutually exclusive with
// every other operation on the same Sync.
//
// Content returns a copy, not the live store: a live slice would escape the
// lock. Use Do for in-place multi-step access.
type Sync[T Element] struct {
	mu  sync.Mutex
	buf *Buffer[T]
}

// Typed synchronized buffers.
type (
	SyncBoolBuffer   = Sync[bool]
	SyncByteBuffer   = Sync[uint8]
	SyncShortBuffer  = Sync[int16]
	SyncIntBuffer    = Sync[int32]
	SyncLongBuffer   = Sync[int64]
	SyncFloatBuffer  = Sync[float32]
	SyncDoubleBuffer = Sync[float64]
	SyncPixelBuffer  = Sync[uint32]
)

// NewSync allocates a zeroed synchronized buffer.
func NewSync[T Element](width, height int) *Sync[T] {
	return &Sync[T]{buf: New[T](width, height)}
}

// NewSyncFilled allocates a synchronized buffer with every element set to v.
func NewSyncFilled[T Element](width, height int, v T) *Sync[T] {
	return &Sync[T]{buf: NewFilled(width, height, v)}
}

// WrapSync takes ownership of b. The caller must stop using b directly.
func WrapSync[T Element](b *Buffer[T]) *Sync[T] {
	return &Sync[T]{buf: b}
}

func (s *Sync[T]) Width() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Width()
}

func (s *Sync[T]) Height() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Height()
}

func (s *Sync[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

func (s *Sync[T]) Resize(width, height int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Resize(width, height)
}

func (s *Sync[T]) ResizeFill(width, height int, fill T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.ResizeFill(width, height, fill)
}

func (s *Sync[T]) Clear(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Clear(v)
}

func (s *Sync[T]) PlotAll(src []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.PlotAll(src)
}

func (s *Sync[T]) Plot(i int, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Plot(i, v)
}

func (s *Sync[T]) PlotXY(x, y int, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.PlotXY(x, y, v)
}

func (s *Sync[T]) Grab(i int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Grab(i)
}

func (s *Sync[T]) GrabXY(x, y int) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.GrabXY(x, y)
}

func (s *Sync[T]) Sample(u, v, w float64) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Sample(u, v, w)
}

// Content returns a copy of the backing store taken under the lock.
func (s *Sync[T]) Content() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.buf.Content()
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// Do runs fn with the lock held. fn must not retain b.
func (s *Sync[T]) Do(fn func(b *Buffer[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.buf)
}

// Copy returns a new Sync holding a consistent snapshot of s.
func (s *Sync[T]) Copy() *Sync[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Sync[T]{buf: s.buf.Copy()}
}

// Snapshot returns an unsynchronized copy taken under the lock.
func (s *Sync[T]) Snapshot() *Buffer[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Copy()
}

func (s *Sync[T]) Free() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Free()
}
