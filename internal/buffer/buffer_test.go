package buffer

import (
	"errors"
	"testing"
)

func TestNew_LengthAndZeroValue(t *testing.T) {
	sizes := []struct{ w, h int }{{0, 0}, {0, 5}, {1, 1}, {4, 3}, {17, 9}}
	for _, sz := range sizes {
		b := New[int32](sz.w, sz.h)
		if b.Len() != sz.w*sz.h || len(b.Content()) != sz.w*sz.h {
			t.Fatalf("%dx%d: expected length %d, got %d (store %d)", sz.w, sz.h, sz.w*sz.h, b.Len(), len(b.Content()))
		}
		for i, v := range b.Content() {
			if v != 0 {
				t.Fatalf("%dx%d: element %d = %d, want 0", sz.w, sz.h, i, v)
			}
		}
	}
}

func TestNewFilled_AllElementTypes(t *testing.T) {
	checkFilled(t, NewFilled(3, 2, true), true)
	checkFilled(t, NewFilled[uint8](3, 2, 0x7f), 0x7f)
	checkFilled(t, NewFilled[int16](3, 2, -12), -12)
	checkFilled(t, NewFilled[int32](3, 2, 1<<20), 1<<20)
	checkFilled(t, NewFilled[int64](3, 2, 1<<40), 1<<40)
	checkFilled(t, NewFilled[float32](3, 2, 0.5), 0.5)
	checkFilled(t, NewFilled(3, 2, 2.25), 2.25)
	checkFilled(t, NewFilled[uint32](3, 2, 0xff00ff00), 0xff00ff00)
}

func checkFilled[T Element](t *testing.T, b *Buffer[T], want T) {
	t.Helper()
	if b.Len() != 6 {
		t.Fatalf("expected 6 elements, got %d", b.Len())
	}
	for i, v := range b.Content() {
		if v != want {
			t.Fatalf("element %d = %v, want %v", i, v, want)
		}
	}
}

func TestNew_InvalidDimensionsPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDimensions) {
			t.Fatalf("expected ErrDimensions panic, got %v", r)
		}
	}()
	New[int32](-1, 4)
}

func TestPlotGrab_EndToEnd(t *testing.T) {
	b := New[int32](4, 3)
	b.PlotXY(2, 1, 7)

	if got := b.Grab(6); got != 7 {
		t.Fatalf("Grab(6) = %d, want 7", got)
	}
	if got := b.GrabXY(2, 1); got != 7 {
		t.Fatalf("GrabXY(2,1) = %d, want 7", got)
	}

	c := b.Copy()
	b.Free()
	if got := c.Grab(6); got != 7 {
		t.Fatalf("copy Grab(6) = %d after freeing original, want 7", got)
	}
}

func TestCopy_NoAliasing(t *testing.T) {
	b := New[float64](5, 4)
	for i := 0; i < b.Len(); i++ {
		b.Plot(i, float64(i)*1.5)
	}

	c := b.Copy()
	for i := range b.Content() {
		if c.Grab(i) != b.Grab(i) {
			t.Fatalf("copy differs at %d: %v vs %v", i, c.Grab(i), b.Grab(i))
		}
	}

	c.Plot(0, -1)
	c.Clear(42)
	if b.Grab(0) != 0 || b.Grab(3) != 4.5 {
		t.Fatalf("mutating the copy changed the original: %v", b.Content()[:4])
	}
	if c.Width() != 5 || c.Height() != 4 {
		t.Fatalf("copy has size %dx%d, want 5x4", c.Width(), c.Height())
	}
}

func TestResize_PreservesOverlap(t *testing.T) {
	b := New[int32](3, 2)
	for i := 0; i < b.Len(); i++ {
		b.Plot(i, int32(i+1))
	}
	original := append([]int32(nil), b.Content()...)

	if err := b.ResizeFill(5, 4, 9); err != nil {
		t.Fatalf("resize up: %v", err)
	}
	if b.Width() != 5 || b.Height() != 4 || b.Len() != 20 {
		t.Fatalf("expected 5x4, got %dx%d (%d)", b.Width(), b.Height(), b.Len())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			got := b.GrabXY(x, y)
			want := int32(9)
			if x < 3 && y < 2 {
				want = original[x+y*3]
			}
			if got != want {
				t.Fatalf("(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}

	if err := b.ResizeFill(3, 2, 9); err != nil {
		t.Fatalf("resize back: %v", err)
	}
	for i, v := range b.Content() {
		if v != original[i] {
			t.Fatalf("round trip differs at %d: %d vs %d", i, v, original[i])
		}
	}
}

func TestResize_ShrinkKeepsTopLeft(t *testing.T) {
	b := New[uint8](4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.PlotXY(x, y, uint8(10*y+x))
		}
	}
	if err := b.Resize(2, 3); err != nil {
		t.Fatalf("resize: %v", err)
	}
	want := []uint8{0, 1, 10, 11, 20, 21}
	for i, v := range b.Content() {
		if v != want[i] {
			t.Fatalf("element %d = %d, want %d", i, v, want[i])
		}
	}
}

func TestResize_Errors(t *testing.T) {
	b := New[int16](2, 2)
	if err := b.Resize(-1, 2); !errors.Is(err, ErrDimensions) {
		t.Fatalf("expected ErrDimensions, got %v", err)
	}
	if b.Width() != 2 || b.Height() != 2 {
		t.Fatalf("failed resize changed size to %dx%d", b.Width(), b.Height())
	}
	b.Free()
	if err := b.Resize(3, 3); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased, got %v", err)
	}
}

func TestSample_Boundaries(t *testing.T) {
	b := New[int32](4, 3)
	for i := 0; i < b.Len(); i++ {
		b.Plot(i, int32(i))
	}

	tests := []struct {
		name    string
		u, v, w float64
		want    int32
	}{
		{"origin", 0, 0, 1, 0},
		{"almost one", 0.9999, 0.9999, 1, 11},
		{"exactly one", 1, 1, 1, 11},
		{"center", 0.5, 0.5, 1, 1 + 1*4},
		{"depth halves", 1, 1, 0.5, 1 + 1*4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Sample(tt.u, tt.v, tt.w); got != tt.want {
				t.Fatalf("Sample(%v,%v,%v) = %d, want %d", tt.u, tt.v, tt.w, got, tt.want)
			}
		})
	}
}

func TestPlotAll_LengthMismatch(t *testing.T) {
	b := NewFilled[int64](2, 2, 5)
	err := b.PlotAll([]int64{1, 2, 3})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	for i, v := range b.Content() {
		if v != 5 {
			t.Fatalf("element %d changed to %d on mismatch", i, v)
		}
	}

	if err := b.PlotAll([]int64{1, 2, 3, 4}); err != nil {
		t.Fatalf("plot all: %v", err)
	}
	if b.GrabXY(1, 1) != 4 {
		t.Fatalf("expected last element 4, got %d", b.GrabXY(1, 1))
	}
}

func TestFree_DetectsUseAfterFree(t *testing.T) {
	b := New[bool](2, 2)
	b.Free()
	if !b.Released() {
		t.Fatalf("expected Released after Free")
	}
	if err := b.PlotAll(make([]bool, 4)); !errors.Is(err, ErrReleased) {
		t.Fatalf("expected ErrReleased from PlotAll, got %v", err)
	}

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrReleased) {
			t.Fatalf("expected ErrReleased panic from Copy, got %v", r)
		}
	}()
	b.Copy()
}
