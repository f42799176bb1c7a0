package x11

import (
	"testing"

	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/BurntSushi/xgb/xproto"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want int
	}{
		{'a', input.KeyA},
		{'q', input.KeyQ},
		{'7', input.Key7},
		{' ', input.KeySpace},
		{'/', '/'},
		{xkEscape, input.KeyEsc},
		{xkReturn, input.KeyEnter},
		{xkF1, input.KeyF1},
		{xkF12, input.KeyF12},
		{xkControlR, input.KeyCtrl},
		{0xfe03, input.KeyError},
	}
	for _, tt := range tests {
		if got := KeyCode(tt.sym); got != tt.want {
			t.Fatalf("KeyCode(%#x) = %d, want %d", tt.sym, got, tt.want)
		}
	}
}

func TestFillBGRA(t *testing.T) {
	src := []uint32{0xff102030, 0x80405060}
	dst := make([]uint8, 12)
	// stride wider than the row leaves padding untouched
	FillBGRA(dst, 12, src, 2, 1)

	want := []uint8{0x30, 0x20, 0x10, 0xff, 0x60, 0x50, 0x40, 0x80, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("byte %d: got %#x, want %#x (dst=%v)", i, dst[i], want[i], dst)
		}
	}

	// short source stops at the last complete row
	dst2 := make([]uint8, 16)
	FillBGRA(dst2, 8, src, 2, 2)
	if dst2[8] != 0 {
		t.Fatalf("second row should be untouched, got %v", dst2)
	}
}
