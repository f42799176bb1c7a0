package input

import "testing"

func TestKeyboard_EdgeAndLevel(t *testing.T) {
	k := NewKeyboard()

	k.KeyDown(KeyA)
	if !k.IsKey(KeyA) || !k.IsKeyDown(KeyA) {
		t.Fatalf("expected A held and pressed this frame")
	}
	if k.IsKeyUp(KeyA) {
		t.Fatalf("A cannot be released this frame")
	}

	k.Update()
	if !k.IsKey(KeyA) {
		t.Fatalf("expected A still held after update")
	}
	if k.IsKeyDown(KeyA) {
		t.Fatalf("IsKeyDown must only fire on the frame of the press")
	}

	k.KeyUp(KeyA)
	if !k.IsKeyUp(KeyA) || k.IsKey(KeyA) {
		t.Fatalf("expected A released this frame")
	}
	k.Update()
	if k.IsKeyUp(KeyA) {
		t.Fatalf("IsKeyUp must only fire on the frame of the release")
	}
}

func TestKeyboard_OutOfRangeCodes(t *testing.T) {
	k := NewKeyboard()
	k.KeyDown(-5)
	k.KeyDown(NumKeys + 10)
	if k.IsKey(0) || k.IsKey(NumKeys-1) {
		t.Fatalf("out of range presses must be ignored")
	}

	k.KeyDown(NumKeys - 1)
	if !k.IsKey(NumKeys + 100) {
		t.Fatalf("queries above the range should clamp to the last key")
	}
}

func TestMouse_ButtonsAndScroll(t *testing.T) {
	m := NewMouse()

	m.ButtonDown(ButtonLeft, 10, 20)
	if !m.IsClickedDown(ButtonLeft) || !m.IsClicked(ButtonLeft) {
		t.Fatalf("expected left button pressed")
	}
	if x, y := m.Position(); x != 10 || y != 20 {
		t.Fatalf("expected position (10,20), got (%d,%d)", x, y)
	}

	m.Wheel(-1, 3)
	m.Wheel(-1, 3)
	if m.IsScrolling() {
		t.Fatalf("scroll must not be visible before Update")
	}
	m.Update()
	if m.Scroll() != -6 || !m.IsScrolling() {
		t.Fatalf("expected scroll -6, got %d", m.Scroll())
	}
	m.Update()
	if m.IsScrolling() {
		t.Fatalf("scroll must reset on the following Update, got %d", m.Scroll())
	}

	m.ButtonUp(ButtonLeft, 10, 20)
	if !m.IsClickedUp(ButtonLeft) {
		t.Fatalf("expected left release edge")
	}
	if m.IsClicked(ButtonRight) {
		t.Fatalf("right button never pressed")
	}
}

func TestMouse_Scale(t *testing.T) {
	m := NewMouse()
	m.SetScale(2)
	m.Moved(21, 9)
	if x, y := m.Position(); x != 11 || y != 5 {
		t.Fatalf("expected rounded (11,5), got (%d,%d)", x, y)
	}

	m.SetScale(0)
	m.Moved(1, 0)
	if m.X() != 10000 {
		t.Fatalf("expected minimum scale to apply, got x=%d", m.X())
	}
}

func TestKeyHelpers(t *testing.T) {
	tests := []struct {
		code                 int
		letter, number, punc bool
		shift                int
	}{
		{KeyA, true, false, false, 'a'},
		{'z', true, false, false, 'z' + 32},
		{Key2, false, true, false, '@'},
		{Key0, false, true, false, ')'},
		{'/', false, false, true, '?'},
		{'*', false, false, true, KeyError},
		{KeyEsc, false, false, false, KeyError},
	}
	for _, tt := range tests {
		if IsLetter(tt.code) != tt.letter || IsNumber(tt.code) != tt.number || IsPunctuation(tt.code) != tt.punc {
			t.Fatalf("classification mismatch for %d", tt.code)
		}
		if got := Shift(tt.code); got != tt.shift {
			t.Fatalf("Shift(%d) = %d, want %d", tt.code, got, tt.shift)
		}
	}
	if KeyString(KeyQ) != "Q" {
		t.Fatalf("expected Q, got %q", KeyString(KeyQ))
	}
}
