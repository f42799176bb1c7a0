package x11

import (
	"image"
	"image/color"
	"testing"
)

func TestIconFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0xff, A: 0xff})

	icon := IconFromImage(img)
	if icon.Width != 2 || icon.Height != 1 || len(icon.Data) != 2 {
		t.Fatalf("unexpected icon geometry: %dx%d len=%d", icon.Width, icon.Height, len(icon.Data))
	}
	if icon.Data[0] != 0xff112233 {
		t.Fatalf("expected 0xff112233, got %#x", icon.Data[0])
	}
	if icon.Data[1] != 0xffff0000 {
		t.Fatalf("expected 0xffff0000, got %#x", icon.Data[1])
	}
}
