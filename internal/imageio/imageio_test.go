package imageio

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/1broseidon/pixelwin/internal/buffer"
)

func opaqueTestBuffer() *buffer.PixelBuffer {
	b := buffer.New[uint32](3, 2)
	_ = b.PlotAll([]uint32{
		0xffff0000, 0xff00ff00, 0xff0000ff,
		0xff102030, 0xffffffff, 0xff000000,
	})
	return b
}

func TestToImageFromImage(t *testing.T) {
	b := opaqueTestBuffer()
	b.PlotXY(2, 1, 0x80402010)

	img := ToImage(b)
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("unexpected pixel (0,0): %+v", got)
	}
	if got := img.NRGBAAt(2, 1); got != (color.NRGBA{R: 0x40, G: 0x20, B: 0x10, A: 0x80}) {
		t.Fatalf("alpha not carried: %+v", got)
	}

	back := FromImage(img)
	for i, want := range b.Content() {
		if got := back.Grab(i); got != want {
			t.Fatalf("pixel %d: got %#08x, want %#08x", i, got, want)
		}
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(6, 5, color.RGBA{G: 0xff, A: 0xff})

	b := FromImage(src)
	if b.Width() != 2 || b.Height() != 1 {
		t.Fatalf("expected 2x1, got %dx%d", b.Width(), b.Height())
	}
	if got := b.GrabXY(1, 0); got != 0xff00ff00 {
		t.Fatalf("expected green at (1,0), got %#08x", got)
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	b := opaqueTestBuffer()

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		path := filepath.Join(dir, name)
		if err := Save(path, b); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
		got, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", name, err)
		}
		if got.Width() != 3 || got.Height() != 2 {
			t.Fatalf("%s: expected 3x2, got %dx%d", name, got.Width(), got.Height())
		}
		for i, want := range b.Content() {
			if got.Grab(i) != want {
				t.Fatalf("%s pixel %d: got %#08x, want %#08x", name, i, got.Grab(i), want)
			}
		}
	}
}

func TestFormats(t *testing.T) {
	if f, err := FormatOf("a/b/IMAGE.TIF"); err != nil || f != TIFF {
		t.Fatalf("expected tiff, got %q (%v)", f, err)
	}
	if _, err := FormatOf("notes.txt"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if err := Save(filepath.Join(t.TempDir(), "x.webp"), opaqueTestBuffer()); !errors.Is(err, ErrReadOnlyFormat) {
		t.Fatalf("expected ErrReadOnlyFormat, got %v", err)
	}
}

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(opaqueTestBuffer())
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := DecodeImage(bytes.NewReader(data), PNG)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
}

func TestScale(t *testing.T) {
	b := buffer.NewFilled[uint32](4, 4, 0xffffffff)
	s := Scale(b, 2, 8)
	if s.Width() != 2 || s.Height() != 8 {
		t.Fatalf("expected 2x8, got %dx%d", s.Width(), s.Height())
	}
	p := s.GrabXY(1, 4)
	if p>>24 != 0xff || p&0xff < 0xfe {
		t.Fatalf("uniform white should stay white, got %#08x", p)
	}
}
