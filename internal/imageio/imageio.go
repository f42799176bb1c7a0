// Package imageio converts between pixel buffers and image files.
//
// Pixels are packed ARGB, 8 bits per channel. PNG, BMP and TIFF can be read
// and written; WebP can only be read.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/1broseidon/pixelwin/internal/buffer"
)

var (
	// ErrUnknownFormat is returned for file extensions with no codec.
	ErrUnknownFormat = errors.New("unknown image format")
	// ErrReadOnlyFormat is returned when encoding to a decode-only format.
	ErrReadOnlyFormat = errors.New("image format is read-only")
)

// Formats by file extension.
const (
	PNG  = "png"
	BMP  = "bmp"
	TIFF = "tiff"
	WebP = "webp"
)

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	case ".webp":
		return WebP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// DecodeImage decodes r as format.
func DecodeImage(r io.Reader, format string) (image.Image, error) {
	switch format {
	case PNG:
		return png.Decode(r)
	case BMP:
		return bmp.Decode(r)
	case TIFF:
		return tiff.Decode(r)
	case WebP:
		return webp.Decode(r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// EncodeImage writes img to w as format.
func EncodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case WebP:
		return fmt.Errorf("%w: %q", ErrReadOnlyFormat, format)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ToImage copies b into a new NRGBA image.
func ToImage(b *buffer.PixelBuffer) *image.NRGBA {
	w, h := b.Width(), b.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		o := y * img.Stride
		for x := 0; x < w; x++ {
			p := b.GrabXY(x, y)
			img.Pix[o+0] = uint8(p >> 16)
			img.Pix[o+1] = uint8(p >> 8)
			img.Pix[o+2] = uint8(p)
			img.Pix[o+3] = uint8(p >> 24)
			o += 4
		}
	}
	return img
}

// FromImage copies img into a new pixel buffer, converting through NRGBA.
func FromImage(img image.Image) *buffer.PixelBuffer {
	bounds := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || bounds.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}

	w, h := bounds.Dx(), bounds.Dy()
	b := buffer.New[uint32](w, h)
	for y := 0; y < h; y++ {
		o := y * nrgba.Stride
		for x := 0; x < w; x++ {
			px := nrgba.Pix[o : o+4 : o+4]
			b.PlotXY(x, y, uint32(px[3])<<24|uint32(px[0])<<16|uint32(px[1])<<8|uint32(px[2]))
			o += 4
		}
	}
	return b
}

// Scale returns b resampled to width x height with Catmull-Rom filtering.
func Scale(b *buffer.PixelBuffer, width, height int) *buffer.PixelBuffer {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), ToImage(b), image.Rect(0, 0, b.Width(), b.Height()), draw.Src, nil)
	return FromImage(dst)
}

// EncodePNG returns b as PNG bytes.
func EncodePNG(b *buffer.PixelBuffer) ([]byte, error) {
	var out bytes.Buffer
	if err := png.Encode(&out, ToImage(b)); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

// Load reads an image file into a pixel buffer.
func Load(path string) (*buffer.PixelBuffer, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := DecodeImage(f, format)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return FromImage(img), nil
}

// Save writes b to path in the format implied by its extension.
func Save(path string, b *buffer.PixelBuffer) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeImage(f, ToImage(b), format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
