package main

import (
	"image/color"
	"log/slog"
	"math"
	"time"

	"golang.org/x/image/colornames"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/imageio"
	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/1broseidon/pixelwin/internal/runtimepath"
)

const (
	minSpeed = 0.25
	maxSpeed = 8
	// cursorSize is the side of the square drawn under the pointer.
	cursorSize = 5
)

// demo animates a plasma pattern with a pointer marker.
type demo struct {
	frame *buffer.SyncPixelBuffer
	speed float64
	// phase advances by elapsed time scaled by speed.
	phase float64
	last  time.Duration
}

func newDemo(width, height int) *demo {
	return &demo{
		frame: buffer.NewSyncFilled[uint32](width, height, argb(colornames.Midnightblue)),
		speed: 1,
	}
}

// resize follows a window size change.
func (d *demo) resize(width, height int) error {
	return d.frame.ResizeFill(width, height, argb(colornames.Midnightblue))
}

// update advances the animation to elapsed and redraws the frame.
func (d *demo) update(elapsed time.Duration, mouse *input.Mouse) {
	if s := mouse.Scroll(); s != 0 {
		d.speed = math.Min(maxSpeed, math.Max(minSpeed, d.speed*math.Pow(1.25, float64(-s))))
	}
	d.phase += (elapsed - d.last).Seconds() * d.speed
	d.last = elapsed

	mx, my := mouse.Position()
	marker := argb(colornames.White)
	switch {
	case mouse.IsClicked(input.ButtonLeft):
		marker = argb(colornames.Orangered)
	case mouse.IsClicked(input.ButtonRight):
		marker = argb(colornames.Limegreen)
	}

	d.frame.Do(func(b *buffer.PixelBuffer) {
		w, h := b.Width(), b.Height()
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b.PlotXY(x, y, plasma(x, y, w, h, d.phase))
			}
		}
		for y := my - cursorSize/2; y <= my+cursorSize/2; y++ {
			for x := mx - cursorSize/2; x <= mx+cursorSize/2; x++ {
				if x >= 0 && y >= 0 && x < w && y < h {
					b.PlotXY(x, y, marker)
				}
			}
		}
	})
}

// plasma returns the opaque pattern color at (x, y).
func plasma(x, y, w, h int, phase float64) uint32 {
	u := float64(x) / float64(max(w, 1))
	v := float64(y) / float64(max(h, 1))
	f := math.Sin(u*10+phase) + math.Sin(v*8+phase*1.3) + math.Sin((u+v)*6+phase*0.7)
	r := channel(math.Sin(f * math.Pi))
	g := channel(math.Sin(f*math.Pi + 2))
	b := channel(math.Sin(f*math.Pi + 4))
	return 0xff000000 | r<<16 | g<<8 | b
}

func channel(s float64) uint32 {
	return uint32((s + 1) * 127.5)
}

func argb(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// saveSnapshot writes frame as PNG and frees it.
func saveSnapshot(frame *buffer.PixelBuffer, dir string, at time.Time, logger *slog.Logger) (string, error) {
	defer frame.Free()
	path, err := runtimepath.SnapshotPath(dir, at)
	if err != nil {
		logger.Warn("snapshot failed", "error", err)
		return "", err
	}
	if err := imageio.Save(path, frame); err != nil {
		logger.Warn("snapshot failed", "path", path, "error", err)
		return "", err
	}
	logger.Info("snapshot saved", "path", path)
	return path, nil
}
