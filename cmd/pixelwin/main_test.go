package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/colornames"

	"github.com/1broseidon/pixelwin/internal/buffer"
	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/imageio"
	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/window"
)

func TestSelectBackend(t *testing.T) {
	tests := []struct {
		backend string
		display string
		tty     bool
		want    string
		wantErr bool
	}{
		{"x11", "", false, "x11", false},
		{"terminal", ":0", false, "terminal", false},
		{"auto", "", true, "terminal", false},
		{"", "", true, "terminal", false},
		{"auto", "", false, "", true},
		{"wayland", ":0", true, "", true},
	}
	if runtime.GOOS == "linux" {
		tests = append(tests, struct {
			backend string
			display string
			tty     bool
			want    string
			wantErr bool
		}{"auto", ":1", true, "x11", false})
	}
	for _, tt := range tests {
		got, err := selectBackend(tt.backend, tt.display, tt.tty)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("selectBackend(%q, %q, %v) = %q, %v", tt.backend, tt.display, tt.tty, got, err)
		}
	}
	if _, err := selectBackend("auto", "", false); !errors.Is(err, errNoBackend) {
		t.Fatalf("expected errNoBackend, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	if w, h, err := parseSize("64X32"); err != nil || w != 64 || h != 32 {
		t.Fatalf("parseSize = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"", "64", "0x10", "ax3", "3x-1"} {
		if _, _, err := parseSize(bad); !errors.Is(err, errBadSize) {
			t.Fatalf("parseSize(%q) should fail, got %v", bad, err)
		}
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := buffer.NewFilled[uint32](4, 2, 0xff102030)
	src.PlotXY(0, 1, 0xffff0000)
	if err := imageio.Save(in, src); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := filepath.Join(dir, "out.bmp")
	if err := convert(in, out, "2x3", ""); err != nil {
		t.Fatalf("convert: %v", err)
	}
	got, err := imageio.Load(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Width() != 2 || got.Height() != 3 {
		t.Fatalf("expected 2x3, got %dx%d", got.Width(), got.Height())
	}
	if got.GrabXY(0, 1) != 0xffff0000 || got.GrabXY(1, 0) != 0xff102030 {
		t.Fatalf("resize should keep rows in place")
	}

	scaled := filepath.Join(dir, "scaled.tiff")
	if err := convert(in, scaled, "", "8x4"); err != nil {
		t.Fatalf("convert scale: %v", err)
	}
	if got, err := imageio.Load(scaled); err != nil || got.Width() != 8 || got.Height() != 4 {
		t.Fatalf("scaled load: %v", err)
	}

	if err := convert(in, filepath.Join(dir, "out.webp"), "", ""); err == nil {
		t.Fatalf("expected webp output to be refused")
	}
	if err := convert(in, filepath.Join(dir, "out.png"), "nope", ""); !errors.Is(err, errBadSize) {
		t.Fatalf("expected errBadSize, got %v", err)
	}
}

func TestReadActions(t *testing.T) {
	kb := input.NewKeyboard()
	kb.KeyDown(input.KeyF3)
	kb.KeyDown(input.KeyF12)
	act := readActions(kb)
	if !act.switchMode || act.mode != window.Fullscreen || !act.snapshot || act.quit {
		t.Fatalf("unexpected actions %+v", act)
	}

	kb.Update()
	if act := readActions(kb); act.switchMode || act.snapshot {
		t.Fatalf("held keys must not repeat actions: %+v", act)
	}

	kb.KeyDown(input.KeyEsc)
	if !readActions(kb).quit {
		t.Fatalf("esc should quit")
	}
}

func TestDemoUpdate(t *testing.T) {
	d := newDemo(16, 12)
	mouse := input.NewMouse()
	mouse.ButtonDown(input.ButtonLeft, 8, 6)
	mouse.Wheel(-1, 1)
	mouse.Update()

	d.update(100*time.Millisecond, mouse)
	if d.speed != 1.25 {
		t.Fatalf("scrolling up should speed up, got %v", d.speed)
	}
	if got := d.frame.GrabXY(8, 6); got != argb(colornames.Orangered) {
		t.Fatalf("expected pressed marker under pointer, got %08x", got)
	}
	if got := d.frame.GrabXY(0, 0); got>>24 != 0xff {
		t.Fatalf("plasma pixels must be opaque, got %08x", got)
	}

	if err := d.resize(4, 4); err != nil {
		t.Fatalf("resize: %v", err)
	}
	mouse.Moved(100, 100)
	d.update(200*time.Millisecond, mouse)
	if d.frame.Len() != 16 {
		t.Fatalf("expected 4x4 frame after resize, got %d", d.frame.Len())
	}
}

func TestPrintDisplays(t *testing.T) {
	var out bytes.Buffer
	printDisplays(&out, []platform.Display{
		{Name: "DP-1", Bounds: platform.Rect{Width: 1920, Height: 1080}},
		{Name: "HDMI-1", Bounds: platform.Rect{X: 1920, Width: 1280, Height: 1024}, FullscreenSupported: true},
	}, 1)
	s := out.String()
	for _, want := range []string{"DP-1", "HDMI-1", "1280x1024+1920+0", "2560,512"} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
}

func TestRunConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.DefaultConfig()
	cfg.FPS = 30
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	if code := runConfig([]string{"validate", "-path", path}); code != 0 {
		t.Fatalf("validate exit %d", code)
	}
	if code := runConfig([]string{"bogus"}); code != 2 {
		t.Fatalf("unknown subcommand exit %d", code)
	}
	if code := runConfig(nil); code != 2 {
		t.Fatalf("missing subcommand exit %d", code)
	}
}

func TestCanFallBack(t *testing.T) {
	tests := []struct {
		backend string
		tty     bool
		want    bool
	}{
		{"", true, true},
		{"auto", true, true},
		{"auto", false, false},
		{"", false, false},
		{"x11", true, false},
		{"terminal", true, false},
	}
	for _, tt := range tests {
		if got := canFallBack(tt.backend, tt.tty); got != tt.want {
			t.Fatalf("canFallBack(%q, %v) = %v, want %v", tt.backend, tt.tty, got, tt.want)
		}
	}
}
