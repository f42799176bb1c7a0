package platform_test

import (
	"errors"
	"testing"

	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/platform/platformtest"
)

func TestRegistry_ClampsLookups(t *testing.T) {
	host := platformtest.NewHost(
		platform.Display{ID: 0, Name: "left", Bounds: platform.Rect{Width: 1920, Height: 1080}},
		platform.Display{ID: 1, Name: "right", Bounds: platform.Rect{X: 1920, Width: 1280, Height: 1024}},
	)
	reg, err := platform.NewRegistry(host)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected 2 displays, got %d", reg.Len())
	}
	if got := reg.Display(-4).Name; got != "left" {
		t.Fatalf("negative index should clamp to first display, got %q", got)
	}
	if got := reg.Display(17).Name; got != "right" {
		t.Fatalf("large index should clamp to last display, got %q", got)
	}
	if cx, cy := reg.Display(1).Center(); cx != 2560 || cy != 512 {
		t.Fatalf("unexpected center (%d,%d)", cx, cy)
	}
}

func TestRegistry_NoDisplays(t *testing.T) {
	_, err := platform.NewRegistry(platformtest.NewHost())
	if !errors.Is(err, platform.ErrNoDisplays) {
		t.Fatalf("expected ErrNoDisplays, got %v", err)
	}
}

func TestRegistry_Refresh(t *testing.T) {
	host := platformtest.NewHost(platform.Display{Name: "a"})
	reg, err := platform.NewRegistry(host)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	host.SetDisplays(platform.Display{Name: "a"}, platform.Display{Name: "b"})
	if reg.Len() != 1 {
		t.Fatalf("registry must not re-enumerate on its own")
	}
	if err := reg.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if reg.Len() != 2 || reg.Display(1).Name != "b" {
		t.Fatalf("refresh did not pick up new display: %+v", reg.Displays())
	}

	host.SetDisplays()
	if err := reg.Refresh(); !errors.Is(err, platform.ErrNoDisplays) {
		t.Fatalf("expected ErrNoDisplays, got %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("failed refresh must keep the previous list")
	}
	if host.EnumerateCalls() != 3 {
		t.Fatalf("expected 3 enumerations, got %d", host.EnumerateCalls())
	}
}
