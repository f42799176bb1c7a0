//go:build !linux

package platform

import (
	"context"
	"errors"
	"log/slog"
)

// ErrX11Unavailable is returned by NewX11Host on platforms without X11 support.
var ErrX11Unavailable = errors.New("x11 host is only available on linux")

// X11Host is unavailable on this platform.
type X11Host struct{}

// NewX11Host always fails on this platform.
func NewX11Host(string, *slog.Logger) (*X11Host, error) {
	return nil, ErrX11Unavailable
}

func (h *X11Host) Run(context.Context) error { return ErrX11Unavailable }

func (h *X11Host) Close() {}

func (h *X11Host) Displays() ([]Display, error) { return nil, ErrX11Unavailable }

func (h *X11Host) NewFrame(string) (Frame, error) { return nil, ErrX11Unavailable }

func (h *X11Host) NewSurface(int, int) (Surface, error) { return nil, ErrX11Unavailable }
