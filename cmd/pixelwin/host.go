package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

var errNoBackend = errors.New("no usable backend: set DISPLAY for x11 or run in a terminal")

// hostRunner is a host with an event loop.
type hostRunner interface {
	platform.Host
	Run(ctx context.Context) error
	Close()
}

// selectBackend resolves "auto" from the environment.
func selectBackend(backend, display string, tty bool) (string, error) {
	switch backend {
	case config.BackendX11, config.BackendTerminal:
		return backend, nil
	case config.BackendAuto, "":
	default:
		return "", fmt.Errorf("unknown backend %q", backend)
	}
	if display != "" && runtime.GOOS == "linux" {
		return config.BackendX11, nil
	}
	if tty {
		return config.BackendTerminal, nil
	}
	return "", errNoBackend
}

// canFallBack reports whether a failed X11 connection may retry on the
// terminal. Only an unset or auto backend does.
func canFallBack(backend string, tty bool) bool {
	if backend != config.BackendAuto && backend != "" {
		return false
	}
	return tty
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func displayName(cfg *config.Config) string {
	if cfg.Display != "" {
		return cfg.Display
	}
	return os.Getenv("DISPLAY")
}

// openHost connects the configured backend. With backend auto a failed X11
// connection falls back to the terminal when stdout is a TTY.
func openHost(cfg *config.Config, logger *slog.Logger) (hostRunner, string, error) {
	tty := stdoutIsTerminal()
	backend, err := selectBackend(cfg.Backend, displayName(cfg), tty)
	if err != nil {
		return nil, "", err
	}

	if backend == config.BackendX11 {
		host, err := platform.NewX11Host(cfg.Display, logger)
		if err == nil {
			return host, backend, nil
		}
		if !canFallBack(cfg.Backend, tty) {
			return nil, "", err
		}
		logger.Warn("x11 unavailable, falling back to terminal", "error", err)
		backend = config.BackendTerminal
	}

	host, err := platform.NewTerminalHost(nil, logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open terminal: %w", err)
	}
	return host, backend, nil
}
