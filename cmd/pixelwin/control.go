package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/pixelwin/internal/ipc"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/window"
)

// controller owns the window state touched by key actions and control
// requests. It is only used from the animation goroutine.
type controller struct {
	win         *window.Window
	demo        *demo
	displays    *platform.Registry
	backend     string
	snapshotDir string
	started     time.Time
	logger      *slog.Logger
}

func startControl(logger *slog.Logger) (*ipc.Server, error) {
	srv, err := ipc.NewServer("", logger)
	if err != nil {
		return nil, err
	}
	if err := srv.Start(); err != nil {
		return nil, err
	}
	return srv, nil
}

// switchMode rebuilds the window in mode and resizes the frame to match. A
// failed rebuild leaves the window in its previous mode.
func (c *controller) switchMode(mode window.Mode) error {
	if err := c.win.SetWindowMode(mode); err != nil {
		return fmt.Errorf("failed to switch mode: %w", err)
	}
	if err := c.demo.resize(c.win.Width(), c.win.Height()); err != nil {
		return err
	}
	c.logger.Info("mode changed",
		"mode", mode.String(),
		"effective_mode", c.win.EffectiveMode().String(),
		"width", c.win.Width(),
		"height", c.win.Height())
	return nil
}

func (c *controller) status(now time.Time) ipc.StatusData {
	return ipc.StatusData{
		Title:         c.win.Title(),
		Backend:       c.backend,
		Mode:          c.win.Mode().String(),
		EffectiveMode: c.win.EffectiveMode().String(),
		Width:         c.win.Width(),
		Height:        c.win.Height(),
		Monitor:       c.win.Display().ID,
		UptimeSeconds: int64(now.Sub(c.started).Seconds()),
	}
}

// handle answers call. quit reports a QUIT request. err is reserved for
// failures the window cannot recover from; failed requests are answered with
// an error response instead.
func (c *controller) handle(call *ipc.Call, now time.Time) (quit bool, err error) {
	req := call.Request
	switch req.Command {
	case ipc.CommandGetStatus:
		call.Reply(ipc.OK(c.status(now)))

	case ipc.CommandGetMonitors:
		displays := c.displays.Displays()
		data := ipc.MonitorsData{Monitors: make([]ipc.MonitorInfo, len(displays))}
		for i, d := range displays {
			data.Monitors[i] = ipc.MonitorInfo{
				ID:                  d.ID,
				Name:                d.Name,
				X:                   d.Bounds.X,
				Y:                   d.Bounds.Y,
				Width:               d.Bounds.Width,
				Height:              d.Bounds.Height,
				FullscreenSupported: d.FullscreenSupported,
			}
		}
		call.Reply(ipc.OK(data))

	case ipc.CommandSetMode:
		var p ipc.SetModePayload
		if err := req.DecodePayload(&p); err != nil {
			call.Reply(ipc.NewErrorResponse(err.Error()))
			return false, nil
		}
		mode, err := window.ParseMode(p.Mode)
		if err != nil {
			call.Reply(ipc.NewErrorResponse(err.Error()))
			return false, nil
		}
		if err := c.switchMode(mode); err != nil {
			c.logger.Warn("mode change failed", "mode", mode.String(), "error", err)
			call.Reply(ipc.NewErrorResponse(err.Error()))
			return false, nil
		}
		call.Reply(ipc.OK(c.status(now)))

	case ipc.CommandSetTitle:
		var p ipc.SetTitlePayload
		if err := req.DecodePayload(&p); err != nil {
			call.Reply(ipc.NewErrorResponse(err.Error()))
			return false, nil
		}
		c.win.SetTitle(p.Title)
		call.Reply(ipc.OK(nil))

	case ipc.CommandSnapshot:
		frame := c.demo.frame.Snapshot()
		go func() {
			path, err := saveSnapshot(frame, c.snapshotDir, now, c.logger)
			if err != nil {
				call.Reply(ipc.NewErrorResponse(err.Error()))
				return
			}
			call.Reply(ipc.OK(ipc.SnapshotData{Path: path}))
		}()

	case ipc.CommandQuit:
		call.Reply(ipc.OK(nil))
		return true, nil

	default:
		call.Reply(ipc.NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command)))
	}
	return false, nil
}
