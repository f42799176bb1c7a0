package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/imageio"
	"github.com/1broseidon/pixelwin/internal/input"
	"github.com/1broseidon/pixelwin/internal/ipc"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/runtimepath"
	"github.com/1broseidon/pixelwin/internal/window"
)

// hostShutdownTimeout bounds the wait for the host loop after the window closes.
const hostShutdownTimeout = 2 * time.Second

func runRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/pixelwin/config.yaml)")
	backend := fs.String("backend", "", "Backend override: auto, x11, terminal")
	mode := fs.String("mode", "", "Window mode override: windowed, borderless, fullscreen, borderless-full")
	width := fs.Int("width", 0, "Canvas width override")
	height := fs.Int("height", 0, "Canvas height override")
	monitor := fs.Int("monitor", -1, "Monitor index override")
	noControl := fs.Bool("no-control", false, "Do not listen on the control socket")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pixelwin run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keys: F1-F4 switch mode, F12 snapshot, Esc quit.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *mode != "" {
		cfg.Window.Mode = *mode
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *monitor >= 0 {
		cfg.Window.Monitor = *monitor
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if err := run(cfg, !*noControl); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// terminalLogWriter opens the log file used while the terminal backend owns
// the screen.
func terminalLogWriter() (io.WriteCloser, error) {
	dir, err := runtimepath.Dir()
	if err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "pixelwin.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
}

func run(cfg *config.Config, control bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(os.Stderr, cfg.SlogLevel())
	host, backend, err := openHost(cfg, logger)
	if err != nil {
		return err
	}
	defer host.Close()

	if backend == config.BackendTerminal {
		f, err := terminalLogWriter()
		if err != nil {
			logger = slog.New(slog.DiscardHandler)
		} else {
			defer f.Close()
			logger = newLogger(f, cfg.SlogLevel())
		}
	}
	logger = logger.With("backend", backend)

	displays, err := platform.NewRegistry(host)
	if err != nil {
		return err
	}
	win, err := window.New(host, displays, cfg.WindowOptions(logger))
	if err != nil {
		return fmt.Errorf("failed to open window: %w", err)
	}
	defer win.Close()

	if cfg.Icon != "" {
		icon, err := imageio.Load(cfg.Icon)
		if err != nil {
			logger.Warn("icon not loaded", "path", cfg.Icon, "error", err)
		} else if err := win.SetIcon(icon); err != nil {
			logger.Warn("icon not applied", "path", cfg.Icon, "error", err)
		}
	}

	kb := input.NewKeyboard()
	mouse := input.NewMouse()
	mouse.SetScale(cfg.Window.Scale)
	win.AddKeyboard(kb)
	win.AddMouse(mouse)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	win.AddWindowListener(platform.WindowListenerFunc(func(ev platform.WindowEvent) {
		if ev.Kind == platform.WindowClosing {
			cancel()
		}
	}))

	hostErr := make(chan error, 1)
	go func() { hostErr <- host.Run(ctx) }()

	logger.Info("window opened",
		"mode", win.Mode().String(),
		"effective_mode", win.EffectiveMode().String(),
		"width", win.Width(),
		"height", win.Height())

	var calls <-chan *ipc.Call
	if control {
		srv, err := startControl(logger)
		if err != nil {
			logger.Warn("control socket disabled", "error", err)
		} else {
			defer srv.Stop()
			calls = srv.Calls()
		}
	}

	d := newDemo(win.Width(), win.Height())
	defer d.frame.Free()
	ctl := &controller{
		win:         win,
		demo:        d,
		displays:    displays,
		backend:     backend,
		snapshotDir: cfg.SnapshotDir,
		started:     time.Now(),
		logger:      logger,
	}

	err = animate(ctx, ctl, kb, mouse, cfg.FPS, calls)
	cancel()
	win.Close()

	select {
	case herr := <-hostErr:
		if herr != nil && !errors.Is(herr, context.Canceled) {
			logger.Warn("host loop ended with error", "error", herr)
		}
	case <-time.After(hostShutdownTimeout):
		logger.Warn("host loop did not stop in time")
	}
	return err
}

// animate drives the demo until ctx ends or the user quits. Control
// requests are answered between frames.
func animate(ctx context.Context, ctl *controller, kb *input.Keyboard, mouse *input.Mouse, fps int, calls <-chan *ipc.Call) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case call := <-calls:
			quit, err := ctl.handle(call, time.Now())
			if err != nil || quit {
				return err
			}
		case now := <-ticker.C:
			kb.Update()
			mouse.Update()

			act := readActions(kb)
			if act.quit {
				return nil
			}
			if act.switchMode {
				if err := ctl.switchMode(act.mode); err != nil {
					ctl.logger.Warn("mode change failed", "mode", act.mode.String(), "error", err)
				}
			}
			if act.snapshot {
				go saveSnapshot(ctl.demo.frame.Snapshot(), ctl.snapshotDir, now, ctl.logger)
			}

			ctl.demo.update(now.Sub(start), mouse)
			if err := ctl.win.Swap(ctl.demo.frame.Content()); err != nil {
				return fmt.Errorf("swap failed: %w", err)
			}
		}
	}
}

type actions struct {
	quit       bool
	switchMode bool
	mode       window.Mode
	snapshot   bool
}

var modeKeys = []struct {
	key  int
	mode window.Mode
}{
	{input.KeyF1, window.Windowed},
	{input.KeyF2, window.Borderless},
	{input.KeyF3, window.Fullscreen},
	{input.KeyF4, window.BorderlessFull},
}

// readActions maps key presses since the last update to demo actions.
func readActions(kb *input.Keyboard) actions {
	var act actions
	if kb.IsKeyDown(input.KeyEsc) {
		act.quit = true
	}
	for _, mk := range modeKeys {
		if kb.IsKeyDown(mk.key) {
			act.switchMode = true
			act.mode = mk.mode
		}
	}
	act.snapshot = kb.IsKeyDown(input.KeyF12)
	return act
}
