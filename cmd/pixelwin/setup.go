package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
	"github.com/1broseidon/pixelwin/internal/tui"
)

func runSetup(args []string) int {
	fs := flag.NewFlagSet("setup", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/pixelwin/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	// The editor still opens with no X display; the Displays tab is then empty.
	var displays []platform.Display
	cfg := config.DefaultConfig()
	if res, err := loadResult(*path); err == nil {
		cfg = res.Config
	}
	cfg.Backend = config.BackendX11
	if displayName(cfg) != "" {
		if ds, err := listDisplays(cfg); err == nil {
			displays = ds
		}
	}

	if err := tui.Run(*path, displays); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
