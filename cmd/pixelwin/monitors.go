package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/pixelwin/config.yaml)")
	backend := fs.String("backend", "", "Backend override: auto, x11, terminal")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pixelwin monitors [options]")
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

	displays, err := listDisplays(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	printDisplays(os.Stdout, displays, cfg.Window.Monitor)
	return 0
}

// listDisplays enumerates displays without taking over the terminal.
func listDisplays(cfg *config.Config) ([]platform.Display, error) {
	backend, err := selectBackend(cfg.Backend, displayName(cfg), stdoutIsTerminal())
	if err != nil {
		return nil, err
	}
	if backend == config.BackendTerminal {
		cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			return nil, fmt.Errorf("failed to get terminal size: %w", err)
		}
		d, err := platform.TerminalDisplay(cols, rows)
		if err != nil {
			return nil, err
		}
		return []platform.Display{d}, nil
	}

	host, err := platform.NewX11Host(cfg.Display, nil)
	if err != nil {
		return nil, err
	}
	defer host.Close()
	registry, err := platform.NewRegistry(host)
	if err != nil {
		return nil, err
	}
	return registry.Displays(), nil
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = cellStyle.Foreground(lipgloss.Color("42")).Bold(true)
)

// printDisplays renders displays as a table; the configured monitor is
// highlighted.
func printDisplays(w io.Writer, displays []platform.Display, selected int) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("#", "NAME", "GEOMETRY", "CENTER", "FULLSCREEN").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == selected:
				return selectedStyle
			default:
				return cellStyle
			}
		})
	for i, d := range displays {
		t.Row(displayRow(i, d)...)
	}
	fmt.Fprintln(w, t.String())
}

func displayRow(i int, d platform.Display) []string {
	b := d.Bounds
	cx, cy := d.Center()
	return []string{
		strconv.Itoa(i),
		d.Name,
		fmt.Sprintf("%dx%d+%d+%d", b.Width, b.Height, b.X, b.Y),
		fmt.Sprintf("%d,%d", cx, cy),
		strconv.FormatBool(d.FullscreenSupported),
	}
}
