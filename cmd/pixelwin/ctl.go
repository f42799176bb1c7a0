package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/pixelwin/internal/ipc"
	"github.com/1broseidon/pixelwin/internal/platform"
)

func printCtlUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] status")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] monitors")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] mode <windowed|borderless|fullscreen|borderless-full>")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] title <text>")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] snapshot")
	fmt.Fprintln(w, "  pixelwin ctl [--socket PATH] quit")
}

// runCtl talks to a running 'pixelwin run' over its control socket.
func runCtl(args []string) int {
	fs := flag.NewFlagSet("ctl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	socket := fs.String("socket", "", "Control socket path (default: $XDG_RUNTIME_DIR/pixelwin.sock)")
	fs.Usage = func() { printCtlUsage(os.Stderr) }
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		printCtlUsage(os.Stderr)
		return 2
	}
	return ctl(ipc.NewClient(*socket), fs.Args(), os.Stdout, os.Stderr)
}

func ctl(client *ipc.Client, args []string, stdout, stderr io.Writer) int {
	switch args[0] {
	case "status":
		status, err := client.GetStatus()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		printStatus(stdout, status)
	case "monitors":
		data, err := client.GetMonitors()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		displays := make([]platform.Display, len(data.Monitors))
		for i, m := range data.Monitors {
			displays[i] = platform.Display{
				ID:                  m.ID,
				Name:                m.Name,
				Bounds:              platform.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
				FullscreenSupported: m.FullscreenSupported,
			}
		}
		printDisplays(stdout, displays, -1)
	case "mode":
		if len(args) != 2 {
			fmt.Fprintln(stderr, "Usage: pixelwin ctl mode <windowed|borderless|fullscreen|borderless-full>")
			return 2
		}
		status, err := client.SetMode(args[1])
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		printStatus(stdout, status)
	case "title":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "Usage: pixelwin ctl title <text>")
			return 2
		}
		if err := client.SetTitle(strings.Join(args[1:], " ")); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	case "snapshot":
		path, err := client.Snapshot()
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		fmt.Fprintln(stdout, path)
	case "quit":
		if err := client.Quit(); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	default:
		fmt.Fprintf(stderr, "Unknown ctl command: %s\n\n", args[0])
		printCtlUsage(stderr)
		return 2
	}
	return 0
}

func printStatus(w io.Writer, status *ipc.StatusData) {
	fmt.Fprintf(w, "title:          %s\n", status.Title)
	fmt.Fprintf(w, "backend:        %s\n", status.Backend)
	fmt.Fprintf(w, "mode:           %s\n", status.Mode)
	fmt.Fprintf(w, "effective_mode: %s\n", status.EffectiveMode)
	fmt.Fprintf(w, "size:           %dx%d\n", status.Width, status.Height)
	fmt.Fprintf(w, "monitor:        %d\n", status.Monitor)
	fmt.Fprintf(w, "uptime_seconds: %d\n", status.UptimeSeconds)
}
