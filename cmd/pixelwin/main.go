package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runRun(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "convert":
		os.Exit(runConvert(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "ctl":
		os.Exit(runCtl(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "setup":
		os.Exit(runSetup(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pixelwin <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Open a window and animate a pixel buffer")
	fmt.Fprintln(w, "  monitors            List displays of the selected backend")
	fmt.Fprintln(w, "  convert             Convert an image, optionally resizing it")
	fmt.Fprintln(w, "  ctl                 Control a running window (status, mode, snapshot, ...)")
	fmt.Fprintln(w, "  mcp serve           Expose the running window as MCP tools on stdio")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config path         Print the configuration file path")
	fmt.Fprintln(w, "  setup               Edit configuration interactively")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'pixelwin <command> --help' for command-specific options.")
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
