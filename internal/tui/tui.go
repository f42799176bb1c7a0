// Package tui is the interactive configuration editor behind "pixelwin setup".
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/pixelwin/internal/platform"
)

// Run opens the editor for the config at configPath ("" for the default
// path). displays feeds the Displays tab and may be empty.
func Run(configPath string, displays []platform.Display) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("setup requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	m, err := newModel(configPath, displays)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
