package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/pixelwin/internal/config"
)

type savePhase int

const (
	saveHidden  savePhase = iota
	savePreview           // listing changed keys, awaiting confirm
	saveResult            // showing outcome message
)

// configKey reads one YAML path out of a config.
type configKey struct {
	path string
	// live keys can also be applied to a running window with pixelwin ctl.
	live bool
	get  func(c *config.Config) string
}

var configKeys = []configKey{
	{path: "backend", get: func(c *config.Config) string { return c.Backend }},
	{path: "display", get: func(c *config.Config) string { return c.Display }},
	{path: "log_level", get: func(c *config.Config) string { return c.LogLevel }},
	{path: "fps", get: func(c *config.Config) string { return strconv.Itoa(c.FPS) }},
	{path: "window.width", get: func(c *config.Config) string { return strconv.Itoa(c.Window.Width) }},
	{path: "window.height", get: func(c *config.Config) string { return strconv.Itoa(c.Window.Height) }},
	{path: "window.title", live: true, get: func(c *config.Config) string { return c.Window.Title }},
	{path: "window.mode", live: true, get: func(c *config.Config) string { return c.Window.Mode }},
	{path: "window.monitor", get: func(c *config.Config) string { return strconv.Itoa(c.Window.Monitor) }},
	{path: "window.visible", get: func(c *config.Config) string { return strconv.FormatBool(c.Window.Visible) }},
	{path: "window.scale", get: func(c *config.Config) string { return strconv.FormatFloat(c.Window.Scale, 'g', -1, 64) }},
	{path: "icon", get: func(c *config.Config) string { return c.Icon }},
	{path: "snapshot_dir", get: func(c *config.Config) string { return c.SnapshotDir }},
}

// configChange is one edited key and where its old value came from.
type configChange struct {
	path   string
	from   string
	to     string
	origin string
	live   bool
}

// diffConfigs lists the keys whose values differ, in file order. loaded may
// be nil when the file could not be read.
func diffConfigs(original, current *config.Config, loaded *config.LoadResult) []configChange {
	if original == nil || current == nil {
		return nil
	}
	var changes []configChange
	for _, k := range configKeys {
		from, to := k.get(original), k.get(current)
		if from == to {
			continue
		}
		changes = append(changes, configChange{
			path:   k.path,
			from:   from,
			to:     to,
			origin: originOf(loaded, k.path),
			live:   k.live,
		})
	}
	return changes
}

// originOf renders a key's source as file:line, or "default".
func originOf(loaded *config.LoadResult, path string) string {
	if loaded == nil {
		return string(config.SourceDefault)
	}
	src := loaded.SourceOf(path)
	if src.Kind != config.SourceFile || src.Line == 0 {
		return string(src.Kind)
	}
	return fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line)
}

// SaveOverlay previews the changed keys and writes the config on confirm.
type SaveOverlay struct {
	phase   savePhase
	changes []configChange
	err     error
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show computes the changes and opens the preview.
func (s *SaveOverlay) Show(original, current *config.Config, loaded *config.LoadResult) {
	s.err = nil
	s.changes = diffConfigs(original, current, loaded)
	if len(s.changes) == 0 {
		s.phase = saveResult
		s.err = fmt.Errorf("no changes to save")
		return
	}
	s.phase = savePreview
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles input while the overlay is active.
// Confirming writes cfg to path.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, path string) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	switch s.phase {
	case savePreview:
		switch km.String() {
		case "esc":
			s.phase = saveHidden
		case "enter", "y":
			s.err = cfg.SaveTo(path)
			s.phase = saveResult
		}
	case saveResult:
		s.phase = saveHidden
	}
	return s
}

// View renders the overlay for the given content area dimensions.
func (s SaveOverlay) View(width, height int) string {
	switch s.phase {
	case savePreview:
		return s.viewPreview(width, height)
	case saveResult:
		return s.viewResult(width, height)
	}
	return ""
}

func (s SaveOverlay) viewPreview(areaW, areaH int) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Padding(0, 1)
	wasStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Padding(0, 1)
	nowStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Padding(0, 1)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1)

	var live bool
	rows := make([][]string, 0, len(s.changes))
	for _, c := range s.changes {
		key := c.path
		if c.live {
			key += " *"
			live = true
		}
		rows = append(rows, []string{key, orUnset(c.from), orUnset(c.to), c.origin})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("62"))).
		Headers("KEY", "WAS", "NOW", "FROM").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			switch col {
			case 0:
				return keyStyle
			case 1:
				return wasStyle
			case 2:
				return nowStyle
			}
			return dimStyle
		})

	footStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Save Config: Pending Changes"))
	b.WriteString("\n\n")
	b.WriteString(t.Render())
	b.WriteString("\n")
	if live {
		b.WriteString(footStyle.Render("* also settable on a running window with pixelwin ctl"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(footStyle.Render("enter: save  esc: cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Render(b.String())
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) viewResult(areaW, areaH int) string {
	boxW := areaW - 8
	if boxW > 60 {
		boxW = 60
	}
	if boxW < 30 {
		boxW = 30
	}

	var msg string
	if s.err != nil {
		msg = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("Error: " + s.err.Error())
	} else {
		msg = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Render("Config saved")
	}
	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("press any key to dismiss")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(msg + "\n\n" + footer)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func orUnset(v string) string {
	if v == "" {
		return "(unset)"
	}
	return v
}
