package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/window"
)

// WindowTab shows and edits the window and runtime settings.
type WindowTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fBackend  string
	fLogLevel string
	fFPS      string
	fTitle    string
	fWidth    string
	fHeight   string
	fMode     string
	fScale    string
	fVisible  bool
}

func NewWindowTab(cfg *config.Config) WindowTab {
	return WindowTab{cfg: cfg}
}

// Update implements tea.Model.
func (w WindowTab) Update(msg tea.Msg) (WindowTab, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = size.Width
		w.height = size.Height
	}
	if !w.editing {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "e" {
			w.startEditing()
			return w, w.form.Init()
		}
		return w, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		w.editing = false
		w.form = nil
		return w, nil
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}
	if w.form.State == huh.StateCompleted {
		w.applyForm()
		w.editing = false
		w.form = nil
		return w, nil
	}
	return w, cmd
}

func (w *WindowTab) loadFields() {
	c := w.cfg
	w.fBackend = c.Backend
	w.fLogLevel = c.LogLevel
	w.fFPS = strconv.Itoa(c.FPS)
	w.fTitle = c.Window.Title
	w.fWidth = strconv.Itoa(c.Window.Width)
	w.fHeight = strconv.Itoa(c.Window.Height)
	w.fMode = c.Window.Mode
	w.fScale = strconv.FormatFloat(c.Window.Scale, 'g', -1, 64)
	w.fVisible = c.Window.Visible
}

func (w *WindowTab) startEditing() {
	w.loadFields()

	modeOpts := make([]huh.Option[string], 0, len(window.Modes()))
	for _, m := range window.Modes() {
		modeOpts = append(modeOpts, huh.NewOption(m.String(), m.String()))
	}

	width := w.width - 4
	if width < 40 {
		width = 40
	}

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&w.fTitle),
			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Canvas width in pixels").
				Validate(positiveInt).
				Value(&w.fWidth),
			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Canvas height in pixels").
				Validate(positiveInt).
				Value(&w.fHeight),
			huh.NewSelect[string]().
				Key("mode").
				Title("Mode").
				Options(modeOpts...).
				Value(&w.fMode),
			huh.NewConfirm().
				Key("visible").
				Title("Visible on start").
				Value(&w.fVisible),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("backend").
				Title("Backend").
				Options(huh.NewOptions(config.BackendAuto, config.BackendX11, config.BackendTerminal)...).
				Value(&w.fBackend),
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&w.fLogLevel),
			huh.NewInput().
				Key("fps").
				Title("Frames per second").
				Validate(positiveInt).
				Value(&w.fFPS),
			huh.NewInput().
				Key("scale").
				Title("Mouse scale").
				Description("Host pixels per canvas pixel").
				Validate(positiveFloat).
				Value(&w.fScale),
		),
	).WithWidth(width).WithShowHelp(true).WithShowErrors(true)

	w.editing = true
}

// applyForm copies valid form values into the config.
func (w *WindowTab) applyForm() {
	c := w.cfg
	c.Window.Title = w.fTitle
	c.Window.Visible = w.fVisible
	if v, err := strconv.Atoi(w.fWidth); err == nil && v > 0 {
		c.Window.Width = v
	}
	if v, err := strconv.Atoi(w.fHeight); err == nil && v > 0 {
		c.Window.Height = v
	}
	if _, err := window.ParseMode(w.fMode); err == nil {
		c.Window.Mode = w.fMode
	}
	if w.fBackend != "" {
		c.Backend = w.fBackend
	}
	if w.fLogLevel != "" {
		c.LogLevel = w.fLogLevel
	}
	if v, err := strconv.Atoi(w.fFPS); err == nil && v > 0 {
		c.FPS = v
	}
	if v, err := strconv.ParseFloat(w.fScale, 64); err == nil && v > 0 {
		c.Window.Scale = v
	}
}

func positiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func positiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// View implements tea.Model.
func (w WindowTab) View() string {
	if w.editing && w.form != nil {
		return w.viewEditing()
	}
	return w.viewDisplay()
}

func (w WindowTab) viewDisplay() string {
	c := w.cfg

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(18).
		Align(lipgloss.Right).
		PaddingRight(2)
	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	lines := []string{
		"",
		row("Title", displayOrDefault(c.Window.Title, "(none)")),
		row("Size", fmt.Sprintf("%dx%d", c.Window.Width, c.Window.Height)),
		row("Mode", c.Window.Mode),
		row("Monitor", strconv.Itoa(c.Window.Monitor)),
		row("Visible", strconv.FormatBool(c.Window.Visible)),
		row("Mouse Scale", strconv.FormatFloat(c.Window.Scale, 'g', -1, 64)),
		"",
		row("Backend", c.Backend),
		row("Display", displayOrDefault(c.Display, "($DISPLAY)")),
		row("FPS", strconv.Itoa(c.FPS)),
		row("Log Level", c.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(w.width).
		Height(w.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (w WindowTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing Window Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	return lipgloss.NewStyle().
		Width(w.width).
		Height(w.height).
		Padding(1, 2).
		Render(header + "\n\n" + w.form.View())
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
