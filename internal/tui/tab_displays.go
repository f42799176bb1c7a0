package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

// displayItem implements list.Item for the display picker.
type displayItem struct {
	index    int
	display  platform.Display
	selected bool
}

func (i displayItem) Title() string {
	prefix := "  "
	if i.selected {
		prefix = "* "
	}
	name := i.display.Name
	if name == "" {
		name = "display"
	}
	return fmt.Sprintf("%s%d: %s", prefix, i.index, name)
}

func (i displayItem) Description() string {
	b := i.display.Bounds
	return fmt.Sprintf("%dx%d+%d+%d", b.Width, b.Height, b.X, b.Y)
}

func (i displayItem) FilterValue() string { return i.display.Name }

// DisplaysTab lists the host's displays; enter picks the window monitor.
type DisplaysTab struct {
	list     list.Model
	cfg      *config.Config
	displays []platform.Display

	width  int
	height int
}

func NewDisplaysTab(cfg *config.Config, displays []platform.Display) DisplaysTab {
	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)

	l := list.New(buildDisplayItems(displays, cfg.Window.Monitor), delegate, 0, 0)
	l.Title = "Displays"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return DisplaysTab{list: l, cfg: cfg, displays: displays}
}

func buildDisplayItems(displays []platform.Display, monitor int) []list.Item {
	items := make([]list.Item, 0, len(displays))
	for i, d := range displays {
		items = append(items, displayItem{index: i, display: d, selected: i == monitor})
	}
	return items
}

// Update implements tea.Model.
func (d DisplaysTab) Update(msg tea.Msg) (DisplaysTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.list.SetSize(d.listWidth(), d.height)
		return d, nil
	case tea.KeyMsg:
		if msg.String() == "enter" {
			if item, ok := d.list.SelectedItem().(displayItem); ok {
				d.cfg.Window.Monitor = item.index
				d.list.SetItems(buildDisplayItems(d.displays, item.index))
			}
			return d, nil
		}
	}
	var cmd tea.Cmd
	d.list, cmd = d.list.Update(msg)
	return d, cmd
}

func (d DisplaysTab) listWidth() int {
	w := d.width / 2
	if w < 20 {
		w = 20
	}
	return w
}

// View implements tea.Model.
func (d DisplaysTab) View() string {
	if len(d.displays) == 0 {
		return lipgloss.NewStyle().
			Width(d.width).
			Height(d.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No displays reported by the host")
	}

	sidebar := lipgloss.NewStyle().Width(d.listWidth()).Render(d.list.View())

	var detail []string
	if item, ok := d.list.SelectedItem().(displayItem); ok {
		label := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(14)
		value := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
		cx, cy := item.display.Center()
		detail = []string{
			label.Render("Name") + value.Render(item.display.Name),
			label.Render("Bounds") + value.Render(item.Description()),
			label.Render("Center") + value.Render(fmt.Sprintf("%d,%d", cx, cy)),
			label.Render("Fullscreen") + value.Render(fmt.Sprintf("%t", item.display.FullscreenSupported)),
			"",
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("enter: use for the window"),
		}
	}
	panel := lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(detail, "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, panel)
}
