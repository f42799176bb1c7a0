package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	loadErr    error
	// loaded records where each key came from; nil when the file was unreadable.
	loaded *config.LoadResult

	activeTab Tab

	windowTab   WindowTab
	displaysTab DisplaysTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	width  int
	height int
}

func newModel(configPath string, displays []platform.Display) (model, error) {
	if configPath == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return model{}, err
		}
		configPath = p
	}
	m := model{configPath: configPath, activeTab: TabWindow}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		// Start from defaults so the user can fix the file by saving.
		m.loadErr = err
		m.cfg = config.DefaultConfig()
	} else {
		m.cfg = res.Config
		m.loaded = res
	}
	m.originalConfig = m.cfg.Clone()

	m.windowTab = NewWindowTab(m.cfg)
	m.displaysTab = NewDisplaysTab(m.cfg, displays)
	return m, nil
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// resize forwards the content area to both tabs so the inactive one is
// laid out before it is shown.
func (m model) resize(msg tea.WindowSizeMsg) (model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	var windowCmd, displaysCmd tea.Cmd
	m.windowTab, windowCmd = m.windowTab.Update(subMsg)
	m.displaysTab, displaysCmd = m.displaysTab.Update(subMsg)
	return m, tea.Batch(windowCmd, displaysCmd)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(msg, m.cfg, m.configPath)
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = m.cfg.Clone()
				m.loadErr = nil
				if res, err := config.LoadFromPath(m.configPath); err == nil {
					m.loaded = res
				}
			}
		case tea.WindowSizeMsg:
			return m.resize(msg)
		}
		return m, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg, m.loaded)
		return m, nil
	}

	// The form consumes keys while editing; only ctrl+c escapes to quit.
	if m.activeTab == TabWindow && m.windowTab.editing {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			return m.resize(msg)
		}
		var cmd tea.Cmd
		m.windowTab, cmd = m.windowTab.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabWindow
			return m, nil
		case "2":
			m.activeTab = TabDisplays
			return m, nil
		}
	case tea.WindowSizeMsg:
		return m.resize(msg)
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case TabWindow:
		m.windowTab, cmd = m.windowTab.Update(msg)
	case TabDisplays:
		m.displaysTab, cmd = m.displaysTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.configPath, m.loadErr, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabWindow:
			content = m.windowTab.View()
		case TabDisplays:
			content = m.displaysTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
