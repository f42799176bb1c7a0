package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/pixelwin/internal/config"
	"github.com/1broseidon/pixelwin/internal/platform"
)

var testDisplays = []platform.Display{
	{Name: "left", Bounds: platform.Rect{Width: 1920, Height: 1080}},
	{Name: "right", Bounds: platform.Rect{X: 1920, Width: 2560, Height: 1440}, FullscreenSupported: true},
}

func newTestModel(t *testing.T) (model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	m, err := newModel(path, testDisplays)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(model), path
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModel_TabNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	if m.activeTab != TabWindow {
		t.Fatalf("expected window tab first")
	}
	m = send(m, key("tab"))
	if m.activeTab != TabDisplays {
		t.Fatalf("tab should move to displays, got %v", m.activeTab)
	}
	m = send(m, key("tab"))
	if m.activeTab != TabWindow {
		t.Fatalf("tab should wrap, got %v", m.activeTab)
	}
	m = send(m, key("2"))
	if m.activeTab != TabDisplays {
		t.Fatalf("2 should jump to displays")
	}
	if !strings.Contains(m.View(), "right") {
		t.Fatalf("displays view should list display names")
	}
}

func TestModel_PickMonitorAndSave(t *testing.T) {
	m, path := newTestModel(t)
	m = send(m, key("2"))
	m.displaysTab.list.Select(1)
	m = send(m, key("enter"))
	if m.cfg.Window.Monitor != 1 {
		t.Fatalf("enter should select monitor 1, got %d", m.cfg.Window.Monitor)
	}

	m = send(m, key("ctrl+s"))
	if m.saveOverlay.phase != savePreview {
		t.Fatalf("expected diff preview, got phase %v (err %v)", m.saveOverlay.phase, m.saveOverlay.err)
	}
	m = send(m, key("enter"))
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("save failed: %v", m.saveOverlay.err)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if res.Config.Window.Monitor != 1 {
		t.Fatalf("saved monitor = %d, want 1", res.Config.Window.Monitor)
	}

	// Any key dismisses; a second save has nothing to write.
	m = send(m, key("x"), key("ctrl+s"))
	if m.saveOverlay.err == nil || m.saveOverlay.phase != saveResult {
		t.Fatalf("expected no-changes result")
	}
}

func TestModel_BrokenConfigStartsFromDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("fps: 0\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := newModel(path, nil)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if m.loadErr == nil || m.cfg.FPS != config.DefaultFPS {
		t.Fatalf("expected load error and defaults, got %v / %d", m.loadErr, m.cfg.FPS)
	}
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 20}, key("2"))
	if !strings.Contains(m.View(), "No displays") {
		t.Fatalf("expected empty displays message")
	}
}

func TestWindowTab_ApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	w := NewWindowTab(cfg)
	w.loadFields()

	w.fWidth = "640"
	w.fHeight = "-3"
	w.fMode = "fullscreen"
	w.fScale = "2.5"
	w.fFPS = "abc"
	w.fVisible = false
	w.applyForm()

	if cfg.Window.Width != 640 || cfg.Window.Height != config.DefaultHeight {
		t.Fatalf("unexpected size %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Mode != "fullscreen" || cfg.Window.Scale != 2.5 || cfg.Window.Visible {
		t.Fatalf("unexpected window config %+v", cfg.Window)
	}
	if cfg.FPS != config.DefaultFPS {
		t.Fatalf("invalid fps should be ignored, got %d", cfg.FPS)
	}
}

func TestWindowTab_EditAndCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, key("e"))
	if !m.windowTab.editing {
		t.Fatalf("e should open the form")
	}
	m = send(m, key("esc"))
	if m.windowTab.editing {
		t.Fatalf("esc should close the form")
	}
}

func TestModel_ResizeWhileEditingReachesBothTabs(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, key("e"))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(model)
	if !m.windowTab.editing || m.windowTab.form == nil {
		t.Fatalf("resize should not close the form")
	}
	if m.windowTab.width != 120 || m.windowTab.height != 36 {
		t.Fatalf("window tab size = %dx%d", m.windowTab.width, m.windowTab.height)
	}
	if m.displaysTab.width != 120 || m.displaysTab.height != 36 {
		t.Fatalf("displays tab size = %dx%d", m.displaysTab.width, m.displaysTab.height)
	}
}

func TestDiffConfigs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: auto\nwindow:\n  title: old\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	original := res.Config
	if changes := diffConfigs(original, original.Clone(), res); changes != nil {
		t.Fatalf("expected no changes, got %+v", changes)
	}

	current := original.Clone()
	current.FPS = 30
	current.Window.Title = "new"
	current.Icon = "icon.png"
	changes := diffConfigs(original, current, res)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %+v", changes)
	}

	fps, title, icon := changes[0], changes[1], changes[2]
	if fps.path != "fps" || fps.from != "60" || fps.to != "30" || fps.origin != "default" || fps.live {
		t.Fatalf("unexpected fps change %+v", fps)
	}
	if title.path != "window.title" || title.from != "old" || title.to != "new" || title.origin != "config.yaml:3" || !title.live {
		t.Fatalf("unexpected title change %+v", title)
	}
	if icon.path != "icon" || icon.from != "" || icon.to != "icon.png" {
		t.Fatalf("unexpected icon change %+v", icon)
	}

	// Without load sources every origin is the default.
	if changes := diffConfigs(original, current, nil); changes[1].origin != "default" {
		t.Fatalf("origin without sources = %q", changes[1].origin)
	}
}

func TestSaveOverlay_PreviewListsChangedKeys(t *testing.T) {
	original := config.DefaultConfig()
	current := original.Clone()
	current.Window.Mode = "borderless"
	current.Window.Width = 640

	var s SaveOverlay
	s.Show(original, current, nil)
	if s.phase != savePreview {
		t.Fatalf("expected preview, got %v (err %v)", s.phase, s.err)
	}
	view := s.View(100, 30)
	for _, want := range []string{"window.mode *", "borderless", "window.width", "640", "pixelwin ctl"} {
		if !strings.Contains(view, want) {
			t.Fatalf("preview missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "window.height") {
		t.Fatalf("unchanged key listed:\n%s", view)
	}
	if s = s.Update(key("esc"), current, ""); s.Active() {
		t.Fatalf("esc should close the preview")
	}
}
