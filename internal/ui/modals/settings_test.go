package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

var testThemes = []ThemeOption{
	{Key: "dark", DisplayName: "Dark"},
	{Key: "nord", DisplayName: "Nord"},
}

func TestNewSettingsState_InitialValues(t *testing.T) {
	s := NewSettingsState(testThemes, "nord", " http://localhost:8000/chat/ ", true)

	if s.GetEndpoint() != "http://localhost:8000/chat/" {
		t.Errorf("GetEndpoint() = %q", s.GetEndpoint())
	}
	if s.GetSelectedTheme() != "nord" {
		t.Errorf("GetSelectedTheme() = %q, want nord", s.GetSelectedTheme())
	}
	if s.ThemeChanged() {
		t.Error("theme should not be reported as changed initially")
	}
	if !s.GetNotificationsEnabled() {
		t.Error("notifications should start enabled")
	}
}

func TestSettingsState_ThemeChanged(t *testing.T) {
	s := NewSettingsState(testThemes, "dark", "http://localhost:8000/chat/", false)
	s.selectedTheme = "nord"
	if !s.ThemeChanged() {
		t.Error("ThemeChanged() should be true after selecting another theme")
	}
}

func TestSettingsState_UpdateSyncsNotifications(t *testing.T) {
	s := NewSettingsState(testThemes, "dark", "http://localhost:8000/chat/", true)
	s.generalOptions = nil

	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	if s.GetNotificationsEnabled() {
		t.Error("notifications should follow the multiselect binding")
	}
}

func TestSettingsState_Render(t *testing.T) {
	s := NewSettingsState(testThemes, "dark", "http://localhost:8000/chat/", false)
	s.SetSize(100, 30)

	rendered := s.Render()
	for _, want := range []string{"Settings", "Chat endpoint", "Theme"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if s.PreferredWidth() != ModalWidthWide {
		t.Errorf("PreferredWidth() = %d, want %d", s.PreferredWidth(), ModalWidthWide)
	}
}
