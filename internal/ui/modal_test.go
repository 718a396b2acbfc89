package ui

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestNewModal(t *testing.T) {
	modal := NewModal()

	if modal == nil {
		t.Fatal("NewModal() returned nil")
	}

	if modal.IsVisible() {
		t.Error("New modal should not be visible")
	}

	if modal.State != nil {
		t.Error("New modal should have nil state")
	}
}

func TestModal_ShowHide(t *testing.T) {
	modal := NewModal()

	// Create a simple state
	state := NewAttachFileState(t.TempDir(), "")

	modal.Show(state)

	if !modal.IsVisible() {
		t.Error("Modal should be visible after Show")
	}

	if modal.State == nil {
		t.Error("Modal state should not be nil after Show")
	}

	modal.Hide()

	if modal.IsVisible() {
		t.Error("Modal should not be visible after Hide")
	}

	if modal.State != nil {
		t.Error("Modal state should be nil after Hide")
	}
}

func TestModal_Error(t *testing.T) {
	modal := NewModal()

	if modal.GetError() != "" {
		t.Error("New modal should have no error")
	}

	modal.SetError("Something went wrong")

	if modal.GetError() != "Something went wrong" {
		t.Errorf("Expected error message, got %q", modal.GetError())
	}

	// Show clears error
	modal.Show(NewAttachFileState(t.TempDir(), ""))
	if modal.GetError() != "" {
		t.Error("Show should clear error")
	}

	modal.SetError("New error")

	// Hide clears error
	modal.Hide()
	if modal.GetError() != "" {
		t.Error("Hide should clear error")
	}
}

func TestModal_View(t *testing.T) {
	modal := NewModal()

	// No state - should return empty
	view := modal.View(80, 24)
	if view != "" {
		t.Error("View should return empty string when not visible")
	}

	// With state
	modal.Show(NewAttachFileState(t.TempDir(), ""))
	view = modal.View(80, 24)
	if view == "" {
		t.Error("View should return non-empty string when visible")
	}

	// With error
	modal.SetError("Test error")
	view = modal.View(80, 24)
	if view == "" {
		t.Error("View should return non-empty string with error")
	}
}

func TestModal_View_WidthClamping(t *testing.T) {
	modal := NewModal()

	// SettingsState implements ModalWithPreferredWidth (ModalWidthWide)
	themes := []ThemeOption{{Key: "dark", DisplayName: "Dark"}, {Key: "nord", DisplayName: "Nord"}}
	modal.Show(NewSettingsState(themes, "dark", "http://localhost:8000/chat/", false))

	for _, screenWidth := range []int{200, 80, 50} {
		view := modal.View(screenWidth, 40)
		if view == "" {
			t.Fatalf("View should render at width %d", screenWidth)
		}
		for i, line := range strings.Split(view, "\n") {
			if w := lipgloss.Width(line); w > screenWidth {
				t.Errorf("width %d: line %d exceeds screen width (%d)", screenWidth, i, w)
			}
		}
	}
}

func TestModal_View_HelpReceivesSize(t *testing.T) {
	modal := NewModal()
	modal.Show(NewHelpStateFromSections([]HelpSection{
		{Title: "Chat", Shortcuts: []HelpShortcut{{Key: "enter", Desc: "Send message"}}},
	}))

	view := stripANSI(modal.View(100, 30))
	if !strings.Contains(view, "Send message") {
		t.Errorf("help modal should list shortcuts, got:\n%s", view)
	}
}

func TestModal_Update_NoState(t *testing.T) {
	modal := NewModal()
	m, cmd := modal.Update(nil)
	if m != modal || cmd != nil {
		t.Error("Update without state should be a no-op")
	}
}

func TestRefreshModalStyles_FollowsTheme(t *testing.T) {
	defer SetTheme(DefaultTheme)

	SetTheme("nord")
	modal := NewModal()
	modal.Show(NewAttachFileState(t.TempDir(), ""))
	if view := stripANSI(modal.View(80, 24)); !strings.Contains(view, "Attach File") {
		t.Errorf("attach modal should render its title after a theme change, got:\n%s", view)
	}
}
