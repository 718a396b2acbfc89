package modals

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func testSections() []HelpSection {
	return []HelpSection{
		{
			Title: "Conversations",
			Shortcuts: []HelpShortcut{
				{Key: "ctrl+n", Desc: "New chat"},
				{Key: "tab", Desc: "Switch pane"},
			},
		},
		{
			Title: "Composer",
			Shortcuts: []HelpShortcut{
				{Key: "ctrl+o", Desc: "Attach file"},
				{Key: "ctrl+x", Desc: "Remove attachment"},
			},
		},
	}
}

func TestNewHelpStateFromSections_SelectsFirstShortcut(t *testing.T) {
	state := NewHelpStateFromSections(testSections())

	selected := state.GetSelectedShortcut()
	if selected == nil {
		t.Fatal("expected a shortcut to be selected, got section header")
	}
	if selected.Key != "ctrl+n" {
		t.Errorf("selected key = %q, want ctrl+n", selected.Key)
	}
}

func TestHelpState_Navigation(t *testing.T) {
	state := NewHelpStateFromSections(testSections())

	newState, _ := state.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	state = newState.(*HelpState)

	selected := state.GetSelectedShortcut()
	if selected == nil || selected.Key != "tab" {
		t.Errorf("after down, selected = %+v, want tab", selected)
	}
}

func TestHelpState_EmptySections(t *testing.T) {
	state := NewHelpStateFromSections(nil)
	if state.GetSelectedShortcut() != nil {
		t.Error("empty help should have no selection")
	}
}

func TestHelpState_Render(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	state.SetSize(ModalWidth, 20)

	rendered := state.Render()
	for _, want := range []string{"Keyboard Shortcuts", "Conversations", "New chat"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestHelpState_Help(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	if state.IsFiltering() {
		t.Error("should not be filtering initially")
	}
	if !strings.Contains(state.Help(), "filter") {
		t.Errorf("help %q should mention filtering", state.Help())
	}
}

func TestHelpState_NavigationSkipsSectionTitles(t *testing.T) {
	state := NewHelpStateFromSections(testSections())
	press := func(code rune) string {
		next, _ := state.Update(tea.KeyPressMsg{Code: code})
		state = next.(*HelpState)
		sc := state.GetSelectedShortcut()
		if sc == nil {
			t.Fatal("cursor landed on a section title")
		}
		return sc.Key
	}

	if got := press(tea.KeyUp); got != "ctrl+n" {
		t.Errorf("up from the first shortcut = %q, want ctrl+n", got)
	}
	press(tea.KeyDown)
	if got := press(tea.KeyDown); got != "ctrl+o" {
		t.Errorf("down across a section = %q, want ctrl+o", got)
	}
	if got := press(tea.KeyUp); got != "tab" {
		t.Errorf("up across a section = %q, want tab", got)
	}
}
