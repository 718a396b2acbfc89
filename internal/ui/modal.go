package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cazelabs/cazechat/internal/ui/modals"
)

// Type aliases so callers can keep referring to modal states through ui.
type (
	ModalState               = modals.ModalState
	ModalWithPreferredWidth  = modals.ModalWithPreferredWidth
	ModalWithSize            = modals.ModalWithSize
	HelpShortcut             = modals.HelpShortcut
	HelpSection              = modals.HelpSection
	HelpShortcutTriggeredMsg = modals.HelpShortcutTriggeredMsg
	ThemeOption              = modals.ThemeOption

	AttachFileState = modals.AttachFileState
	HelpState       = modals.HelpState
	SettingsState   = modals.SettingsState
)

var (
	NewAttachFileState       = modals.NewAttachFileState
	NewHelpStateFromSections = modals.NewHelpStateFromSections
	NewSettingsState         = modals.NewSettingsState
)

// Modal represents a popup dialog with type-safe state management.
// The State field is nil when no modal is visible.
type Modal struct {
	State ModalState
	error string
}

// NewModal creates a new modal
func NewModal() *Modal {
	return &Modal{}
}

// Show displays a modal with the given state
func (m *Modal) Show(state ModalState) {
	m.State = state
	m.error = ""
}

// Hide hides the modal
func (m *Modal) Hide() {
	m.State = nil
	m.error = ""
}

// IsVisible returns whether the modal is visible
func (m *Modal) IsVisible() bool {
	return m.State != nil
}

// SetError sets an error message
func (m *Modal) SetError(err string) {
	m.error = err
}

// GetError returns the current error message
func (m *Modal) GetError() string {
	return m.error
}

// Update handles messages by delegating to the current state
func (m *Modal) Update(msg tea.Msg) (*Modal, tea.Cmd) {
	if m.State == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.State, cmd = m.State.Update(msg)
	return m, cmd
}

// View renders the modal centered on a screen of the given size.
func (m *Modal) View(screenWidth, screenHeight int) string {
	if m.State == nil {
		return ""
	}

	if sized, ok := m.State.(ModalWithSize); ok {
		sized.SetSize(screenWidth, screenHeight)
	}

	width := ModalWidth
	if pw, ok := m.State.(ModalWithPreferredWidth); ok {
		width = pw.PreferredWidth()
	}
	// Leave a margin around the box on narrow terminals.
	if width > screenWidth-4 {
		width = max(screenWidth-4, 20)
	}

	content := m.State.Render()
	if m.error != "" {
		content += "\n" + StatusErrorStyle.Render(m.error)
	}

	modal := ModalStyle.Width(width).Render(content)

	return lipgloss.Place(
		screenWidth, screenHeight,
		lipgloss.Center, lipgloss.Center,
		modal,
	)
}

// RefreshModalStyles pushes the current theme's styles into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle,
		ModalHelpStyle,
		SidebarItemStyle,
		SidebarSelectedStyle,
		StatusErrorStyle,
		ColorPrimary,
		ColorSecondary,
		ColorText,
		ColorTextMuted,
		ColorTextInverse,
		ColorUser,
		ColorWarning,
		ModalInputWidth,
		ModalInputCharLimit,
		ModalWidth,
		ModalWidthWide,
		HelpModalMaxVisible,
	)
}
