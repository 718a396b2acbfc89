package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/errors"
	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/ui"
)

// handleModalKey routes modal key events to the appropriate handler based on modal state type.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *ui.AttachFileState:
		return m.handleAttachFileModal(key, msg, s)
	case *ui.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *ui.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleAttachFileModal handles key events for the Attach File modal.
func (m *Model) handleAttachFileModal(key string, msg tea.KeyPressMsg, state *ui.AttachFileState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		path := state.GetPath()
		if path == "" {
			m.modal.SetError("Enter a file path")
			return m, nil
		}
		if err := m.attachFile(path); err != nil {
			m.modal.SetError(errors.Describe(err))
			return m, nil
		}
		m.modal.Hide()
		m.focusChat()
		return m, m.ShowFlashSuccess("Attached " + m.composer.Attachment().Label())
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *ui.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		return m, func() tea.Msg {
			return ui.HelpShortcutTriggeredMsg{Key: shortcut.Key}
		}
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpShortcutTrigger runs a shortcut picked in the help modal.
func (m *Model) handleHelpShortcutTrigger(key string) (tea.Model, tea.Cmd) {
	normalizedKey := normalizeHelpDisplayKey(key)
	if normalizedKey == "" {
		return m, nil // Display-only shortcut, no action
	}
	result, cmd, _ := m.ExecuteShortcut(normalizedKey)
	return result, cmd
}

// normalizeHelpDisplayKey converts help modal display keys to actual key values.
// Returns empty string for display-only shortcuts that shouldn't be executed.
func normalizeHelpDisplayKey(displayKey string) string {
	switch displayKey {
	case "↑/↓ or j/k", "PgUp/PgDn", "Enter", "Esc", "Backspace", "Mouse drag":
		return ""
	case "shift-enter", "ctrl-v":
		return ""
	case "Tab":
		return keys.Tab
	}
	if rest, ok := strings.CutPrefix(displayKey, "ctrl-"); ok {
		return "ctrl+" + rest
	}
	return strings.ToLower(displayKey)
}

// handleSettingsModal applies and saves the settings on enter.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *ui.SettingsState) (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")

	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		oldEndpoint := m.config.GetEndpoint()
		newEndpoint := state.GetEndpoint()
		m.config.SetEndpoint(newEndpoint)
		if err := m.config.Validate(); err != nil {
			m.config.SetEndpoint(oldEndpoint)
			m.modal.SetError(errors.Describe(err))
			return m, nil
		}

		m.config.SetNotificationsEnabled(state.GetNotificationsEnabled())
		if state.ThemeChanged() {
			theme := state.GetSelectedTheme()
			ui.SetThemeByName(theme)
			m.config.SetTheme(theme)
			m.chat.RefreshStyles()
		}

		if newEndpoint != oldEndpoint {
			m.flow.SetSender(backend.NewClient(newEndpoint, m.config.GetRequestTimeout()))
			log.Info("endpoint changed", "from", oldEndpoint, "to", newEndpoint)
		}

		if err := m.config.Save(); err != nil {
			log.Error("failed to save settings", "error", err)
			m.modal.SetError("Failed to save: " + errors.Describe(err))
			return m, nil
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Settings saved")
	}
	// Forward other keys to modal for text input handling
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
