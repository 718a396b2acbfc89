package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/ui"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.FocusMsg:
		m.windowFocused = true
		logger.WithComponent("app").Debug("window focused")

	case tea.BlurMsg:
		m.windowFocused = false
		logger.WithComponent("app").Debug("window blurred")

	case tea.KeyboardEnhancementsMsg:
		m.kittyKeyboard = msg.SupportsKeyDisambiguation()
		logger.WithComponent("app").Debug("keyboard enhancements", "flags", msg.Flags)

	case tea.PasteStartMsg:
		return m.handlePasteStart()

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case SubmissionResultMsg:
		return m.handleSubmissionResult(msg)

	case ui.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
	}

	// Handle tick messages - both panels need these regardless of focus
	if cmd, handled := m.handleTickMessages(msg); handled {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Route scroll/mouse events to appropriate panel
	if cmd, handled := m.routeScrollAndMouseEvents(msg); handled {
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles all keyboard input.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	logger.WithComponent("app").Debug("key press", "key", key, "focus", m.focus, "modal", m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	if key == keys.Escape {
		if result, cmd, handled := m.handleEscapeKey(); handled {
			return result, cmd
		}
	}

	// The log viewer takes every other key while it is open.
	if m.chat.IsInLogViewerMode() && key != keys.CtrlC {
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return m, cmd
	}

	if m.focus == FocusChat {
		if result, cmd, handled := m.handleChatFocusedKeys(msg); handled {
			return result, cmd
		}
	}

	// Handle ctrl+c specially - always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	// Try executing from shortcut registry
	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	// Enter in the sidebar filter is handled by the sidebar itself.
	if key == keys.Enter && !(m.focus == FocusSidebar && m.sidebar.IsSearchMode()) {
		return m.handleEnterKey()
	}

	return nil, nil
}

// handleEscapeKey leaves whatever transient mode is active.
func (m *Model) handleEscapeKey() (tea.Model, tea.Cmd, bool) {
	if m.sidebar.IsSearchMode() {
		m.sidebar.ExitSearchMode()
		return m, nil, true
	}
	if m.chat.IsInLogViewerMode() {
		m.chat.ExitLogViewerMode()
		return m, nil, true
	}
	if m.chat.HasTextSelection() {
		m.chat.SelectionClear()
		return m, nil, true
	}
	return m, nil, false
}

// handleChatFocusedKeys handles keys that only mean something while the
// composer has focus.
func (m *Model) handleChatFocusedKeys(msg tea.KeyPressMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case keys.ShiftEnter, keys.AltEnter:
		m.chat.InsertNewline()
		return m, nil, true

	case keys.CtrlV:
		// Fallback for terminals that send ctrl+v as a key instead of a paste.
		result, cmd := m.handleImagePaste()
		return result, cmd, true

	case keys.Backspace:
		// Backspace on an empty composer drops the attachment.
		if m.composer.HasAttachment() && m.chat.GetInput() == "" {
			return m, m.detachFile(), true
		}
	}
	return m, nil, false
}

// handleEnterKey handles the enter key press
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.focus {
	case FocusSidebar:
		if m.sidebar.IsNewChatSelected() {
			return m, m.newConversation()
		}
		if id := m.sidebar.SelectedConversationID(); id != "" {
			m.openConversation(id)
		}
		return m, nil
	case FocusChat:
		return m.submit()
	}
	return m, nil
}

// handleTickMessages handles various tick messages for animations and timers.
func (m *Model) handleTickMessages(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ui.SidebarTickMsg:
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		return cmd, true
	case ui.StopwatchTickMsg, ui.SelectionFlashTickMsg:
		chat, cmd := m.chat.Update(msg)
		m.chat = chat
		return cmd, true
	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return nil, true
		}
		if m.footer.HasFlash() {
			return ui.FlashTick(), true
		}
		return nil, true
	case ui.SelectionCopiedMsg:
		if msg.Err != nil {
			return m.ShowFlashWarning("Copied through the terminal only"), true
		}
		return m.ShowFlashSuccess(copiedText(msg.Chars)), true
	}
	return nil, false
}
