package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/ui"
)

// routeScrollAndMouseEvents sends transcript scrolling and mouse selection to
// the chat panel whichever panel has focus. It reports whether msg was used.
func (m *Model) routeScrollAndMouseEvents(msg tea.Msg) (tea.Cmd, bool) {
	if m.focus == FocusSidebar {
		if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, "page up", "page down", "ctrl+u", "ctrl+d":
				return m.updateChat(msg), true
			}
		}
	}

	sidebarWidth := m.sidebar.Width()

	switch mouseMsg := msg.(type) {
	case tea.MouseWheelMsg:
		if mouseMsg.X < sidebarWidth {
			// The conversation list does not scroll by wheel.
			return nil, true
		}
		return m.updateChat(mouseMsg), true

	case tea.MouseClickMsg:
		if mouseMsg.X < sidebarWidth {
			return nil, true
		}
		if m.focus != FocusChat {
			m.focusChat()
		}
		return m.updateChat(tea.MouseClickMsg(m.chatMouse(tea.Mouse(mouseMsg), sidebarWidth))), true

	case tea.MouseMotionMsg:
		if mouseMsg.X < sidebarWidth {
			return nil, true
		}
		return m.updateChat(tea.MouseMotionMsg(m.chatMouse(tea.Mouse(mouseMsg), sidebarWidth))), true

	case tea.MouseReleaseMsg:
		if mouseMsg.X < sidebarWidth {
			return nil, true
		}
		return m.updateChat(tea.MouseReleaseMsg(m.chatMouse(tea.Mouse(mouseMsg), sidebarWidth))), true
	}

	return nil, false
}

// chatMouse translates screen coordinates to the chat panel's origin.
func (m *Model) chatMouse(mouse tea.Mouse, sidebarWidth int) tea.Mouse {
	mouse.X -= sidebarWidth
	mouse.Y -= ui.HeaderHeight
	return mouse
}

func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	return cmd
}
