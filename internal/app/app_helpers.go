package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/clipboard"
	"github.com/cazelabs/cazechat/internal/composer"
	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/errors"
	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/notification"
	"github.com/cazelabs/cazechat/internal/submission"
	"github.com/cazelabs/cazechat/internal/ui"
)

// =============================================================================
// Focus Management
// =============================================================================

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == FocusSidebar {
		m.focusChat()
	} else {
		m.focusSidebar()
	}
	return nil
}

func (m *Model) focusChat() {
	m.focus = FocusChat
	m.sidebar.SetFocused(false)
	m.chat.SetFocused(true)
}

func (m *Model) focusSidebar() {
	m.focus = FocusSidebar
	m.sidebar.SetFocused(true)
	m.chat.SetFocused(false)
}

// =============================================================================
// Conversation Selection
// =============================================================================

// openConversation makes id the active conversation and moves focus to the
// composer. The draft and attachment are kept.
func (m *Model) openConversation(id string) {
	if id != m.store.ActiveID() {
		if !m.store.SetActive(id) {
			logger.WithConversation(id).Warn("open of unknown conversation ignored")
			return
		}
	}
	m.focusChat()
}

// newConversation creates an empty conversation and switches to it.
func (m *Model) newConversation() tea.Cmd {
	conv := m.store.Create("")
	m.sidebar.SelectConversation(conv.ID)
	m.focusChat()
	return nil
}

// =============================================================================
// Submission
// =============================================================================

// submit records the composer contents as a user message and starts the
// backend request. Nothing happens for an empty composer or while a reply is
// pending.
func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.flow.Loading() {
		return m, m.ShowFlashWarning("Still waiting for the previous reply")
	}

	m.composer.SetText(m.chat.GetInput())
	p, ok := m.flow.Begin()
	if !ok {
		return m, nil
	}
	m.chat.ClearInput()
	m.pendingStart = p.StartedAt
	m.refreshView()

	return m, tea.Batch(
		m.sendCmd(p),
		ui.SidebarTick(),
		ui.StopwatchTick(),
	)
}

// sendCmd runs the request off the event loop.
func (m *Model) sendCmd(p *submission.Pending) tea.Cmd {
	flow, ctx := m.flow, m.ctx
	return func() tea.Msg {
		return SubmissionResultMsg{Result: flow.Send(ctx, p)}
	}
}

// handleSubmissionResult records the reply, or the error in its place, in the
// conversation the submission started in.
func (m *Model) handleSubmissionResult(msg SubmissionResultMsg) (tea.Model, tea.Cmd) {
	res := msg.Result
	m.flow.Complete(res)
	m.refreshView()

	conv, _ := m.store.Get(res.ConversationID)
	var cmds []tea.Cmd

	if res.Err == nil && !m.windowFocused && m.config.GetNotificationsEnabled() {
		name := conv.Name
		go func() {
			if err := notification.ReplyReady(name); err != nil {
				logger.WithComponent("app").Warn("notification failed", "error", err)
			}
		}()
	}

	if res.ConversationID != m.store.ActiveID() {
		if res.Err != nil {
			cmds = append(cmds, m.ShowFlashError(fmt.Sprintf("Request in %q failed", conv.Name)))
		} else {
			cmds = append(cmds, m.ShowFlashSuccess(fmt.Sprintf("Reply ready in %q", conv.Name)))
		}
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// Attachments
// =============================================================================

// attachFile loads path into the composer, replacing any earlier attachment.
func (m *Model) attachFile(path string) error {
	att, err := composer.LoadFile(path)
	if err != nil {
		logger.WithComponent("app").Warn("attach failed", "path", path, "error", err)
		return err
	}
	m.setAttachment(att)
	return nil
}

func (m *Model) setAttachment(att *composer.Attachment) {
	m.composer.Attach(att)
	m.chat.SetAttachment(att.Label())
	logger.WithComponent("app").Info("file attached", "name", att.Name, "mime", att.MIMEType, "size", att.Size())
}

// detachFile removes the composer's attachment.
func (m *Model) detachFile() tea.Cmd {
	att := m.composer.Attachment()
	if att == nil {
		return nil
	}
	m.composer.Detach()
	m.chat.SetAttachment("")
	return m.ShowFlashInfo("Removed " + att.Name)
}

// handlePasteStart checks the clipboard for an image when a paste begins.
// Text pastes continue to the composer.
func (m *Model) handlePasteStart() (tea.Model, tea.Cmd) {
	if m.focus != FocusChat || m.modal.IsVisible() {
		return m, nil
	}
	return m.handleImagePaste()
}

// handleImagePaste attaches the clipboard image, if there is one.
func (m *Model) handleImagePaste() (tea.Model, tea.Cmd) {
	log := logger.WithComponent("app")

	img, err := clipboard.ReadImage()
	if err != nil {
		log.Debug("no clipboard image", "error", err)
		return m, nil
	}
	if img == nil {
		return m, nil
	}

	if err := img.Validate(composer.MaxAttachmentSize); err != nil {
		log.Warn("pasted image rejected", "error", err)
		return m, m.ShowFlashError(err.Error())
	}

	att, err := composer.FromBytes(img.Filename(time.Now()), img.Data)
	if err != nil {
		return m, m.ShowFlashError(errors.Describe(err))
	}
	m.setAttachment(att)
	return m, m.ShowFlashSuccess(fmt.Sprintf("Attached pasted image (%d KB)", img.SizeKB()))
}

// =============================================================================
// Clipboard
// =============================================================================

// lastReply returns the newest assistant message of the active conversation.
func (m *Model) lastReply() (conversation.Message, bool) {
	conv, ok := m.store.Active()
	if !ok {
		return conversation.Message{}, false
	}
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		if conv.Messages[i].Role == conversation.RoleAssistant {
			return conv.Messages[i], true
		}
	}
	return conversation.Message{}, false
}

// copyLastReply puts the newest reply's text on the system clipboard.
func (m *Model) copyLastReply() tea.Cmd {
	reply, ok := m.lastReply()
	if !ok || reply.Text == "" {
		return m.ShowFlashWarning("No reply to copy")
	}

	// OSC 52 reaches terminals over SSH; the native clipboard covers the rest.
	cmds := []tea.Cmd{tea.SetClipboard(reply.Text)}
	if err := clipboard.WriteText(reply.Text); err != nil {
		logger.WithComponent("app").Debug("native clipboard unavailable", "error", err)
	}
	cmds = append(cmds, m.ShowFlashSuccess("Copied reply to clipboard"))
	return tea.Batch(cmds...)
}
