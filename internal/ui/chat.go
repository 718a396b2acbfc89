package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/logger"
)

// AssistantName labels assistant messages in the transcript.
const AssistantName = "Caze"

// Chat represents the right panel: the transcript viewport and the composer.
type Chat struct {
	viewport    viewport.Model
	input       textarea.Model
	width       int
	height      int
	focused     bool
	messages    []conversation.Message
	backendHost string

	waiting bool
	spinner *SpinnerState

	attachment string // label of the attached file, "" when none

	selection *TextSelection
	logViewer *LogViewerState // nil unless the log viewer is showing
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask about models, documents or images..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:  vp,
		input:     ti,
		spinner:   NewSpinnerState(),
		selection: NewTextSelection(),
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	chatPanelHeight := height - InputTotalHeight
	innerWidth := ctx.InnerWidth(width)
	viewportHeight := ctx.InnerHeight(chatPanelHeight)
	if viewportHeight < 1 {
		viewportHeight = 1
	}

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(viewportHeight)

	// Input width accounts for its own border AND padding
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("Chat.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"chatPanelHeight", chatPanelHeight,
		"viewportWidth", c.viewport.Width(),
		"viewportHeight", c.viewport.Height(),
	)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetBackendHost sets the host that server file paths are resolved against
func (c *Chat) SetBackendHost(host string) {
	c.backendHost = host
	c.updateContent()
}

// SetMessages replaces the transcript with the active conversation's messages
func (c *Chat) SetMessages(messages []conversation.Message) {
	changed := len(messages) != len(c.messages)
	c.messages = messages
	if changed {
		c.selection.Clear()
	}
	c.updateContent()
}

// RefreshStyles re-renders the transcript after a theme change.
func (c *Chat) RefreshStyles() {
	c.updateContent()
}

// MessageCount returns the number of messages shown
func (c *Chat) MessageCount() int {
	return len(c.messages)
}

// GetInput returns the current input text without surrounding whitespace
func (c *Chat) GetInput() string {
	val := strings.TrimSpace(c.input.Value())
	logger.WithComponent("chat").Debug("GetInput", "len", len(val))
	return val
}

// ClearInput clears the input field
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input field value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// InsertNewline inserts a line break at the cursor
func (c *Chat) InsertNewline() {
	c.input.InsertString("\n")
}

// SetAttachment shows label as the composer's attachment chip; "" removes it.
func (c *Chat) SetAttachment(label string) {
	c.attachment = label
}

// HasAttachment reports whether an attachment chip is shown
func (c *Chat) HasAttachment() bool {
	return c.attachment != ""
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if len(c.messages) == 0 && !c.waiting {
		sb.WriteString(renderWelcomeMessage())
	} else {
		for i, msg := range c.messages {
			if i > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(renderMessage(msg, wrapWidth, c.backendHost))
		}

		if c.waiting {
			if len(c.messages) > 0 {
				sb.WriteString("\n\n")
			}
			sb.WriteString(ChatAssistantStyle.Render(AssistantName + ":"))
			sb.WriteString("\n")
			sb.WriteString(renderWaitingStatus(c.spinner.Verb, c.spinner.Idx, time.Since(c.spinner.StartTime)))
		}
	}

	c.viewport.SetContent(sb.String())
	c.viewport.GotoBottom()
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	if c.logViewer != nil {
		switch msg.(type) {
		case tea.KeyPressMsg, tea.MouseWheelMsg:
			return c, c.updateLogViewer(msg)
		}
	}

	switch msg := msg.(type) {
	case StopwatchTickMsg:
		return c, c.handleStopwatchTick()

	case SelectionFlashTickMsg:
		return c, c.handleSelectionFlashTick()

	case tea.MouseClickMsg:
		if msg.Button != tea.MouseLeft {
			return c, nil
		}
		x, y := msg.X-1, msg.Y-1 // panel border
		if y >= c.viewport.Height() {
			c.selection.Clear()
			return c, nil
		}
		return c, c.handleMouseClick(x, y)

	case tea.MouseMotionMsg:
		if c.selection.Active {
			c.EndSelection(msg.X-1, msg.Y-1)
		}
		return c, nil

	case tea.MouseReleaseMsg:
		if !c.selection.Active {
			return c, nil
		}
		c.EndSelection(msg.X-1, msg.Y-1)
		c.SelectionStop()
		return c, c.CopySelectedText()

	case tea.KeyPressMsg:
		switch msg.String() {
		case keys.PgUp, keys.PgDown, "ctrl+u", "ctrl+d", "ctrl+up", "ctrl+down":
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		if !c.focused {
			return c, nil
		}
		if c.selection.HasSelection() {
			c.selection.Clear()
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd

	case tea.PasteMsg:
		if !c.focused {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	return c, cmd
}

// renderComposerStatus renders the line above the textarea: the attachment
// chip, or a note that sending is disabled while a reply is pending.
func (c *Chat) renderComposerStatus() string {
	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	var parts []string
	if c.attachment != "" {
		parts = append(parts, AttachmentChipStyle.Render("📎 "+c.attachment))
	}
	if c.waiting {
		parts = append(parts, StatusLoadingStyle.Render("send disabled until the reply arrives"))
	} else if c.attachment == "" {
		parts = append(parts, muted.Render("no file attached"))
	}
	return strings.Join(parts, "  ")
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	if c.logViewer != nil {
		return c.renderLogViewerMode(panelStyle)
	}

	chatPanelHeight := c.height - InputTotalHeight
	viewportContent := c.selectionView(c.viewport.View())
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).Render(viewportContent)

	inputStyle := ChatInputStyle
	if c.focused {
		inputStyle = ChatInputFocusedStyle
	}
	composer := c.renderComposerStatus() + "\n" + c.input.View()
	inputArea := inputStyle.Width(c.width).Render(composer)

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
