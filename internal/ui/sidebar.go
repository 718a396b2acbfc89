package ui

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/logger"
)

const newChatLabel = "+ New Chat"

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// sidebarItemKind distinguishes conversations from the "+ New Chat" row.
type sidebarItemKind int

const (
	itemKindConversation sidebarItemKind = iota
	itemKindNewChat
)

type sidebarItem struct {
	Kind         sidebarItemKind
	ID           string
	Name         string
	MessageCount int
}

// Sidebar represents the left panel with the conversation list
type Sidebar struct {
	items        []sidebarItem // all conversations in creation order
	filtered     []sidebarItem // items matching the filter; nil when no filter
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int
	activeID     string
	pendingID    string          // conversation waiting on a reply
	unread       map[string]bool // conversations whose reply landed while inactive
	spinner      SpinnerState // same star as the chat panel's waiting line

	lastHash uint64

	searchMode  bool
	searchInput textinput.Model
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "filter..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		unread:      make(map[string]bool),
		searchInput: ti,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize",
		"outerWidth", width,
		"outerHeight", height,
		"innerWidth", ctx.InnerWidth(width),
		"innerHeight", ctx.InnerHeight(height),
	)
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// hashConversations computes a fast hash of the list to detect changes
func hashConversations(convs []conversation.Conversation, activeID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(activeID))
	h.Write([]byte{0})
	for _, c := range convs {
		h.Write([]byte(c.ID))
		h.Write([]byte{0})
		h.Write([]byte(c.Name))
		h.Write([]byte{0})
		fmt.Fprintf(h, "%d", len(c.Messages))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// SetConversations replaces the list and marks activeID as the active one.
// When the active conversation changes, the cursor follows it.
func (s *Sidebar) SetConversations(convs []conversation.Conversation, activeID string) {
	newHash := hashConversations(convs, activeID)
	if newHash == s.lastHash && len(convs) == len(s.items) {
		return
	}
	s.lastHash = newHash

	activeChanged := activeID != s.activeID
	s.activeID = activeID
	delete(s.unread, activeID)

	s.items = make([]sidebarItem, 0, len(convs))
	for _, c := range convs {
		s.items = append(s.items, sidebarItem{
			Kind:         itemKindConversation,
			ID:           c.ID,
			Name:         c.Name,
			MessageCount: len(c.Messages),
		})
	}

	if s.filtered != nil {
		s.applyFilter(s.searchInput.Value())
	}

	if activeChanged {
		s.SelectConversation(activeID)
	}
	s.clampSelection()
}

// displayItems returns what the list currently shows, including the
// "+ New Chat" row when no filter is applied.
func (s *Sidebar) displayItems() []sidebarItem {
	if s.filtered != nil {
		return s.filtered
	}
	return append(s.items[:len(s.items):len(s.items)], sidebarItem{Kind: itemKindNewChat, Name: newChatLabel})
}

func (s *Sidebar) clampSelection() {
	n := len(s.displayItems())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// SelectedConversationID returns the ID under the cursor, or "" when the
// cursor is on the "+ New Chat" row or the filtered list is empty.
func (s *Sidebar) SelectedConversationID() string {
	items := s.displayItems()
	if s.selectedIdx < 0 || s.selectedIdx >= len(items) {
		return ""
	}
	if items[s.selectedIdx].Kind != itemKindConversation {
		return ""
	}
	return items[s.selectedIdx].ID
}

// IsNewChatSelected returns true when the "+ New Chat" row is selected.
func (s *Sidebar) IsNewChatSelected() bool {
	items := s.displayItems()
	if s.selectedIdx < 0 || s.selectedIdx >= len(items) {
		return false
	}
	return items[s.selectedIdx].Kind == itemKindNewChat
}

// SelectConversation moves the cursor to the conversation with the given ID
func (s *Sidebar) SelectConversation(id string) {
	for i, item := range s.displayItems() {
		if item.Kind == itemKindConversation && item.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// SetPending marks the conversation waiting on a reply; "" clears it.
func (s *Sidebar) SetPending(conversationID string) {
	logger.WithComponent("sidebar").Debug("SetPending", "conversationID", conversationID)
	s.pendingID = conversationID
	if conversationID == "" {
		s.spinner = SpinnerState{}
	}
}

// IsPending reports whether any conversation is waiting on a reply.
func (s *Sidebar) IsPending() bool {
	return s.pendingID != ""
}

// MarkUnread flags a conversation that received a reply while inactive.
func (s *Sidebar) MarkUnread(conversationID string) {
	if conversationID != s.activeID {
		s.unread[conversationID] = true
	}
}

// HasUnread reports whether the conversation has an unseen reply.
func (s *Sidebar) HasUnread(conversationID string) bool {
	return s.unread[conversationID]
}

// SidebarTick returns a command that sends a tick message after a delay
func SidebarTick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// EnterSearchMode activates the filter input
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.applyFilter("")
	return s.searchInput.Focus()
}

// ExitSearchMode deactivates the filter input and clears the filter
func (s *Sidebar) ExitSearchMode() {
	selected := s.SelectedConversationID()
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.filtered = nil
	s.scrollOffset = 0
	if selected != "" {
		s.SelectConversation(selected)
	}
	s.clampSelection()
}

// IsSearchMode returns whether the filter input is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// IsFiltered reports whether a filter currently narrows the list.
func (s *Sidebar) IsFiltered() bool {
	return s.filtered != nil
}

// GetSearchQuery returns the current filter text
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

// applyFilter narrows the list by case-insensitive name match.
func (s *Sidebar) applyFilter(query string) {
	if query == "" {
		s.filtered = nil
		s.clampSelection()
		return
	}

	query = strings.ToLower(query)
	s.filtered = []sidebarItem{}
	for _, item := range s.items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			s.filtered = append(s.filtered, item)
		}
	}

	if s.selectedIdx >= len(s.filtered) {
		s.selectedIdx = len(s.filtered) - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
	s.scrollOffset = 0
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	switch msg := msg.(type) {
	case SidebarTickMsg:
		if !s.IsPending() {
			return s, nil
		}
		s.spinner.advance()
		return s, SidebarTick()

	case tea.KeyPressMsg:
		if !s.focused {
			return s, nil
		}

		items := s.displayItems()

		if s.searchMode {
			switch msg.String() {
			case keys.Escape:
				s.ExitSearchMode()
				return s, nil
			case keys.Enter:
				// Keep the filter applied and hand keys back to the list.
				s.searchMode = false
				s.searchInput.Blur()
				return s, nil
			case keys.Up:
				if s.selectedIdx > 0 {
					s.selectedIdx--
				}
				return s, nil
			case keys.Down:
				if s.selectedIdx < len(items)-1 {
					s.selectedIdx++
				}
				return s, nil
			default:
				var cmd tea.Cmd
				s.searchInput, cmd = s.searchInput.Update(msg)
				s.applyFilter(s.searchInput.Value())
				return s, cmd
			}
		}

		switch msg.String() {
		case keys.Up, "k":
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
		case keys.Down, "j":
			if s.selectedIdx < len(items)-1 {
				s.selectedIdx++
			}
		case keys.Home:
			s.selectedIdx = 0
		case keys.End:
			s.selectedIdx = len(items) - 1
		}
	}

	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	var searchLine string
	if s.searchMode || s.filtered != nil {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		if s.searchMode {
			s.searchInput.SetWidth(innerWidth - 3) // Leave room for "/ "
			searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		} else {
			searchLine = searchStyle.Render("/") + " " +
				lipgloss.NewStyle().Foreground(ColorTextMuted).Render(s.searchInput.Value()+"  (esc clears)")
		}
		innerHeight--
	}

	items := s.displayItems()

	var content string
	if len(items) == 0 {
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("No matches.")
	} else {
		// Work in rendered lines so wrapped items scroll correctly.
		var allLines []string
		selectedStartLine := 0

		for idx, item := range items {
			isSelected := idx == s.selectedIdx && s.focused
			var rendered string
			switch {
			case isSelected:
				selectedStartLine = len(allLines)
				rendered = SidebarSelectedStyle.Width(innerWidth).Render(s.renderItem(item, innerWidth, true))
			case item.Kind == itemKindNewChat:
				rendered = lipgloss.NewStyle().
					Foreground(ColorTextMuted).
					Italic(true).
					Render(s.renderItem(item, innerWidth, false))
			case item.ID == s.activeID:
				if idx == s.selectedIdx {
					selectedStartLine = len(allLines)
				}
				rendered = SidebarActiveStyle.Width(innerWidth).Render(s.renderItem(item, innerWidth, true))
			default:
				rendered = SidebarItemStyle.Width(innerWidth).Render(s.renderItem(item, innerWidth, false))
			}
			allLines = append(allLines, strings.Split(rendered, "\n")...)
		}

		visibleHeight := innerHeight
		if selectedStartLine < s.scrollOffset {
			s.scrollOffset = selectedStartLine
		} else if selectedStartLine >= s.scrollOffset+visibleHeight {
			s.scrollOffset = selectedStartLine - visibleHeight + 1
		}
		maxScroll := len(allLines) - visibleHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if s.scrollOffset > maxScroll {
			s.scrollOffset = maxScroll
		}
		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}

		if s.scrollOffset > 0 && s.scrollOffset < len(allLines) {
			allLines = allLines[s.scrollOffset:]
		}
		if visibleHeight > 0 && len(allLines) > visibleHeight {
			allLines = allLines[:visibleHeight]
		}
		content = strings.Join(allLines, "\n")
	}

	if searchLine != "" {
		if content != "" {
			content = searchLine + "\n" + content
		} else {
			content = searchLine
		}
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderItem builds the single-line label for an item. plain skips inner
// styling so a selection style can color the whole row.
func (s *Sidebar) renderItem(item sidebarItem, width int, plain bool) string {
	prefix := "  "
	if item.Kind == itemKindNewChat {
		if plain && s.focused {
			prefix = "> "
		}
		return prefix + item.Name
	}

	var symbol string
	var symbolColor color.Color
	switch {
	case item.ID == s.pendingID:
		symbol = s.spinner.glyph()
		symbolColor = ColorPrimary
	case s.unread[item.ID]:
		symbol = "●"
		symbolColor = ColorSecondary
	case item.MessageCount > 0:
		symbol = "◆"
		symbolColor = ColorPrimary
	default:
		symbol = "◇"
		symbolColor = ColorTextMuted
	}

	if plain && s.focused && s.SelectedConversationID() == item.ID {
		prefix = ">"
	} else {
		prefix = " "
	}

	// prefix + symbol + space
	room := width - runewidth.StringWidth(prefix) - runewidth.StringWidth(symbol) - 1
	name := item.Name
	if room > 0 && runewidth.StringWidth(name) > room {
		name = runewidth.Truncate(name, room, "…")
	}

	if plain {
		return prefix + symbol + " " + name
	}
	return prefix + lipgloss.NewStyle().Foreground(symbolColor).Render(symbol) + " " + name
}
