package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType categorizes flash messages for styling.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays in the footer.
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient notice that replaces the key bindings.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible.
type FlashTickMsg time.Time

// FlashTick schedules the next expiry check.
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width          int
	bindings       []KeyBinding
	sidebarFocused bool // Whether sidebar has focus
	searchMode     bool // Whether the sidebar filter input is active
	loading        bool // Whether a reply is being waited on
	hasAttachment  bool // Whether the composer holds a file
	kittyKeyboard  bool // Whether the terminal reports shift+enter distinctly
	logViewer      bool // Whether the chat panel shows the log viewer
	flashMessage   *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "filter"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "tab", Desc: "switch pane"},
			{Key: ",", Desc: "settings"},
			{Key: "?", Desc: "help"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(sidebarFocused, searchMode, loading, hasAttachment, kittyKeyboard bool) {
	f.sidebarFocused = sidebarFocused
	f.searchMode = searchMode
	f.loading = loading
	f.hasAttachment = hasAttachment
	f.kittyKeyboard = kittyKeyboard
}

// SetLogViewerMode switches the bindings to the log viewer's.
func (f *Footer) SetLogViewerMode(on bool) {
	f.logViewer = on
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings for the sidebar context
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for a custom duration.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash message and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func (f *Footer) newlineKey() string {
	if f.kittyKeyboard {
		return "shift+enter"
	}
	return "opt+enter"
}

func (f *Footer) contextBindings() []KeyBinding {
	switch {
	case f.sidebarFocused && f.searchMode:
		return []KeyBinding{
			{Key: "type", Desc: "filter"},
			{Key: "enter", Desc: "keep filter"},
			{Key: "esc", Desc: "clear"},
		}
	case f.sidebarFocused:
		return f.bindings
	case f.logViewer:
		return []KeyBinding{
			{Key: "←/→", Desc: "switch file"},
			{Key: "f", Desc: "follow"},
			{Key: "r", Desc: "refresh"},
			{Key: "esc", Desc: "close logs"},
		}
	case f.loading:
		return []KeyBinding{
			{Key: "…", Desc: "waiting for reply"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	}

	bindings := []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: f.newlineKey(), Desc: "newline"},
		{Key: "ctrl+o", Desc: "attach"},
	}
	if f.hasAttachment {
		bindings = append(bindings, KeyBinding{Key: "ctrl+x", Desc: "remove file"})
	} else {
		bindings = append(bindings, KeyBinding{Key: "ctrl+v", Desc: "paste image"})
	}
	return append(bindings,
		KeyBinding{Key: "ctrl+y", Desc: "copy reply"},
		KeyBinding{Key: "tab", Desc: "switch pane"},
	)
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.contextBindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var icon string
	var c = ColorInfo
	switch f.flashMessage.Type {
	case FlashError:
		icon, c = "✕", ColorError
	case FlashWarning:
		icon, c = "⚠", ColorWarning
	case FlashSuccess:
		icon, c = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	return lipgloss.NewStyle().Foreground(c).Render(icon + " " + f.flashMessage.Text)
}
