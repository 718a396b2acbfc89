package app

import (
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/ui"
)

// Shortcut represents a keyboard shortcut with its metadata and handler.
// This is the single source of truth for all shortcuts in the application.
type Shortcut struct {
	Key             string                              // The key binding (e.g., "tab", "ctrl+o")
	DisplayKey      string                              // Display name in help (e.g., "ctrl-o"); defaults to Key
	Description     string                              // Human-readable description
	Category        string                              // Section for help modal grouping
	RequiresSidebar bool                                // Must not be in chat focus
	Handler         func(m *Model) (tea.Model, tea.Cmd) // Action to perform
	Condition       func(m *Model) bool                 // Optional extra condition
}

// Categories for organizing shortcuts in the help modal
const (
	CategoryNavigation    = "Navigation"
	CategoryConversations = "Conversations"
	CategoryComposer      = "Composer"
	CategoryConfiguration = "Configuration"
	CategoryGeneral       = "General"
)

// categoryOrder defines the display order of categories in the help modal
var categoryOrder = []string{
	CategoryNavigation,
	CategoryConversations,
	CategoryComposer,
	CategoryConfiguration,
	CategoryGeneral,
}

// ShortcutRegistry is the central registry of all keyboard shortcuts.
// Entries here appear in the help modal and can be run from it.
var ShortcutRegistry = []Shortcut{
	// Navigation
	{
		Key:         "tab",
		DisplayKey:  "Tab",
		Description: "Switch between sidebar and chat",
		Category:    CategoryNavigation,
		Handler:     shortcutToggleFocus,
	},
	{
		Key:             "/",
		Description:     "Search conversations",
		Category:        CategoryNavigation,
		RequiresSidebar: true,
		Handler:         shortcutSearch,
		Condition:       func(m *Model) bool { return !m.sidebar.IsSearchMode() },
	},

	// Conversations
	{
		Key:         "ctrl+n",
		DisplayKey:  "ctrl-n",
		Description: "Start a new chat",
		Category:    CategoryConversations,
		Handler:     shortcutNewChat,
	},
	{
		Key:             "n",
		Description:     "Start a new chat",
		Category:        CategoryConversations,
		RequiresSidebar: true,
		Handler:         shortcutNewChat,
	},
	{
		Key:         "ctrl+y",
		DisplayKey:  "ctrl-y",
		Description: "Copy the last reply",
		Category:    CategoryConversations,
		Handler:     shortcutCopyReply,
	},

	// Composer
	{
		Key:         "ctrl+o",
		DisplayKey:  "ctrl-o",
		Description: "Attach a file",
		Category:    CategoryComposer,
		Handler:     shortcutAttachFile,
	},
	{
		Key:         "ctrl+x",
		DisplayKey:  "ctrl-x",
		Description: "Remove the attachment",
		Category:    CategoryComposer,
		Handler:     shortcutDetachFile,
		Condition:   func(m *Model) bool { return m.composer.HasAttachment() },
	},

	// Configuration
	{
		Key:             ",",
		Description:     "Settings",
		Category:        CategoryConfiguration,
		RequiresSidebar: true,
		Handler:         shortcutSettings,
	},

	// General
	// Note: "?" (help) is handled specially in ExecuteShortcut to avoid init cycle
	{
		Key:         "ctrl+l",
		DisplayKey:  "ctrl-l",
		Description: "View logs",
		Category:    CategoryGeneral,
		Handler:     shortcutLogs,
	},
	{
		Key:             "q",
		Description:     "Quit application",
		Category:        CategoryGeneral,
		RequiresSidebar: true,
		Handler:         shortcutQuit,
	},
}

// helpShortcut is defined separately to avoid initialization cycle.
// It references ShortcutRegistry, so it can't be in the registry itself.
var helpShortcut = Shortcut{
	Key:             "?",
	Description:     "Show this help",
	Category:        CategoryGeneral,
	RequiresSidebar: true,
}

// DisplayOnlyShortcuts are shown in help but not executable from the help modal.
var DisplayOnlyShortcuts = []Shortcut{
	{DisplayKey: "↑/↓ or j/k", Description: "Navigate conversation list", Category: CategoryNavigation},
	{DisplayKey: "PgUp/PgDn", Description: "Scroll chat or conversation list", Category: CategoryNavigation},
	{DisplayKey: "Enter", Description: "Open conversation / Send message", Category: CategoryNavigation},
	{DisplayKey: "Esc", Description: "Cancel search / Clear selection", Category: CategoryNavigation},

	{DisplayKey: "shift-enter", Description: "Insert a line break", Category: CategoryComposer},
	{DisplayKey: "ctrl-v", Description: "Paste image", Category: CategoryComposer},
	{DisplayKey: "Backspace", Description: "Remove attachment (empty input)", Category: CategoryComposer},
	{DisplayKey: "Mouse drag", Description: "Select text (auto-copies)", Category: CategoryComposer},
}

// isShortcutApplicable checks if a shortcut is applicable given the current model state.
// This is used to filter which shortcuts appear in the help modal.
func (m *Model) isShortcutApplicable(s Shortcut) bool {
	if s.RequiresSidebar && m.chat.IsFocused() {
		return false
	}
	if s.Condition != nil && !s.Condition(m) {
		return false
	}
	return true
}

// ExecuteShortcut finds and executes a shortcut by key.
// Returns (model, cmd, true) if the shortcut was found and executed.
// Returns (model, nil, false) if the shortcut was not found or guards failed.
func (m *Model) ExecuteShortcut(key string) (tea.Model, tea.Cmd, bool) {
	log := logger.WithComponent("shortcuts")

	// Keys typed into the sidebar filter belong to the filter, except "/"
	// whose Condition guard handles it.
	if m.sidebar.IsSearchMode() && key != "/" {
		return m, nil, false
	}

	if key == helpShortcut.Key {
		if m.chat.IsFocused() {
			return m, nil, false
		}
		result, cmd := shortcutHelp(m)
		return result, cmd, true
	}

	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if !m.isShortcutApplicable(s) {
			log.Debug("shortcut guard failed", "key", key, "chatFocused", m.chat.IsFocused())
			return m, nil, false // let key propagate to the focused panel
		}
		log.Debug("executing shortcut", "key", key)
		result, cmd := s.Handler(m)
		return result, cmd, true
	}
	return m, nil, false
}

// getApplicableHelpSections generates help modal sections from shortcuts that are
// applicable in the current application state.
func (m *Model) getApplicableHelpSections(registry []Shortcut, displayOnly []Shortcut) []ui.HelpSection {
	categories := make(map[string][]ui.HelpShortcut)
	seen := make(map[string]bool)

	add := func(s Shortcut) {
		displayKey := s.DisplayKey
		if displayKey == "" {
			displayKey = s.Key
		}
		id := s.Category + "\x00" + displayKey + "\x00" + s.Description
		if seen[id] {
			return
		}
		seen[id] = true
		categories[s.Category] = append(categories[s.Category], ui.HelpShortcut{
			Key:  displayKey,
			Desc: s.Description,
		})
	}

	for _, s := range registry {
		if m.isShortcutApplicable(s) {
			add(s)
		}
	}

	// Composer hints only make sense while the composer has focus.
	for _, s := range displayOnly {
		if s.Category == CategoryComposer && !m.chat.IsFocused() {
			continue
		}
		add(s)
	}

	var sections []ui.HelpSection
	for _, cat := range categoryOrder {
		if shortcuts, ok := categories[cat]; ok && len(shortcuts) > 0 {
			sections = append(sections, ui.HelpSection{
				Title:     cat,
				Shortcuts: shortcuts,
			})
		}
	}
	return sections
}

// =============================================================================
// Shortcut Handlers
// =============================================================================

func shortcutToggleFocus(m *Model) (tea.Model, tea.Cmd) {
	cmd := m.toggleFocus()
	return m, cmd
}

func shortcutSearch(m *Model) (tea.Model, tea.Cmd) {
	return m, m.sidebar.EnterSearchMode()
}

func shortcutNewChat(m *Model) (tea.Model, tea.Cmd) {
	return m, m.newConversation()
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	return m, m.copyLastReply()
}

func shortcutAttachFile(m *Model) (tea.Model, tea.Cmd) {
	dir, err := os.Getwd()
	if err != nil {
		dir = ""
	}
	current := ""
	if att := m.composer.Attachment(); att != nil {
		current = att.Label()
	}
	m.modal.Show(ui.NewAttachFileState(dir, current))
	return m, nil
}

func shortcutDetachFile(m *Model) (tea.Model, tea.Cmd) {
	return m, m.detachFile()
}

func shortcutSettings(m *Model) (tea.Model, tea.Cmd) {
	m.modal.Show(ui.NewSettingsState(
		themeOptions(),
		string(ui.CurrentThemeName()),
		m.config.GetEndpoint(),
		m.config.GetNotificationsEnabled(),
	))
	return m, nil
}

func shortcutLogs(m *Model) (tea.Model, tea.Cmd) {
	if m.chat.IsInLogViewerMode() {
		m.chat.ExitLogViewerMode()
		return m, nil
	}
	files := ui.GetLogFiles()
	if len(files) == 0 {
		return m, m.ShowFlashInfo("No log files yet")
	}
	m.chat.EnterLogViewerMode(files)
	return m, nil
}

func shortcutHelp(m *Model) (tea.Model, tea.Cmd) {
	// Include help shortcut in the registry for display purposes
	allShortcuts := append(ShortcutRegistry[:len(ShortcutRegistry):len(ShortcutRegistry)], helpShortcut)
	sections := m.getApplicableHelpSections(allShortcuts, DisplayOnlyShortcuts)
	m.modal.Show(ui.NewHelpStateFromSections(sections))
	return m, nil
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

// themeOptions lists the registered themes, custom ones included, for the
// settings modal.
func themeOptions() []ui.ThemeOption {
	names := ui.ThemeNames()
	opts := make([]ui.ThemeOption, len(names))
	for i, name := range names {
		opts[i] = ui.ThemeOption{Key: string(name), DisplayName: ui.GetTheme(name).Name}
	}
	return opts
}
