package modals

import (
	"fmt"
	"io"

	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

const helpKeyColumn = 16

// helpRow is a line of the help list: either a section title or a shortcut.
// Titles never match a filter, so filtering leaves only shortcuts.
type helpRow struct {
	title    string
	shortcut HelpShortcut
}

func (r helpRow) isTitle() bool { return r.title != "" }

func (r helpRow) FilterValue() string {
	if r.isTitle() {
		return ""
	}
	return r.shortcut.Key + " " + r.shortcut.Desc
}

// helpDelegate draws rows with styles captured from the theme when the modal
// opens.
type helpDelegate struct {
	title, key, desc, selKey, selDesc lipgloss.Style
}

func newHelpDelegate() helpDelegate {
	selected := lipgloss.NewStyle().Foreground(ColorTextInverse).Background(ColorPrimary)
	return helpDelegate{
		title:   lipgloss.NewStyle().Bold(true).Foreground(ColorSecondary),
		key:     lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Width(helpKeyColumn),
		desc:    lipgloss.NewStyle().Foreground(ColorText),
		selKey:  selected.Bold(true).Width(helpKeyColumn),
		selDesc: selected,
	}
}

func (helpDelegate) Height() int                         { return 1 }
func (helpDelegate) Spacing() int                        { return 0 }
func (helpDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d helpDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(helpRow)
	if !ok {
		return
	}
	switch {
	case row.isTitle():
		fmt.Fprint(w, d.title.Render(row.title))
	case index == m.Index():
		fmt.Fprint(w, "> "+d.selKey.Render(row.shortcut.Key)+d.selDesc.Render(row.shortcut.Desc))
	default:
		fmt.Fprint(w, "  "+d.key.Render(row.shortcut.Key)+d.desc.Render(row.shortcut.Desc))
	}
}

// HelpState lists the shortcuts that apply where the user is. Enter on a row
// triggers it.
type HelpState struct {
	list list.Model
}

func (*HelpState) modalState() {}

func (s *HelpState) Title() string { return "Keyboard Shortcuts" }

func (s *HelpState) Help() string {
	if s.list.SettingFilter() {
		return "Type to filter  Enter: apply  Esc: cancel"
	}
	return "/: filter  up/down: navigate  Enter: trigger  Esc: close"
}

func (s *HelpState) Render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(s.Title()),
		s.list.View(),
		ModalHelpStyle.Render(s.Help()))
}

func (s *HelpState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	before := s.list.Index()
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	if after := s.list.Index(); after != before {
		s.skipTitles(after - before)
	}
	return s, cmd
}

// skipTitles keeps the cursor off section titles, continuing in the direction
// it moved and turning back at either end of the list.
func (s *HelpState) skipTitles(delta int) {
	step := 1
	if delta < 0 {
		step = -1
	}
	visible := s.list.VisibleItems()
	for _, dir := range []int{step, -step} {
		for i := s.list.Index(); i >= 0 && i < len(visible); i += dir {
			if row, ok := visible[i].(helpRow); ok && !row.isTitle() {
				s.list.Select(i)
				return
			}
		}
	}
}

// SetSize leaves room for the title and help lines and their margins.
func (s *HelpState) SetSize(width, height int) {
	s.list.SetSize(width, max(height-4, 1))
}

// GetSelectedShortcut returns the shortcut under the cursor, or nil when the
// list is empty.
func (s *HelpState) GetSelectedShortcut() *HelpShortcut {
	row, ok := s.list.SelectedItem().(helpRow)
	if !ok || row.isTitle() {
		return nil
	}
	return &row.shortcut
}

// IsFiltering returns whether the user is typing a filter.
func (s *HelpState) IsFiltering() bool {
	return s.list.SettingFilter()
}

// NewHelpStateFromSections builds the help list from grouped shortcuts with
// the cursor on the first shortcut.
func NewHelpStateFromSections(sections []HelpSection) *HelpState {
	var rows []list.Item
	first := -1
	for _, section := range sections {
		rows = append(rows, helpRow{title: section.Title})
		for _, sc := range section.Shortcuts {
			if first < 0 {
				first = len(rows)
			}
			rows = append(rows, helpRow{shortcut: sc})
		}
	}

	l := list.New(rows, newHelpDelegate(), ModalWidth, HelpModalMaxVisible)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.SetFilteringEnabled(true)
	if first >= 0 {
		l.Select(first)
	}

	return &HelpState{list: l}
}
