package modals

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// =============================================================================
// AttachFileState - State for the Attach File modal
// =============================================================================

// AttachFileState asks for the path of the file to attach to the next prompt.
type AttachFileState struct {
	path    string
	current string // label of the attachment being replaced, if any

	form *huh.Form
}

func (*AttachFileState) modalState() {}

func (s *AttachFileState) Title() string { return "Attach File" }

func (s *AttachFileState) Help() string {
	return "Tab: complete  Enter: attach  Esc: cancel"
}

func (s *AttachFileState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	parts := []string{title}

	if s.current != "" {
		replacing := lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Replaces " + TruncateString(s.current, ModalInputWidth))
		parts = append(parts, replacing)
	}

	parts = append(parts, s.form.View(), ModalHelpStyle.Render(s.Help()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *AttachFileState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// GetPath returns the entered path with surrounding whitespace removed.
func (s *AttachFileState) GetPath() string {
	return strings.TrimSpace(s.path)
}

// NewAttachFileState creates the modal. dir seeds the path suggestions and
// current labels the attachment a new one would replace ("" for none).
func NewAttachFileState(dir, current string) *AttachFileState {
	s := &AttachFileState{current: current}

	input := huh.NewInput().
		Title("Path").
		Description("Files up to 20 MB; ~ expands to your home directory").
		Placeholder("~/Documents/report.pdf").
		CharLimit(ModalInputCharLimit).
		Value(&s.path)
	if suggestions := pathSuggestions(dir); len(suggestions) > 0 {
		input = input.Suggestions(suggestions)
	}

	s.form = huh.NewForm(huh.NewGroup(input)).
		WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
