package modals

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"

	"github.com/cazelabs/cazechat/internal/keys"
)

// initHuhForm initializes a huh form eagerly so it renders correctly
// immediately. Call this in every modal constructor after creating the form.
func initHuhForm(form *huh.Form) {
	form.Init()
}

// huhFormUpdate is the common Update logic for huh-based modals.
// It intercepts Enter and Escape (handled by the app-layer modal handlers)
// and delegates everything else to the huh form.
func huhFormUpdate(form *huh.Form, msg tea.Msg) (*huh.Form, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case keys.Enter, keys.Escape:
			// Don't let huh handle these; the app-layer modal handlers do
			return form, nil
		}
	}

	m, cmd := form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		form = f
	}
	return form, cmd
}

// ModalTheme builds a huh theme from the modal palette. Forms call it when
// they are created so a theme switch applies to the next modal.
func ModalTheme() huh.Theme {
	return huh.ThemeFunc(func(isDark bool) *huh.Styles {
		fg := func(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
		marker := func(c color.Color, s string) lipgloss.Style { return fg(c).SetString(s) }

		t := huh.ThemeBase(isDark)
		f := &t.Focused

		// The focused field carries a bar on its left edge.
		f.Base = lipgloss.NewStyle().
			PaddingLeft(1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(ColorPrimary)
		f.Card = f.Base
		f.Title = fg(ColorText).Bold(true)
		f.Description = fg(ColorTextMuted).Italic(true)
		f.ErrorIndicator = marker(ColorWarning, " *")
		f.ErrorMessage = fg(ColorWarning)

		// Theme select
		f.SelectSelector = marker(ColorPrimary, "> ")
		f.NextIndicator = marker(ColorPrimary, "→").MarginLeft(1)
		f.PrevIndicator = marker(ColorPrimary, "←").MarginRight(1)
		f.Option = fg(ColorText)

		// General toggles
		f.MultiSelectSelector = marker(ColorPrimary, "> ")
		f.SelectedOption = fg(ColorSecondary)
		f.SelectedPrefix = marker(ColorSecondary, "[x] ")
		f.UnselectedOption = fg(ColorText)
		f.UnselectedPrefix = marker(ColorTextMuted, "[ ] ")

		// Endpoint and path inputs
		f.TextInput.Cursor = fg(ColorPrimary)
		f.TextInput.Placeholder = fg(ColorTextMuted)
		f.TextInput.Prompt = fg(ColorPrimary)
		f.TextInput.Text = fg(ColorText)

		// Blurred fields drop the bar but keep its width.
		t.Blurred = t.Focused
		t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(2)
		t.Blurred.Card = t.Blurred.Base
		t.Blurred.NextIndicator = lipgloss.NewStyle()
		t.Blurred.PrevIndicator = lipgloss.NewStyle()

		t.Group.Title = fg(ColorSecondary).Bold(true)
		t.Group.Description = fg(ColorTextMuted)
		t.FieldSeparator = lipgloss.NewStyle().SetString("\n")
		t.Help = help.New().Styles

		return t
	})
}
