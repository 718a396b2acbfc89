package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/ui"
)

// ShowFlash puts text in the footer and starts the expiry timer.
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError shows an error notice. Errors are also logged since the
// footer forgets them.
func (m *Model) ShowFlashError(text string) tea.Cmd {
	logger.WithComponent("app").Warn("flash error", "text", text)
	return m.ShowFlash(text, ui.FlashError)
}

func (m *Model) ShowFlashWarning(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashWarning)
}

func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}

func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}

func copiedText(chars int) string {
	if chars == 1 {
		return "Copied 1 character"
	}
	return fmt.Sprintf("Copied %d characters", chars)
}
