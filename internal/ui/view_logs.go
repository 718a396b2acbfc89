package ui

import (
	"fmt"
	"os"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/cazelabs/cazechat/internal/keys"
	"github.com/cazelabs/cazechat/internal/logger"
)

// GetLogFiles returns the log files that exist on disk: the client's own
// debug log and the stub backend's log. Always returns a non-nil slice.
func GetLogFiles() []LogFile {
	files := []LogFile{}

	debugPath := logger.Path()
	if debugPath == "" {
		debugPath = logger.DefaultLogPath
	}
	candidates := []LogFile{
		{Name: "Debug Log", Path: debugPath},
		{Name: "Stub Backend", Path: logger.StubLogPath},
	}
	for _, f := range candidates {
		if _, err := os.Stat(f.Path); err == nil {
			files = append(files, f)
		}
	}
	return files
}

// EnterLogViewerMode replaces the transcript with the log viewer.
func (c *Chat) EnterLogViewerMode(files []LogFile) {
	c.logViewer = &LogViewerState{
		Files:      files,
		Viewport:   viewport.New(),
		FollowTail: true,
	}

	c.logViewer.Viewport.MouseWheelEnabled = true
	c.logViewer.Viewport.MouseWheelDelta = 3
	c.logViewer.Viewport.SoftWrap = true
	c.logViewer.Viewport.SetWidth(c.viewport.Width())
	c.logViewer.Viewport.SetHeight(c.viewport.Height())

	c.updateLogViewerContent()
}

func (c *Chat) updateLogViewerContent() {
	if c.logViewer == nil {
		return
	}
	if len(c.logViewer.Files) == 0 {
		c.logViewer.Viewport.SetContent("No log files found")
		return
	}
	if c.logViewer.FileIndex >= len(c.logViewer.Files) {
		c.logViewer.FileIndex = len(c.logViewer.Files) - 1
	}

	file := &c.logViewer.Files[c.logViewer.FileIndex]
	content, err := os.ReadFile(file.Path)
	if err != nil {
		c.logViewer.Viewport.SetContent(fmt.Sprintf("Error reading log file: %v", err))
		return
	}
	file.Content = string(content)
	c.logViewer.Viewport.SetContent(highlightLogContent(file.Content))

	if c.logViewer.FollowTail {
		c.logViewer.Viewport.GotoBottom()
	} else {
		c.logViewer.Viewport.GotoTop()
	}
}

func highlightLogContent(content string) string {
	var sb strings.Builder
	for line := range strings.SplitSeq(strings.TrimRight(content, "\n"), "\n") {
		sb.WriteString(highlightLogLine(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

// highlightLogLine colors the level and msg fields of one slog text line.
func highlightLogLine(line string) string {
	if line == "" {
		return line
	}

	levels := []struct {
		token string
		style lipgloss.Style
	}{
		{"level=ERROR", lipgloss.NewStyle().Foreground(ColorError).Bold(true)},
		{"level=WARN", lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)},
		{"level=INFO", lipgloss.NewStyle().Foreground(ColorInfo)},
		{"level=DEBUG", lipgloss.NewStyle().Foreground(ColorTextMuted)},
	}
	for _, l := range levels {
		if strings.Contains(line, l.token) {
			line = strings.Replace(line, l.token, l.style.Render(l.token), 1)
			break
		}
	}

	idx := strings.Index(line, `msg="`)
	if idx < 0 {
		return line
	}
	rest := line[idx+5:]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return line
	}
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(ColorText)
	return line[:idx] + keyStyle.Render("msg=") + valueStyle.Render(`"`+rest[:end+1]) + rest[end+1:]
}

// ExitLogViewerMode returns the panel to the transcript.
func (c *Chat) ExitLogViewerMode() {
	c.logViewer = nil
}

// IsInLogViewerMode reports whether the log viewer is showing.
func (c *Chat) IsInLogViewerMode() bool {
	return c.logViewer != nil
}

// RefreshLogViewer reloads the current log file.
func (c *Chat) RefreshLogViewer() {
	c.updateLogViewerContent()
}

// ToggleLogViewerFollowTail toggles scrolling to the newest lines on refresh.
func (c *Chat) ToggleLogViewerFollowTail() {
	if c.logViewer == nil {
		return
	}
	c.logViewer.FollowTail = !c.logViewer.FollowTail
	if c.logViewer.FollowTail {
		c.logViewer.Viewport.GotoBottom()
	}
}

// GetLogViewerFollowTail returns whether follow tail mode is enabled.
func (c *Chat) GetLogViewerFollowTail() bool {
	return c.logViewer != nil && c.logViewer.FollowTail
}

// updateLogViewer handles keys while the log viewer is showing.
func (c *Chat) updateLogViewer(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case keys.Escape, "q", keys.CtrlL:
			c.ExitLogViewerMode()
			return nil
		case keys.Left, "h":
			if c.logViewer.FileIndex > 0 {
				c.logViewer.FileIndex--
				c.updateLogViewerContent()
			}
			return nil
		case keys.Right, "l":
			if c.logViewer.FileIndex < len(c.logViewer.Files)-1 {
				c.logViewer.FileIndex++
				c.updateLogViewerContent()
			}
			return nil
		case "f":
			c.ToggleLogViewerFollowTail()
			return nil
		case "r":
			c.RefreshLogViewer()
			return nil
		}
	}

	var cmd tea.Cmd
	c.logViewer.Viewport, cmd = c.logViewer.Viewport.Update(msg)
	return cmd
}

// renderLogViewerMode renders the log viewer with its file navigation bar.
func (c *Chat) renderLogViewerMode(panelStyle lipgloss.Style) string {
	innerWidth := c.width - 2
	innerHeight := c.height - 2

	navBar := c.renderLogNavBar(innerWidth)
	logHeight := max(innerHeight-1, 1)

	c.logViewer.Viewport.SetWidth(innerWidth)
	c.logViewer.Viewport.SetHeight(logHeight)

	logContent := lipgloss.NewStyle().
		MaxHeight(logHeight).
		Render(c.logViewer.Viewport.View())

	content := lipgloss.JoinVertical(lipgloss.Left, navBar, logContent)
	return panelStyle.Width(c.width).Height(c.height).Render(content)
}

// renderLogNavBar renders "← Debug Log (1 of 2) → [Follow] [r: refresh]".
func (c *Chat) renderLogNavBar(width int) string {
	if len(c.logViewer.Files) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Foreground(ColorTextMuted).
			Render("No log files found")
	}

	current := c.logViewer.Files[c.logViewer.FileIndex]

	leftArrow := "  "
	if c.logViewer.FileIndex > 0 {
		leftArrow = "← "
	}
	rightArrow := "  "
	if c.logViewer.FileIndex < len(c.logViewer.Files)-1 {
		rightArrow = " →"
	}

	muted := lipgloss.NewStyle().Foreground(ColorTextMuted)
	counter := muted.Render(fmt.Sprintf("(%d of %d)", c.logViewer.FileIndex+1, len(c.logViewer.Files)))
	arrowStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	follow := " " + muted.Render("[f: follow]")
	if c.logViewer.FollowTail {
		follow = " " + lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true).Render("[Follow]")
	}
	refresh := " " + muted.Render("[r: refresh]")

	fixed := lipgloss.Width(leftArrow) + lipgloss.Width(counter) + lipgloss.Width(rightArrow) +
		lipgloss.Width(follow) + lipgloss.Width(refresh) + 1
	name := runewidth.Truncate(current.Name, max(width-fixed, 10), "…")

	nav := arrowStyle.Render(leftArrow) +
		lipgloss.NewStyle().Foreground(ColorText).Bold(true).Render(name) + " " +
		counter +
		arrowStyle.Render(rightArrow) +
		follow +
		refresh

	return lipgloss.NewStyle().Width(width).Render(nav)
}
