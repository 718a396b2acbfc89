package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// StopwatchTickMsg advances the waiting spinner and stopwatch.
type StopwatchTickMsg time.Time

// SelectionFlashTickMsg ends the copy flash on a selection.
type SelectionFlashTickMsg time.Time

const (
	stopwatchInterval = 200 * time.Millisecond
	flashInterval     = 150 * time.Millisecond
)

// waitingVerbs label a pending reply. A request keeps one verb for its whole
// life, picked from its start time.
var waitingVerbs = []string{
	"Thinking",
	"Reading",
	"Considering",
	"Composing",
	"Drafting",
	"Looking it up",
	"Typing",
	"Mulling it over",
}

func waitingVerb(start time.Time) string {
	n := start.UnixMilli() % int64(len(waitingVerbs))
	if n < 0 {
		n = -n
	}
	return waitingVerbs[n]
}

// spinnerFrame is a glyph and how many ticks it stays on screen.
type spinnerFrame struct {
	glyph string
	hold  int
}

// The star pulses, lingering on the dots at either end.
var spinnerFrames = []spinnerFrame{
	{"·", 2}, {"✺", 1}, {"✹", 1}, {"✸", 1}, {"✷", 1}, {"✶", 1}, {"✵", 1},
	{"✴", 1}, {"✳", 1}, {"✲", 1}, {"✱", 1}, {"✧", 1}, {"✦", 1}, {"·", 2},
}

// advance counts one tick and moves to the next frame once the current one
// has been held long enough.
func (s *SpinnerState) advance() {
	s.Tick++
	if s.Tick >= spinnerFrames[s.Idx%len(spinnerFrames)].hold {
		s.Tick = 0
		s.Idx = (s.Idx + 1) % len(spinnerFrames)
	}
}

func (s *SpinnerState) glyph() string {
	return spinnerFrames[s.Idx%len(spinnerFrames)].glyph
}

func StopwatchTick() tea.Cmd {
	return tea.Tick(stopwatchInterval, func(t time.Time) tea.Msg {
		return StopwatchTickMsg(t)
	})
}

func SelectionFlashTick() tea.Cmd {
	return tea.Tick(flashInterval, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// IsSelectionFlashing reports whether a copied selection is still highlighted.
func (c *Chat) IsSelectionFlashing() bool {
	return c.selection.FlashFrame >= 0
}

// renderWaitingStatus draws the placeholder under the bot label while a
// reply is pending, e.g. "✺ Thinking... (waiting for the server • 12s)".
func renderWaitingStatus(verb string, frameIdx int, elapsed time.Duration) string {
	glyph := (&SpinnerState{Idx: frameIdx}).glyph()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(ColorUser).Bold(true).Render(glyph),
		" ",
		lipgloss.NewStyle().Foreground(ColorPrimary).Italic(true).Render(verb+"..."),
		" ",
		lipgloss.NewStyle().Foreground(ColorTextMuted).Render("(waiting for the server • "+formatElapsed(elapsed)+")"),
	)
}

// formatElapsed renders whole seconds: "12s", "1m30s".
func formatElapsed(d time.Duration) string {
	return d.Truncate(time.Second).String()
}

// SetWaiting sets the waiting state. Turning it on restarts the stopwatch.
func (c *Chat) SetWaiting(waiting bool) {
	c.SetWaitingWithStart(waiting, time.Now())
}

// SetWaitingWithStart sets the waiting state with the time the request went
// out, so a conversation that is switched back to keeps its stopwatch.
func (c *Chat) SetWaitingWithStart(waiting bool, startTime time.Time) {
	if waiting && c.waiting && c.spinner.StartTime.Equal(startTime) {
		return
	}
	c.waiting = waiting
	if waiting {
		*c.spinner = SpinnerState{Verb: waitingVerb(startTime), StartTime: startTime}
	}
	c.updateContent()
}

func (c *Chat) IsWaiting() bool {
	return c.waiting
}

func (c *Chat) handleStopwatchTick() tea.Cmd {
	if !c.waiting {
		return nil
	}

	c.spinner.advance()
	c.updateContent()
	return StopwatchTick()
}

// handleSelectionFlashTick drops the selection once the copy flash has shown.
func (c *Chat) handleSelectionFlashTick() tea.Cmd {
	if c.selection.FlashFrame < 0 {
		return nil
	}
	c.selection.Clear()
	c.selection.FlashFrame = -1
	return nil
}
