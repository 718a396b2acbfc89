// Text selection in the chat transcript.
//
// Mouse events reach Chat in panel coordinates (0,0 = top-left of the chat
// panel, after the app subtracts the sidebar width and header height). Chat
// subtracts one more cell for the panel border, so everything stored in
// TextSelection is relative to the viewport's content area.
//
// Columns are terminal cells, not bytes: replies routinely contain bullets,
// accented text and wide characters, so every slice of a rendered line goes
// through ansi.Cut and every width through ansi.StringWidth.

package ui

import (
	"image/color"
	"strings"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/cazelabs/cazechat/internal/clipboard"
	"github.com/cazelabs/cazechat/internal/logger"
)

// SelectionCopiedMsg reports a copy of selected transcript text. Err is set
// when the native clipboard refused the text; the terminal (OSC 52) copy has
// been attempted either way.
type SelectionCopiedMsg struct {
	Chars int
	Err   error
}

const (
	multiClickWindow = 500 * time.Millisecond
	clickTolerance   = 2 // cells
)

// StartSelection begins a text selection at the given coordinates
func (c *Chat) StartSelection(col, line int) {
	c.selection.StartCol, c.selection.StartLine = col, line
	c.selection.EndCol, c.selection.EndLine = col, line
	c.selection.Active = true
}

// EndSelection moves the end of an in-progress drag
func (c *Chat) EndSelection(col, line int) {
	if !c.selection.Active {
		return
	}
	c.selection.EndCol, c.selection.EndLine = col, line
}

// SelectionStop ends the drag but keeps the selection visible
func (c *Chat) SelectionStop() {
	c.selection.Active = false
}

// SelectionClear clears the selection entirely
func (c *Chat) SelectionClear() {
	c.selection.Clear()
}

// HasTextSelection returns true if there is an active or completed selection
func (c *Chat) HasTextSelection() bool {
	return c.selection.HasSelection()
}

// handleMouseClick starts a drag on a single click. A double click selects
// the run of non-blank text under the cursor (a word, a file link or a URL);
// a triple click selects the paragraph. Both copy immediately.
func (c *Chat) handleMouseClick(x, y int) tea.Cmd {
	switch c.countClick(x, y, time.Now()) {
	case 2:
		c.SelectWord(x, y)
		return c.CopySelectedText()
	case 3:
		c.SelectParagraph(x, y)
		c.selection.ClickCount = 0
		return c.CopySelectedText()
	default:
		c.StartSelection(x, y)
		return nil
	}
}

// countClick records a click and returns how many clicks in a row landed on
// the same spot within multiClickWindow.
func (c *Chat) countClick(x, y int, now time.Time) int {
	s := c.selection
	if now.Sub(s.LastClickTime) <= multiClickWindow &&
		abs(x-s.LastClickX) <= clickTolerance &&
		abs(y-s.LastClickY) <= clickTolerance {
		s.ClickCount++
	} else {
		s.ClickCount = 1
	}
	s.LastClickTime, s.LastClickX, s.LastClickY = now, x, y
	return s.ClickCount
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// visibleLines returns the viewport's current rows with styling removed.
func (c *Chat) visibleLines() []string {
	return strings.Split(ansi.Strip(c.viewport.View()), "\n")
}

// cellSpan is one grapheme cluster of a line and the cells it covers.
type cellSpan struct {
	start, end int
	blank      bool
}

func lineSpans(line string) []cellSpan {
	var spans []cellSpan
	col := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		r := g.Runes()
		spans = append(spans, cellSpan{start: col, end: col + w, blank: len(r) > 0 && unicode.IsSpace(r[0])})
		col += w
	}
	return spans
}

// SelectWord selects the run of non-blank cells around (col, line). Clicking
// on blank space selects nothing.
func (c *Chat) SelectWord(col, line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) || col < 0 {
		return
	}

	spans := lineSpans(lines[line])
	hit := -1
	for i, sp := range spans {
		if col >= sp.start && col < sp.end {
			hit = i
			break
		}
	}
	if hit < 0 || spans[hit].blank {
		return
	}

	first, last := hit, hit
	for first > 0 && !spans[first-1].blank {
		first--
	}
	for last < len(spans)-1 && !spans[last+1].blank {
		last++
	}

	c.selection.StartCol, c.selection.StartLine = spans[first].start, line
	c.selection.EndCol, c.selection.EndLine = spans[last].end, line
	c.selection.Active = false
}

// SelectParagraph selects the block of non-empty rows around line.
func (c *Chat) SelectParagraph(col, line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}

	blank := func(i int) bool { return strings.TrimSpace(lines[i]) == "" }
	first, last := line, line
	for first > 0 && !blank(first-1) {
		first--
	}
	for last < len(lines)-1 && !blank(last+1) {
		last++
	}

	c.selection.StartCol, c.selection.StartLine = 0, first
	c.selection.EndCol, c.selection.EndLine = ansi.StringWidth(lines[last]), last
	c.selection.Active = false
}

// selectionArea returns the selection with its start before its end in
// reading order, whichever direction the user dragged.
func (c *Chat) selectionArea() (startCol, startLine, endCol, endLine int) {
	s := c.selection
	startCol, startLine, endCol, endLine = s.StartCol, s.StartLine, s.EndCol, s.EndLine
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// rowSpan returns the selected cell range [from, to) of row y, where width is
// the row's full width.
func (c *Chat) rowSpan(y, width int) (from, to int) {
	startCol, startLine, endCol, endLine := c.selectionArea()
	from, to = 0, width
	if y == startLine {
		from = startCol
	}
	if y == endLine {
		to = endCol
	}
	from = max(from, 0)
	to = min(to, width)
	if from > to {
		from = to
	}
	return from, to
}

// GetSelectedText returns the selected transcript text, trimmed.
func (c *Chat) GetSelectedText() string {
	if !c.HasTextSelection() {
		return ""
	}

	lines := c.visibleLines()
	_, startLine, _, endLine := c.selectionArea()

	var rows []string
	for y := max(startLine, 0); y <= endLine && y < len(lines); y++ {
		from, to := c.rowSpan(y, ansi.StringWidth(lines[y]))
		rows = append(rows, strings.TrimRight(ansi.Cut(lines[y], from, to), " "))
	}
	return strings.TrimSpace(strings.Join(rows, "\n"))
}

// CopySelectedText copies the selection through the terminal and the native
// clipboard and starts the copy flash.
func (c *Chat) CopySelectedText() tea.Cmd {
	text := c.GetSelectedText()
	if text == "" {
		return nil
	}

	c.selection.FlashFrame = 0
	chars := uniseg.GraphemeClusterCount(text)

	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg {
			err := clipboard.WriteText(text)
			if err != nil {
				logger.WithComponent("chat").Debug("native clipboard unavailable", "error", err)
			}
			return SelectionCopiedMsg{Chars: chars, Err: err}
		},
		SelectionFlashTick(),
	)
}

// selectionView paints the selection over the rendered viewport
func (c *Chat) selectionView(view string) string {
	if !c.HasTextSelection() {
		return view
	}

	width, height := c.viewport.Width(), c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	style := TextSelectionStyle
	if c.selection.FlashFrame == 0 {
		style = TextSelectionFlashStyle
	}
	var bg, fg color.Color = style.GetBackground(), style.GetForeground()

	_, startLine, _, endLine := c.selectionArea()
	for y := max(startLine, 0); y <= endLine && y < height; y++ {
		from, to := c.rowSpan(y, width)
		for x := from; x < to; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = bg
			cell.Style.Fg = fg
			scr.SetCell(x, y, cell)
		}
	}

	return scr.Render()
}
