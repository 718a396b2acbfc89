package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

const headerTitle = " cazechat"

// Header represents the top header bar
type Header struct {
	width            int
	conversationName string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetConversationName sets the active conversation name shown on the right
func (h *Header) SetConversationName(name string) {
	h.conversationName = name
}

// View renders the header
func (h *Header) View() string {
	var rightText string
	if h.conversationName != "" {
		room := h.width - runewidth.StringWidth(headerTitle) - 2
		name := h.conversationName
		if room > 0 && runewidth.StringWidth(name) > room {
			name = runewidth.Truncate(name, room, "…")
		}
		rightText = name + " "
	}

	paddingLen := h.width - runewidth.StringWidth(headerTitle) - runewidth.StringWidth(rightText)
	if paddingLen < 0 {
		paddingLen = 0
	}

	return h.renderGradient(headerTitle + strings.Repeat(" ", paddingLen) + rightText)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content with a theme-aware gradient background
// fading from the primary color into the main background.
func (h *Header) renderGradient(content string) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	titleLen := len([]rune(headerTitle))
	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < titleLen)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
