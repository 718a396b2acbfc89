package ui

import (
	"regexp"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if header.conversationName != "" {
		t.Error("Expected empty conversation name initially")
	}
}

func TestHeader_SetWidth(t *testing.T) {
	header := NewHeader()

	header.SetWidth(120)

	if header.width != 120 {
		t.Errorf("Expected width 120, got %d", header.width)
	}
}

func TestHeader_SetConversationName(t *testing.T) {
	header := NewHeader()

	header.SetConversationName("Recommend a model for sum...")

	if header.conversationName != "Recommend a model for sum..." {
		t.Errorf("Expected conversation name to be stored, got %q", header.conversationName)
	}
}

func TestHeader_View_NoConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(80)

	view := stripANSI(header.View())

	if !strings.Contains(view, "cazechat") {
		t.Errorf("Header should contain 'cazechat' title, got: %q", view)
	}
	if w := lipgloss.Width(view); w != 80 {
		t.Errorf("Header width should be 80, got %d", w)
	}
}

func TestHeader_View_WithConversation(t *testing.T) {
	header := NewHeader()
	header.SetWidth(120)
	header.SetConversationName("New Chat")

	view := stripANSI(header.View())

	if !strings.Contains(view, "cazechat") {
		t.Error("Header should contain title")
	}
	if !strings.HasSuffix(view, "New Chat ") {
		t.Errorf("Conversation name should be right-aligned, got: %q", view)
	}
}

func TestHeader_View_TruncatesLongName(t *testing.T) {
	header := NewHeader()
	header.SetWidth(30)
	header.SetConversationName(strings.Repeat("very long name ", 5))

	view := stripANSI(header.View())

	if w := lipgloss.Width(view); w > 30 {
		t.Errorf("Header should not exceed its width, got %d", w)
	}
	if !strings.Contains(view, "…") {
		t.Errorf("Long names should be truncated with an ellipsis, got: %q", view)
	}
}

func TestHeader_View_UnicodeConversationName(t *testing.T) {
	tests := []struct {
		name  string
		width int
		title string
	}{
		{"japanese", 80, "テスト"},
		{"chinese", 80, "功能分支"},
		{"mixed", 100, "café-résumé review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewHeader()
			header.SetWidth(tt.width)
			header.SetConversationName(tt.title)

			view := stripANSI(header.View())

			if !strings.Contains(view, tt.title) {
				t.Errorf("Header should contain %q, got: %q", tt.title, view)
			}
			if w := lipgloss.Width(view); w != tt.width {
				t.Errorf("Header width should be %d, got %d", tt.width, w)
			}
		})
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#7C3AED")
	if r != 0x7C || g != 0x3A || b != 0xED {
		t.Errorf("parseHexColor = (%d, %d, %d)", r, g, b)
	}

	r, g, b = parseHexColor("not-a-color")
	if r != 0 || g != 0 || b != 0 {
		t.Error("invalid input should parse to black")
	}
}
