package conversation

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultName is the name of a conversation that has no user prompt yet.
const DefaultName = "New Chat"

// MaxTitleLength is the number of characters kept from the first prompt.
const MaxTitleLength = 25

// titleEllipsis is appended when the prompt was cut.
const titleEllipsis = "..."

// TitleFromPrompt derives a conversation name from its first prompt: the
// prompt itself when it is at most MaxTitleLength characters, otherwise its
// first MaxTitleLength characters followed by "...". Characters are
// grapheme clusters so emoji and combining marks are never split. A blank
// prompt yields DefaultName.
func TitleFromPrompt(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return DefaultName
	}

	var b strings.Builder
	n := 0
	g := uniseg.NewGraphemes(prompt)
	for g.Next() {
		if n == MaxTitleLength {
			return b.String() + titleEllipsis
		}
		b.WriteString(g.Str())
		n++
	}
	return prompt
}
