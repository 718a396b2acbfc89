package stubserver

import (
	"fmt"
	"strings"
	"unicode"
)

// Upload describes a stored file for reply generation.
type Upload struct {
	Name     string
	MIMEType string
	Size     int64
}

const fallbackReply = "I'm here to help! Feel free to ask me anything."

const identityReply = `Hello! I'm the Caze Labs assistant running in development mode. I can help you with:
• **Finding AI Models**
• **Document Analysis**
• **Image Processing**
• **General Questions**
What would you like to explore?`

var cannedReplies = []struct {
	words []string
	reply string
}{
	{[]string{"hi", "hello", "hey"}, "Hello! How can I help you today?"},
	{[]string{"thank", "thanks"}, "You're very welcome! Is there anything else I can help with?"},
	{[]string{"bye", "goodbye"}, "Goodbye! Have a great day."},
}

// Reply produces the deterministic answer to prompt. Uploads take
// precedence over the text.
func Reply(prompt string, upload *Upload) string {
	if upload != nil {
		return uploadReply(prompt, upload)
	}

	lower := strings.ToLower(strings.TrimSpace(prompt))
	if lower == "" {
		return fallbackReply
	}
	if strings.Contains(lower, "who are you") || strings.Contains(lower, "what are you") {
		return identityReply
	}

	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, c := range cannedReplies {
		if containsAny(words, c.words) {
			return c.reply
		}
	}
	return "You said: " + strings.TrimSpace(prompt)
}

func uploadReply(prompt string, u *Upload) string {
	kind := "document"
	if strings.HasPrefix(u.MIMEType, "image/") {
		kind = "image"
	}
	reply := fmt.Sprintf("I received the %s %q (%s, %s).", kind, u.Name, u.MIMEType, humanSize(u.Size))
	if p := strings.TrimSpace(prompt); p != "" {
		reply += fmt.Sprintf("\n\nYou asked: %s", p)
	}
	return reply
}

func containsAny(words, targets []string) bool {
	for _, w := range words {
		for _, t := range targets {
			if w == t {
				return true
			}
		}
	}
	return false
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
