package ui

import (
	"fmt"
	"regexp"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/conversation"
)

// Replies use a small markdown subset: headings up to level four, lists,
// quotes, rules, fenced code and inline bold, italic, code and links.
var (
	headingLine = regexp.MustCompile(`^(#{1,4}) (.+)$`)
	bulletLine  = regexp.MustCompile(`^[-*] (.*)$`)
	orderedLine = regexp.MustCompile(`^(\d{1,2})\. (.*)$`)
	quoteLine   = regexp.MustCompile(`^> (.*)$`)
	ruleLine    = regexp.MustCompile(`^(?:---|\*\*\*|___)$`)

	inlineCode = regexp.MustCompile("`([^`]+)`")
	boldSpan   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicSpan = regexp.MustCompile(`(^|[^a-zA-Z0-9_])_([^_]+)_([^a-zA-Z0-9_]|$)`)
	linkSpan   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
)

const ruleWidth = 32

// highlightCode colors a fenced block with chroma in the theme's code style.
// Without a usable language hint the lexer is guessed from the code.
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if language == "" || lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	tokens, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return code
	}
	var out strings.Builder
	if err := formatters.TTY256.Format(&out, styles.Get(chromaStyleName()), tokens); err != nil {
		return code
	}
	return strings.TrimRight(out.String(), "\n")
}

// renderInlineMarkdown styles the inline spans of one line. Code spans are
// set aside first so nothing inside them is reinterpreted.
func renderInlineMarkdown(line string) string {
	var code []string
	line = inlineCode.ReplaceAllStringFunc(line, func(m string) string {
		code = append(code, MarkdownInlineCodeStyle.Render(inlineCode.FindStringSubmatch(m)[1]))
		return fmt.Sprintf("\x00%d\x00", len(code)-1)
	})

	line = boldSpan.ReplaceAllStringFunc(line, func(m string) string {
		return MarkdownBoldStyle.Render(boldSpan.FindStringSubmatch(m)[1])
	})
	// Underscores inside identifiers such as foo_bar_baz stay literal.
	line = italicSpan.ReplaceAllStringFunc(line, func(m string) string {
		g := italicSpan.FindStringSubmatch(m)
		return g[1] + MarkdownItalicStyle.Render(g[2]) + g[3]
	})
	line = linkSpan.ReplaceAllStringFunc(line, func(m string) string {
		g := linkSpan.FindStringSubmatch(m)
		return MarkdownLinkStyle.Render(g[1]) + " (" + MarkdownLinkStyle.Render(g[2]) + ")"
	})

	for i, c := range code {
		line = strings.Replace(line, fmt.Sprintf("\x00%d\x00", i), c, 1)
	}
	return line
}

// wrapText wraps to width, keeping ANSI sequences intact and breaking words
// longer than the width.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return ansi.Wrap(text, width, "")
}

// listItem renders a list entry with a hanging indent under its marker.
func listItem(marker, content string, width int) string {
	const lead = "  "
	indent := strings.Repeat(" ", len(lead)+lipgloss.Width(marker)+1)
	body := wrapText(renderInlineMarkdown(content), width-len(indent))
	body = strings.ReplaceAll(body, "\n", "\n"+indent)
	return lead + MarkdownListBulletStyle.Render(marker) + " " + body
}

func headingStyle(level int) lipgloss.Style {
	switch level {
	case 1:
		return MarkdownH1Style
	case 2:
		return MarkdownH2Style
	case 3:
		return MarkdownH3Style
	default:
		return MarkdownH4Style
	}
}

// renderMarkdownLine renders one line outside a code fence. Headings are
// never wrapped.
func renderMarkdownLine(line string, width int) string {
	trimmed := strings.TrimSpace(line)

	if g := headingLine.FindStringSubmatch(trimmed); g != nil {
		return headingStyle(len(g[1])).Render(g[2])
	}
	if ruleLine.MatchString(trimmed) {
		return MarkdownHRStyle.Render(strings.Repeat("─", ruleWidth))
	}
	if g := quoteLine.FindStringSubmatch(trimmed); g != nil {
		return MarkdownBlockquoteStyle.Render(wrapText(renderInlineMarkdown(g[1]), width-4))
	}
	if g := bulletLine.FindStringSubmatch(trimmed); g != nil {
		return listItem("•", g[1], width)
	}
	if g := orderedLine.FindStringSubmatch(trimmed); g != nil {
		return listItem(g[1]+".", g[2], width)
	}
	return wrapText(renderInlineMarkdown(line), width)
}

// renderMarkdown renders a reply. Fenced code is highlighted and set off by a
// blank line; an unterminated fence runs to the end of the reply.
func renderMarkdown(content string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out, code strings.Builder
	inFence, lang := false, ""
	flush := func() {
		if out.Len() > 0 {
			out.WriteString("\n")
		}
		out.WriteString(highlightCode(code.String(), lang))
		out.WriteString("\n")
		code.Reset()
	}

	for _, line := range strings.Split(content, "\n") {
		if rest, ok := strings.CutPrefix(line, "```"); ok {
			if inFence {
				flush()
			} else {
				lang = strings.TrimSpace(rest)
			}
			inFence = !inFence
			continue
		}
		if inFence {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		out.WriteString(renderMarkdownLine(line, width))
		out.WriteString("\n")
	}
	if inFence {
		flush()
	}

	return strings.TrimRight(out.String(), "\n")
}

// hyperlink wraps text in an OSC 8 hyperlink to url. Style text before
// wrapping it: lipgloss splits escape sequences it is asked to style.
func hyperlink(text, url string) string {
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}

// renderFileRef renders a message's file. Local files show their name,
// server files link to the backend host.
func renderFileRef(file *conversation.FileRef, backendHost string) string {
	if file == nil {
		return ""
	}
	if file.IsRemote() {
		url := backend.FileURL(backendHost, file.URL)
		return ChatFileStyle.Render("📎 ") + hyperlink(MarkdownLinkStyle.Render(url), url)
	}
	label := file.Name
	if file.MIMEType != "" {
		label += " (" + file.MIMEType + ")"
	}
	return ChatFileStyle.Render("📎 " + label)
}

// renderMessage renders one message: role label, timestamp, body and file.
func renderMessage(msg conversation.Message, width int, backendHost string) string {
	var sb strings.Builder

	roleStyle := ChatUserStyle
	roleName := "You"
	if msg.Role == conversation.RoleAssistant {
		roleStyle = ChatAssistantStyle
		roleName = AssistantName
	}
	sb.WriteString(roleStyle.Render(roleName + ":"))
	if !msg.Timestamp.IsZero() {
		sb.WriteString(" ")
		sb.WriteString(ChatTimestampStyle.Render(msg.Timestamp.Local().Format("15:04")))
	}
	sb.WriteString("\n")

	text := strings.TrimSpace(msg.Text)
	switch {
	case msg.Failed:
		sb.WriteString(StatusErrorStyle.Render(wrapText(text, width)))
	case msg.Role == conversation.RoleUser:
		sb.WriteString(ChatMessageStyle.Render(wrapText(text, width)))
	default:
		sb.WriteString(renderMarkdown(text, width))
	}

	if msg.File != nil {
		if text != "" {
			sb.WriteString("\n")
		}
		sb.WriteString(renderFileRef(msg.File, backendHost))
	}

	return sb.String()
}

// renderWelcomeMessage renders the view shown for a conversation without messages
func renderWelcomeMessage() string {
	titleStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(ColorTextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	bullet := MarkdownListBulletStyle.Render("•")

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Welcome to the Caze Labs assistant"))
	sb.WriteString("\n\n")
	sb.WriteString(msgStyle.Render("I can help you with:"))
	sb.WriteString("\n")
	for _, item := range []string{
		"Recommending LLM models for your use case",
		"Analyzing documents (PDF, Word, PowerPoint, text)",
		"Describing and analyzing images",
		"General questions",
	} {
		sb.WriteString("  " + bullet + " " + msgStyle.Render(item) + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(msgStyle.Render("Type a message and press "))
	sb.WriteString(keyStyle.Render("enter"))
	sb.WriteString(msgStyle.Render(", or attach a file with "))
	sb.WriteString(keyStyle.Render("ctrl+o"))
	sb.WriteString(msgStyle.Render("."))
	return sb.String()
}
