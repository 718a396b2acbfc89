package ui

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/cazelabs/cazechat/internal/conversation"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		lines int
	}{
		{"short text within width", "hello world", 20, 1},
		{"long text needs wrap", "this is a longer text that needs wrapping", 20, 3},
		{"long word is broken", strings.Repeat("x", 45), 20, 3},
		{"empty string", "", 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wrapText(tt.text, tt.width)
			lines := strings.Split(result, "\n")
			if len(lines) != tt.lines {
				t.Errorf("wrapText(%q, %d) gave %d lines, want %d: %q", tt.text, tt.width, len(lines), tt.lines, result)
			}
			for _, line := range lines {
				if w := lipgloss.Width(line); w > tt.width {
					t.Errorf("line %q is %d wide, limit %d", line, w, tt.width)
				}
			}
			if strings.Join(strings.Fields(result), " ") != strings.Join(strings.Fields(tt.text), " ") && !strings.HasPrefix(tt.name, "long word") {
				t.Errorf("wrapText should keep the words, got %q", result)
			}
		})
	}

	for _, width := range []int{0, -1} {
		if got := wrapText("hello world", width); got != "hello world" {
			t.Errorf("wrapText with width %d = %q, want original", width, got)
		}
	}
}

func TestHighlightCode(t *testing.T) {
	code := "func main() {}"

	for _, lang := range []string{"go", "", "not-a-language"} {
		out := stripANSI(highlightCode(code, lang))
		if out != code {
			t.Errorf("highlightCode(%q) should keep the text, got %q", lang, out)
		}
	}
}

func TestHighlightCode_FollowsTheme(t *testing.T) {
	defer SetTheme(DefaultTheme)

	for _, name := range ThemeNames() {
		SetTheme(name)
		if chromaStyleName() == "" {
			t.Errorf("theme %s has no code style", name)
		}
		if out := highlightCode("x = 1", "python"); !strings.Contains(stripANSI(out), "x = 1") {
			t.Errorf("theme %s: highlighted output lost the code: %q", name, out)
		}
	}
}

func TestRenderMarkdownLine(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"# Header One", "Header One"},
		{"## Header Two", "Header Two"},
		{"### Header Three", "Header Three"},
		{"#### Header Four", "Header Four"},
		{"##### Too deep", "##### Too deep"},
		{"---", strings.Repeat("─", ruleWidth)},
		{"***", strings.Repeat("─", ruleWidth)},
		{"___", strings.Repeat("─", ruleWidth)},
		{"> A quote", "A quote"},
		{"- Dash item", "  • Dash item"},
		{"* Star item", "  • Star item"},
		{"12. Twelfth", "  12. Twelfth"},
		{"1.5 is a number", "1.5 is a number"},
		{"Plain text", "Plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := stripANSI(renderMarkdownLine(tt.line, 80))
			if !strings.Contains(got, tt.want) {
				t.Errorf("renderMarkdownLine(%q) = %q, want it to contain %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRenderMarkdownLine_HangingIndent(t *testing.T) {
	got := stripANSI(renderMarkdownLine("- "+strings.Repeat("word ", 10), 24))
	lines := strings.Split(got, "\n")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", got)
	}
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "    ") || strings.Contains(l, "•") {
			t.Errorf("continuation %q should be indented under the text", l)
		}
	}
}

func TestRenderInlineMarkdown(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"This is **bold** text", "This is bold text"},
		{"Use `code` here", "Use code here"},
		{"An _italic_ word", "An italic word"},
		{"keep snake_case_names", "keep snake_case_names"},
		{"`**not bold**`", "**not bold**"},
		{"Click [here](https://example.com)", "Click here (https://example.com)"},
		{"Just plain text", "Just plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := stripANSI(renderInlineMarkdown(tt.line)); got != tt.want {
				t.Errorf("renderInlineMarkdown(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    []string
	}{
		{"text", "Hello world", 80, []string{"Hello world"}},
		{"fence", "```go\nfunc main() {}\n```", 80, []string{"func main() {}"}},
		{"mixed", "# Title\n\nSome text\n\n```python\nprint('hi')\n```\n\nMore text", 80, []string{"Title", "print('hi')", "More text"}},
		{"zero width", "Test content", 0, []string{"Test content"}},
		{"unclosed fence", "```go\nsome code", 80, []string{"some code"}},
		{"markdown inside a fence", "```\n# not a heading\n```", 80, []string{"# not a heading"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(renderMarkdown(tt.content, tt.width))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderMarkdown(%q) = %q, missing %q", tt.content, got, w)
				}
			}
		})
	}
}

func TestRenderWaitingStatus(t *testing.T) {
	for i := 0; i < len(spinnerFrames)*2; i++ {
		result := stripANSI(renderWaitingStatus("Thinking", i, 12*time.Second))
		if !strings.Contains(result, "Thinking...") {
			t.Errorf("frame %d: status should contain the verb, got %q", i, result)
		}
		if !strings.Contains(result, "12s") {
			t.Errorf("frame %d: status should contain the stopwatch, got %q", i, result)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0s"},
		{1500 * time.Millisecond, "1s"},
		{59 * time.Second, "59s"},
		{90 * time.Second, "1m30s"},
		{10 * time.Minute, "10m0s"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWaitingVerb_StablePerRequest(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	for i := range len(waitingVerbs) * 3 {
		at := start.Add(time.Duration(i) * time.Millisecond)
		verb := waitingVerb(at)
		if verb != waitingVerb(at) {
			t.Fatalf("verb for %v changed between calls", at)
		}
		seen[verb] = true
	}
	if len(seen) != len(waitingVerbs) {
		t.Errorf("saw %d of %d verbs", len(seen), len(waitingVerbs))
	}
}

func TestSpinnerFrames(t *testing.T) {
	for i, f := range spinnerFrames {
		if f.glyph == "" || f.hold < 1 {
			t.Errorf("frame %d = %+v, want a glyph held at least one tick", i, f)
		}
	}
}

func TestChat_NewChat_ShowsWelcome(t *testing.T) {
	chat := NewChat()
	chat.SetSize(80, 30)

	view := stripANSI(chat.View())
	if !strings.Contains(view, "Welcome") {
		t.Errorf("empty conversation should show the welcome view, got:\n%s", view)
	}
	if !strings.Contains(view, "Recommending LLM models") {
		t.Error("welcome view should list what the assistant can do")
	}
	if chat.IsWaiting() || chat.HasAttachment() {
		t.Error("new chat should be idle without an attachment")
	}
}

func TestChat_SetMessages(t *testing.T) {
	chat := NewChat()
	chat.SetSize(100, 30)
	chat.SetBackendHost("http://localhost:8000")

	ts := time.Date(2026, 1, 2, 15, 4, 0, 0, time.Local)
	chat.SetMessages([]conversation.Message{
		conversation.NewUserMessage("summarize this", conversation.LocalFile("report.pdf", "application/pdf")),
		conversation.NewAssistantMessage("1", "Here is **the** summary", conversation.RemoteFile("/uploads/01J_chart.png"), ts),
	})

	view := stripANSI(chat.View())
	for _, want := range []string{"You:", AssistantName + ":", "summarize this", "report.pdf", "the summary", "http://localhost:8000/uploads/01J_chart.png", "15:04"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Welcome") {
		t.Error("welcome view should disappear once messages exist")
	}
	if chat.MessageCount() != 2 {
		t.Errorf("MessageCount() = %d, want 2", chat.MessageCount())
	}
}

func TestRenderMessage_ErrorReply(t *testing.T) {
	msg := conversation.NewAssistantMessage("e", "Error: submission failed: connection refused", nil, time.Time{})
	msg.Failed = true

	out := renderMessage(msg, 80, "")
	if !strings.Contains(stripANSI(out), "Error: submission failed: connection refused") {
		t.Errorf("error reply should be shown verbatim, got %q", out)
	}
	if strings.Contains(stripANSI(out), ":  ") {
		t.Error("zero timestamps should not be rendered")
	}
}

func TestRenderMessage_ReplyStartingWithErrorIsMarkdown(t *testing.T) {
	msg := conversation.NewAssistantMessage("r", "Error: **none** found", nil, time.Time{})

	out := stripANSI(renderMessage(msg, 80, ""))
	if !strings.Contains(out, "Error: none found") {
		t.Errorf("a reply that starts with Error: is still a reply, got %q", out)
	}
}

func TestRenderMessage_UserTextIsNotMarkdown(t *testing.T) {
	msg := conversation.NewUserMessage("# not a header", nil)

	out := stripANSI(renderMessage(msg, 80, ""))
	if !strings.Contains(out, "# not a header") {
		t.Errorf("user text should be shown as typed, got %q", out)
	}
}

func TestRenderFileRef(t *testing.T) {
	if renderFileRef(nil, "http://h") != "" {
		t.Error("nil file should render nothing")
	}

	local := stripANSI(renderFileRef(conversation.LocalFile("photo.png", "image/png"), "http://h"))
	if !strings.Contains(local, "photo.png") || !strings.Contains(local, "image/png") {
		t.Errorf("local file should show name and type, got %q", local)
	}

	remote := renderFileRef(conversation.RemoteFile("/uploads/a.txt"), "http://h:8000")
	if got := ansi.Strip(remote); got != "📎 http://h:8000/uploads/a.txt" {
		t.Errorf("remote file should show the backend URL, got %q", got)
	}
	if !strings.Contains(remote, ansi.SetHyperlink("http://h:8000/uploads/a.txt")) {
		t.Errorf("remote file should be an intact hyperlink, got %q", remote)
	}
}

func TestChat_Waiting(t *testing.T) {
	chat := NewChat()
	chat.SetSize(80, 30)
	chat.SetMessages([]conversation.Message{conversation.NewUserMessage("hi", nil)})

	chat.SetWaiting(true)
	if !chat.IsWaiting() {
		t.Fatal("expected waiting")
	}
	view := stripANSI(chat.View())
	if !strings.Contains(view, chat.spinner.Verb+"...") {
		t.Errorf("waiting view should show the verb, got:\n%s", view)
	}
	if !strings.Contains(view, "send disabled") {
		t.Error("composer should show that sending is disabled")
	}

	_, cmd := chat.Update(StopwatchTickMsg{})
	if cmd == nil {
		t.Error("stopwatch should keep ticking while waiting")
	}

	chat.SetWaiting(false)
	_, cmd = chat.Update(StopwatchTickMsg{})
	if cmd != nil {
		t.Error("stopwatch should stop when no longer waiting")
	}
}

func TestChat_SetWaitingWithStart_KeepsStopwatch(t *testing.T) {
	chat := NewChat()
	start := time.Now().Add(-90 * time.Second)

	chat.SetWaitingWithStart(true, start)
	verb := chat.spinner.Verb
	chat.SetWaitingWithStart(true, start)

	if !chat.spinner.StartTime.Equal(start) {
		t.Error("start time should be kept")
	}
	if chat.spinner.Verb != verb {
		t.Error("re-applying the same wait should not pick a new verb")
	}

	// Switching to another conversation and back.
	chat.SetWaiting(false)
	chat.SetWaitingWithStart(true, start)
	if chat.spinner.Verb != verb {
		t.Errorf("verb = %q after switching back, want %q", chat.spinner.Verb, verb)
	}
}

func TestChat_Attachment(t *testing.T) {
	chat := NewChat()
	chat.SetSize(80, 30)

	chat.SetAttachment("notes.txt (2 KB)")
	if !chat.HasAttachment() {
		t.Fatal("expected attachment")
	}
	if view := stripANSI(chat.View()); !strings.Contains(view, "notes.txt (2 KB)") {
		t.Errorf("composer should show the attachment chip, got:\n%s", view)
	}

	chat.SetAttachment("")
	if chat.HasAttachment() {
		t.Error("empty label should remove the chip")
	}
}

func TestChat_Input(t *testing.T) {
	chat := NewChat()
	chat.SetSize(80, 30)
	chat.SetFocused(true)

	chat.SetInput("  hello  ")
	if got := chat.GetInput(); got != "hello" {
		t.Errorf("GetInput() = %q, want trimmed", got)
	}

	chat.ClearInput()
	chat.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	chat.InsertNewline()
	chat.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if got := chat.GetInput(); got != "a\nb" {
		t.Errorf("GetInput() = %q, want %q", got, "a\nb")
	}

	chat.ClearInput()
	if chat.GetInput() != "" {
		t.Error("ClearInput should empty the textarea")
	}
}

func TestChat_UnfocusedIgnoresTyping(t *testing.T) {
	chat := NewChat()
	chat.SetSize(80, 30)

	chat.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if chat.GetInput() != "" {
		t.Error("unfocused chat should not take input")
	}
}

func TestChat_FocusState(t *testing.T) {
	chat := NewChat()

	if chat.IsFocused() {
		t.Error("Should not be focused initially")
	}
	chat.SetFocused(true)
	if !chat.IsFocused() {
		t.Error("Should be focused after SetFocused(true)")
	}
	chat.SetFocused(false)
	if chat.IsFocused() {
		t.Error("Should not be focused after SetFocused(false)")
	}
}

func TestChat_SetSize(t *testing.T) {
	chat := NewChat()
	chat.SetSize(100, 40)

	if chat.width != 100 || chat.height != 40 {
		t.Errorf("size = %dx%d, want 100x40", chat.width, chat.height)
	}

	view := chat.View()
	if h := lipgloss.Height(view); h < InputTotalHeight || h > 40+2 {
		t.Errorf("view height = %d, want about 40", h)
	}
	for i, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > 100 {
			t.Errorf("line %d is %d wide, want <= 100", i, w)
		}
	}
}
