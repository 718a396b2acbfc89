package stubserver

import (
	"strings"
	"testing"
)

func TestReply(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"greeting", "Hi there", "Hello! How can I help you today?"},
		{"greeting punctuation", "hello!", "Hello! How can I help you today?"},
		{"thanks", "thank you", "You're very welcome! Is there anything else I can help with?"},
		{"goodbye", "ok bye", "Goodbye! Have a great day."},
		{"greeting needs a whole word", "this is odd", "You said: this is odd"},
		{"empty", "   ", fallbackReply},
		{"echo", "tell me a joke", "You said: tell me a joke"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reply(tt.prompt, nil); got != tt.want {
				t.Errorf("Reply(%q) = %q, want %q", tt.prompt, got, tt.want)
			}
		})
	}
}

func TestReply_Identity(t *testing.T) {
	got := Reply("Who are you?", nil)
	if got != identityReply {
		t.Errorf("Reply = %q, want the identity blurb", got)
	}
}

func TestReply_Upload(t *testing.T) {
	got := Reply("", &Upload{Name: "cat.jpg", MIMEType: "image/jpeg", Size: 2048})
	if !strings.Contains(got, `image "cat.jpg"`) || !strings.Contains(got, "2.0 KB") {
		t.Errorf("Reply = %q", got)
	}
	if strings.Contains(got, "You asked") {
		t.Error("empty prompt should not be echoed")
	}

	got = Reply("hi", &Upload{Name: "a.pdf", MIMEType: "application/pdf", Size: 10})
	if !strings.Contains(got, "document") || !strings.Contains(got, "You asked: hi") {
		t.Errorf("Reply = %q", got)
	}
}
