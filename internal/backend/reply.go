package backend

import (
	"net/url"
	"strings"
	"time"

	"github.com/cazelabs/cazechat/internal/conversation"
)

// DefaultHost is the origin that relative file URLs resolve against.
const DefaultHost = "http://localhost:8000"

// wireMessage is one history entry as the backend encodes it.
type wireMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Text      string `json:"text,omitempty"`
	FileURL   string `json:"file_url,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Reply is the message the backend produced for a submission.
type Reply struct {
	ID        string
	Role      conversation.Role
	Text      string
	FileURL   string
	Timestamp time.Time
}

func (w wireMessage) reply() Reply {
	return Reply{
		ID:        w.ID,
		Role:      conversation.ParseRole(w.Role),
		Text:      w.Text,
		FileURL:   w.FileURL,
		Timestamp: parseTimestamp(w.Timestamp),
	}
}

// Message converts the reply into an assistant message for the store. The
// role on the wire is ignored: whatever the backend answered with is the
// assistant's turn.
func (r Reply) Message() conversation.Message {
	return conversation.NewAssistantMessage(r.ID, r.Text, conversation.RemoteFile(r.FileURL), r.Timestamp)
}

// timestampLayouts are tried in order. The reference backend emits ISO 8601
// without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// parseTimestamp returns the zero time for anything it cannot read; the
// message constructor then stamps it with the receive time.
func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FileURL resolves a server-provided file path against host. Absolute URLs
// are returned unchanged.
func FileURL(host, path string) string {
	if path == "" {
		return ""
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	if host == "" {
		host = DefaultHost
	}
	return strings.TrimRight(host, "/") + "/" + strings.TrimLeft(path, "/")
}
