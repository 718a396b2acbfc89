package conversation

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	default:
		return "unknown"
	}
}

// ParseRole maps a role name from the backend to a Role. The backend calls
// its replies "bot"; anything that isn't a user is treated as the assistant.
func ParseRole(s string) Role {
	if strings.EqualFold(strings.TrimSpace(s), "user") {
		return RoleUser
	}
	return RoleAssistant
}

// FileRef points at the file attached to a message. Exactly one of the two
// forms is set: Name/MIMEType for a file the user attached locally, URL for a
// file the server returned.
type FileRef struct {
	Name     string
	MIMEType string
	URL      string
}

// IsRemote reports whether the file lives on the backend.
func (f FileRef) IsRemote() bool {
	return f.URL != ""
}

// LocalFile builds a reference to a user-attached file.
func LocalFile(name, mimeType string) *FileRef {
	return &FileRef{Name: name, MIMEType: mimeType}
}

// RemoteFile builds a reference to a server-provided file path.
func RemoteFile(url string) *FileRef {
	if url == "" {
		return nil
	}
	return &FileRef{URL: url}
}

// Message is a single entry in a conversation.
type Message struct {
	ID        string
	Role      Role
	Text      string
	File      *FileRef
	Timestamp time.Time

	// Failed marks the message recorded in place of a reply that never came.
	Failed bool
}

// NewUserMessage creates a user-authored message with a fresh ID.
func NewUserMessage(text string, file *FileRef) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		File:      file,
		Timestamp: time.Now(),
	}
}

// NewAssistantMessage creates an assistant-authored message. An empty id gets
// a fresh one; a zero timestamp becomes now.
func NewAssistantMessage(id, text string, file *FileRef, ts time.Time) Message {
	if id == "" {
		id = uuid.NewString()
	}
	if ts.IsZero() {
		ts = time.Now()
	}
	return Message{
		ID:        id,
		Role:      RoleAssistant,
		Text:      text,
		File:      file,
		Timestamp: ts,
	}
}

// clone returns a copy that shares nothing mutable with m.
func (m Message) clone() Message {
	if m.File != nil {
		f := *m.File
		m.File = &f
	}
	return m
}
