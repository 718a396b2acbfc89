// Package composer holds the prompt being written and its optional
// attachment until it is submitted.
package composer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/errors"
)

// MaxAttachmentSize is the largest file that can be attached.
const MaxAttachmentSize = 20 << 20

// Attachment is a file chosen by the user, held in memory until it is sent.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// LoadFile reads the file at path into an Attachment.
func LoadFile(path string) (*Attachment, error) {
	path = expandHome(strings.TrimSpace(path))
	if path == "" {
		return nil, errors.AttachmentInvalid("file", "no path given")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.AttachmentReadFailed(path, err)
	}
	if info.IsDir() {
		return nil, errors.AttachmentInvalid(filepath.Base(path), "is a directory")
	}
	if info.Size() > MaxAttachmentSize {
		return nil, errors.AttachmentInvalid(filepath.Base(path), tooLarge(info.Size()))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AttachmentReadFailed(path, err)
	}
	return FromBytes(filepath.Base(path), data)
}

// FromBytes wraps in-memory data, such as a pasted image, as an Attachment.
// The MIME type is detected from the content.
func FromBytes(name string, data []byte) (*Attachment, error) {
	if name == "" {
		return nil, errors.AttachmentInvalid("file", "missing file name")
	}
	if len(data) > MaxAttachmentSize {
		return nil, errors.AttachmentInvalid(name, tooLarge(int64(len(data))))
	}
	return &Attachment{
		Name:     name,
		MIMEType: mimetype.Detect(data).String(),
		Data:     data,
	}, nil
}

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int {
	return len(a.Data)
}

// Ref returns the file metadata stored on the user's message.
func (a *Attachment) Ref() *conversation.FileRef {
	if a == nil {
		return nil
	}
	return conversation.LocalFile(a.Name, a.MIMEType)
}

// Label is the short text shown on the attachment chip.
func (a *Attachment) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, HumanSize(a.Size()))
}

// HumanSize formats n bytes for display.
func HumanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func tooLarge(size int64) string {
	return fmt.Sprintf("file is %s, limit is %s", HumanSize(int(size)), HumanSize(MaxAttachmentSize))
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// Composer is the draft prompt: text plus at most one attachment.
type Composer struct {
	text       string
	attachment *Attachment
}

// New returns an empty composer.
func New() *Composer {
	return &Composer{}
}

// SetText replaces the draft text.
func (c *Composer) SetText(text string) {
	c.text = text
}

// Text returns the draft text.
func (c *Composer) Text() string {
	return c.text
}

// Attach sets the attachment, replacing any previous one.
func (c *Composer) Attach(a *Attachment) {
	c.attachment = a
}

// Detach removes the attachment.
func (c *Composer) Detach() {
	c.attachment = nil
}

// Attachment returns the current attachment, or nil.
func (c *Composer) Attachment() *Attachment {
	return c.attachment
}

// HasAttachment reports whether a file is attached.
func (c *Composer) HasAttachment() bool {
	return c.attachment != nil
}

// IsEmpty reports whether there is nothing to submit: blank text and no file.
func (c *Composer) IsEmpty() bool {
	return strings.TrimSpace(c.text) == "" && c.attachment == nil
}

// Draft is an immutable copy of the composer contents.
type Draft struct {
	Text       string
	Attachment *Attachment
}

// Snapshot copies the current contents.
func (c *Composer) Snapshot() Draft {
	return Draft{Text: c.text, Attachment: c.attachment}
}

// Reset clears both text and attachment.
func (c *Composer) Reset() {
	c.text = ""
	c.attachment = nil
}
