// Package errors provides structured error types for cazechat.
// These errors record which operation failed and what category of failure it
// was, so callers can branch on Kind instead of matching strings.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindServer
	KindDecode
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindServer:
		return "server error"
	case KindDecode:
		return "decode error"
	case KindConfig:
		return "configuration error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for cazechat.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Describe returns the human-readable description of err without Op
// prefixes. Nested *Error values contribute only their context. It is what
// the chat shows the user.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	e, ok := err.(*Error)
	if !ok {
		return err.Error()
	}
	inner := Describe(e.Err)
	if e.Context == "" {
		return inner
	}
	if inner == "" {
		return e.Context
	}
	return fmt.Sprintf("%s: %s", e.Context, inner)
}

// Conversation errors
func ConversationNotFound(id string) error {
	return E(Op("conversation.Get"), KindNotFound, fmt.Sprintf("conversation %s not found", id))
}

// Submission errors
func SubmissionFailed(kind Kind, err error) error {
	return E(Op("backend.Send"), kind, "submission failed", err)
}

func UnexpectedStatus(code int, body string) error {
	if body == "" {
		return E(Op("backend.Send"), KindServer, fmt.Sprintf("server returned status %d", code))
	}
	return E(Op("backend.Send"), KindServer, fmt.Sprintf("server returned status %d: %s", code, body))
}

// Attachment errors
func AttachmentInvalid(name, reason string) error {
	return E(Op("composer.Attach"), KindInvalid, fmt.Sprintf("cannot attach %s: %s", name, reason))
}

func AttachmentReadFailed(path string, err error) error {
	return E(Op("composer.LoadFile"), KindIO, fmt.Sprintf("failed to read %s", path), err)
}

// Config errors
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigSaveFailed(path string, err error) error {
	return E(Op("config.Save"), KindConfig, fmt.Sprintf("failed to save config to %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
