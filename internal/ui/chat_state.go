package ui

import (
	"time"

	"charm.land/bubbles/v2/viewport"
)

// TextSelection tracks mouse-based text selection state in the chat viewport.
// Coordinates are viewport-relative; -1 means unset.
type TextSelection struct {
	StartCol, StartLine int
	EndCol, EndLine     int
	Active              bool // True during drag operation

	// Click tracking for double/triple click detection
	LastClickTime time.Time
	LastClickX    int
	LastClickY    int
	ClickCount    int

	// Selection flash animation (brief highlight after copy, then clear)
	FlashFrame int // -1 = inactive, 0 = flash visible, 1+ = done
}

// NewTextSelection creates a new TextSelection in inactive state.
func NewTextSelection() *TextSelection {
	s := &TextSelection{FlashFrame: -1}
	s.Clear()
	return s
}

// HasSelection returns true if there's a non-empty text selection.
func (s *TextSelection) HasSelection() bool {
	if s.StartCol < 0 || s.StartLine < 0 {
		return false
	}
	return s.StartLine != s.EndLine || s.StartCol != s.EndCol
}

// Clear resets the selection to empty state.
func (s *TextSelection) Clear() {
	s.StartCol = -1
	s.StartLine = -1
	s.EndCol = -1
	s.EndLine = -1
	s.Active = false
}

// SpinnerState tracks the waiting spinner animation.
type SpinnerState struct {
	Idx       int    // Current spinner frame index
	Tick      int    // Tick counter for frame hold timing
	Verb      string // e.g. "Thinking", fixed per request
	StartTime time.Time
}

// NewSpinnerState creates a new SpinnerState.
func NewSpinnerState() *SpinnerState {
	return &SpinnerState{}
}

// LogFile is one log file offered by the log viewer.
type LogFile struct {
	Name    string // Display name (e.g., "Debug Log")
	Path    string
	Content string // Loaded on demand
}

// LogViewerState tracks the log viewer overlay.
// Non-nil when the log viewer is displayed.
type LogViewerState struct {
	Viewport   viewport.Model
	Files      []LogFile
	FileIndex  int
	FollowTail bool // Whether to scroll to the bottom on refresh
}
