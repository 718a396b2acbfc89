// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MinSidebarWidth keeps short conversation titles readable on narrow terminals
	MinSidebarWidth = 24

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 60
	MinTerminalHeight = 16

	// TextareaHeight is the number of lines for the composer textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// ComposerStatusHeight is the attachment chip / status line under the textarea
	ComposerStatusHeight = 1

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the composer (textarea + status + borders)
	InputTotalHeight = TextareaHeight + ComposerStatusHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80
)

// Sidebar limits
const (
	// SidebarSearchCharLimit bounds the conversation filter input
	SidebarSearchCharLimit = 64
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 64

	// ModalWidthWide is used by modals with several form fields
	ModalWidthWide = 90

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 1024

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 56

	// HelpModalMaxVisible is the number of help rows shown before scrolling
	HelpModalMaxVisible = 16
)
