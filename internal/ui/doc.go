// Package ui provides the user interface components for the cazechat TUI.
//
// # Overview
//
// The ui package implements the visual components of cazechat using the Bubble
// Tea framework and Lipgloss styling library. Components are projections: the
// app package pushes conversation store, composer and loading state into them
// after every change and they render it.
//
// # Layout System
//
//	┌─────────────────────────────────────────────────────┐
//	│ Header (1 line)                                     │
//	├─────────────┬───────────────────────────────────────┤
//	│             │  Transcript viewport                  │
//	│  Sidebar    │                                       │
//	│  (1/4)      ├───────────────────────────────────────┤
//	│             │  Composer (status line + textarea)    │
//	├─────────────┴───────────────────────────────────────┤
//	│ Footer (1 line)                                     │
//	└─────────────────────────────────────────────────────┘
//
// # Components
//
// ViewContext: Singleton that manages centralized layout calculations.
//
// Header: The application title and the active conversation name on a
// gradient background.
//
// Footer: Context-aware key bindings, replaced by flash messages when one
// is showing.
//
// Sidebar: Conversations in creation order plus a "+ New Chat" row. The
// active conversation is highlighted, the one waiting on a reply shows a
// spinner, and "/" filters the list by name.
//
// Chat: The transcript of the active conversation (or a welcome view when
// it is empty), the waiting indicator with a stopwatch, and the composer
// with its attachment chip. Replies are rendered as markdown with chroma
// highlighted code fences. Mouse drag selects text and copies it.
//
// Modal: Popup dialogs defined in the modals subpackage (attach file, help,
// settings).
//
// # Styles
//
// Styles are declared in styles.go and rebuilt from the active Theme by
// regenerateStyles whenever the theme changes.
package ui
