// Package conversation holds the in-memory conversation store.
//
// # Model
//
// A Conversation is a named, ordered thread of Messages with a stable ID.
// Messages are immutable once appended and are never removed or reordered.
// A Message is authored either by the user or by the assistant; user
// messages may carry a local file handle (name and MIME type), assistant
// messages may carry a server-provided file URL.
//
// # Store
//
// Store maps conversation IDs to conversations, remembers creation order for
// the sidebar, and tracks the single active conversation. A store returned
// by NewStore is never empty: it starts with one "New Chat" conversation that
// is already active.
//
// Conversations are named lazily. The first user message sets the name to
// TitleFromPrompt(text); after that the name never changes.
//
// # Observers
//
// Subscribe registers callbacks that run after every mutation. The TUI uses
// them to recompute its projection of the store; nothing else depends on
// them.
package conversation
