package conversation

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cazelabs/cazechat/internal/logger"
)

// Conversation is a named thread of messages.
type Conversation struct {
	ID       string
	Name     string
	Messages []Message

	// named is set once the first user prompt with text has fixed Name.
	named bool
}

// IsEmpty reports whether the conversation has no messages yet.
func (c Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// LastMessage returns the most recent message, if any.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

func (c *Conversation) clone() Conversation {
	out := *c
	out.Messages = make([]Message, len(c.Messages))
	for i, m := range c.Messages {
		out.Messages[i] = m.clone()
	}
	return out
}

// EventKind identifies what changed in the store.
type EventKind int

const (
	EventCreated EventKind = iota
	EventAppended
	EventActivated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventAppended:
		return "appended"
	case EventActivated:
		return "activated"
	default:
		return "unknown"
	}
}

// Event describes a single store mutation.
type Event struct {
	Kind           EventKind
	ConversationID string
}

// Store keeps every conversation of the session in memory.
type Store struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	order         []string
	activeID      string
	observers     []func(Event)
}

// NewStore returns a store holding a single active "New Chat" conversation.
func NewStore() *Store {
	s := &Store{
		conversations: make(map[string]*Conversation),
	}
	s.Create(DefaultName)
	return s
}

// Subscribe registers fn to be called after every mutation. Observers run on
// the goroutine that performed the mutation, after the store lock is released.
func (s *Store) Subscribe(fn func(Event)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

func (s *Store) notify(ev Event) {
	s.mu.RLock()
	observers := make([]func(Event), len(s.observers))
	copy(observers, s.observers)
	s.mu.RUnlock()

	for _, fn := range observers {
		fn(ev)
	}
}

// Create adds a new empty conversation and makes it active. An empty name
// becomes DefaultName.
func (s *Store) Create(name string) Conversation {
	if name == "" {
		name = DefaultName
	}
	conv := &Conversation{
		ID:   uuid.NewString(),
		Name: name,
	}

	s.mu.Lock()
	s.conversations[conv.ID] = conv
	s.order = append(s.order, conv.ID)
	s.activeID = conv.ID
	out := conv.clone()
	s.mu.Unlock()

	logger.WithConversation(conv.ID).Debug("conversation created", "name", name)
	s.notify(Event{Kind: EventCreated, ConversationID: conv.ID})
	return out
}

// Append adds msg to the end of the conversation with the given id. It
// reports false and changes nothing when no such conversation exists. The
// first user message with text names the conversation.
func (s *Store) Append(conversationID string, msg Message) bool {
	s.mu.Lock()
	conv, ok := s.conversations[conversationID]
	if !ok {
		s.mu.Unlock()
		logger.WithConversation(conversationID).Warn("append to unknown conversation dropped")
		return false
	}
	conv.Messages = append(conv.Messages, msg.clone())
	if msg.Role == RoleUser && !conv.named && strings.TrimSpace(msg.Text) != "" {
		conv.named = true
		conv.Name = TitleFromPrompt(msg.Text)
	}
	s.mu.Unlock()

	s.notify(Event{Kind: EventAppended, ConversationID: conversationID})
	return true
}

// Get returns a copy of the conversation with the given id.
func (s *Store) Get(id string) (Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	conv, ok := s.conversations[id]
	if !ok {
		return Conversation{}, false
	}
	return conv.clone(), true
}

// List returns all conversations in creation order.
func (s *Store) List() []Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Conversation, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.conversations[id].clone())
	}
	return out
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// ActiveID returns the id of the active conversation, or "" if none.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a copy of the active conversation.
func (s *Store) Active() (Conversation, bool) {
	return s.Get(s.ActiveID())
}

// SetActive makes the conversation with the given id active. Unknown ids are
// ignored and reported as false.
func (s *Store) SetActive(id string) bool {
	s.mu.Lock()
	if _, ok := s.conversations[id]; !ok {
		s.mu.Unlock()
		return false
	}
	changed := s.activeID != id
	s.activeID = id
	s.mu.Unlock()

	if changed {
		s.notify(Event{Kind: EventActivated, ConversationID: id})
	}
	return true
}

// IndexOf returns the position of id in creation order, or -1.
func (s *Store) IndexOf(id string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, cid := range s.order {
		if cid == id {
			return i
		}
	}
	return -1
}
