package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/composer"
	"github.com/cazelabs/cazechat/internal/config"
	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/logger"
	"github.com/cazelabs/cazechat/internal/submission"
	"github.com/cazelabs/cazechat/internal/ui"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

func (f Focus) String() string {
	if f == FocusChat {
		return "chat"
	}
	return "sidebar"
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	store    *conversation.Store
	composer *composer.Composer
	flow     *submission.Flow

	// ctx is handed to every backend request so shutdown can abort them.
	ctx          context.Context
	pendingStart time.Time

	width  int
	height int
	focus  Focus

	windowFocused bool
	kittyKeyboard bool
}

// SubmissionResultMsg carries the outcome of a backend request back to the
// event loop.
type SubmissionResultMsg struct {
	Result submission.Result
}

// Option customizes a Model.
type Option func(*modelOptions)

type modelOptions struct {
	sender backend.Sender
	ctx    context.Context
	userID string
}

// WithSender replaces the HTTP client built from the config.
func WithSender(s backend.Sender) Option {
	return func(o *modelOptions) { o.sender = s }
}

// WithContext sets the context backend requests run under.
func WithContext(ctx context.Context) Option {
	return func(o *modelOptions) { o.ctx = ctx }
}

// WithUserID fixes the session identifier sent to the backend.
func WithUserID(id string) Option {
	return func(o *modelOptions) { o.userID = id }
}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	o := modelOptions{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sender == nil {
		o.sender = backend.NewClient(cfg.GetEndpoint(), cfg.GetRequestTimeout())
	}

	if path := cfg.ThemesPath(); path != "" {
		if err := ui.LoadThemeFile(path); err != nil {
			logger.WithComponent("app").Warn("ignoring custom themes", "error", err)
		}
	}
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	store := conversation.NewStore()
	comp := composer.New()

	m := &Model{
		config:        cfg,
		version:       version,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		sidebar:       ui.NewSidebar(),
		chat:          ui.NewChat(),
		modal:         ui.NewModal(),
		store:         store,
		composer:      comp,
		flow:          submission.NewFlow(store, comp, o.sender, o.userID),
		ctx:           o.ctx,
		focus:         FocusChat,
		windowFocused: true,
	}

	m.chat.SetBackendHost(cfg.GetBackendHost())
	m.chat.SetFocused(true)
	m.store.Subscribe(m.onStoreEvent)
	m.refreshView()

	logger.WithComponent("app").Info("app started",
		"version", version, "endpoint", cfg.GetEndpoint(), "userID", m.flow.UserID())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// onStoreEvent keeps the projection in sync with the store. It runs on the
// event loop because the store is only mutated there.
func (m *Model) onStoreEvent(ev conversation.Event) {
	if ev.Kind == conversation.EventAppended && ev.ConversationID != m.store.ActiveID() {
		m.sidebar.MarkUnread(ev.ConversationID)
	}
	m.refreshView()
}

// refreshView recomputes every panel from the store, the composer and the
// loading flag.
func (m *Model) refreshView() {
	active, _ := m.store.Active()

	m.header.SetConversationName(active.Name)
	m.sidebar.SetConversations(m.store.List(), active.ID)
	m.sidebar.SetPending(m.flow.PendingConversationID())
	m.chat.SetMessages(active.Messages)

	if pending := m.flow.PendingConversationID(); pending != "" && pending == active.ID {
		m.chat.SetWaitingWithStart(true, m.pendingStart)
	} else if m.chat.IsWaiting() {
		m.chat.SetWaiting(false)
	}

	if att := m.composer.Attachment(); att != nil {
		m.chat.SetAttachment(att.Label())
	} else {
		m.chat.SetAttachment("")
	}
}

// Store returns the conversation store.
func (m *Model) Store() *conversation.Store {
	return m.store
}

// Composer returns the composer holding the next prompt's attachment.
func (m *Model) Composer() *composer.Composer {
	return m.composer
}

// Loading reports whether a submission is waiting for the backend.
func (m *Model) Loading() bool {
	return m.flow.Loading()
}

// FocusedPanel returns the focused panel.
func (m *Model) FocusedPanel() Focus {
	return m.focus
}
