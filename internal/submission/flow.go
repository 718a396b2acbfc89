// Package submission turns the composer contents into a user message, sends
// them to the backend and records the outcome in the conversation store.
//
// A submission has three steps so the TUI can keep the network request off
// its event loop:
//
//	p, ok := flow.Begin()         // on the event loop: append user message
//	res := flow.Send(ctx, p)      // anywhere: one HTTP request
//	flow.Complete(res)            // on the event loop: append reply or error
//
// Submit runs all three in sequence for non-interactive callers.
package submission

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cazelabs/cazechat/internal/backend"
	"github.com/cazelabs/cazechat/internal/composer"
	"github.com/cazelabs/cazechat/internal/conversation"
	"github.com/cazelabs/cazechat/internal/errors"
	"github.com/cazelabs/cazechat/internal/logger"
)

// ErrorPrefix starts the text of the assistant message recorded for a failed
// submission.
const ErrorPrefix = "Error: "

// Pending is a submission whose user message has been recorded but whose
// request has not completed.
type Pending struct {
	ConversationID string
	Request        backend.Request
	StartedAt      time.Time
}

// Result is the outcome of sending a Pending submission.
type Result struct {
	ConversationID string
	Reply          backend.Reply
	Err            error
	Elapsed        time.Duration
}

// Flow owns the loading flag and coordinates store, composer and backend.
type Flow struct {
	store    *conversation.Store
	composer *composer.Composer
	sender   backend.Sender
	userID   string

	loading   bool
	pendingID string
}

// NewFlow creates a flow. An empty userID is replaced with a random one that
// identifies this process to the backend for its whole lifetime.
func NewFlow(store *conversation.Store, comp *composer.Composer, sender backend.Sender, userID string) *Flow {
	if userID == "" {
		userID = NewUserID()
	}
	return &Flow{
		store:    store,
		composer: comp,
		sender:   sender,
		userID:   userID,
	}
}

// NewUserID returns a fresh session identifier.
func NewUserID() string {
	return "user-" + uuid.NewString()
}

// UserID returns the identifier sent with every submission.
func (f *Flow) UserID() string {
	return f.userID
}

// SetSender replaces the backend used by later submissions, for example after
// the endpoint is changed in the settings.
func (f *Flow) SetSender(sender backend.Sender) {
	f.sender = sender
}

// Loading reports whether a submission is in flight.
func (f *Flow) Loading() bool {
	return f.loading
}

// PendingConversationID returns the conversation awaiting a reply, or "".
func (f *Flow) PendingConversationID() string {
	if !f.loading {
		return ""
	}
	return f.pendingID
}

// CanSubmit reports whether Begin would start a submission.
func (f *Flow) CanSubmit() bool {
	return !f.loading && !f.composer.IsEmpty() && f.store.ActiveID() != ""
}

// Begin records the user's message in the active conversation, clears the
// composer and sets loading. It does nothing and returns false when the
// composer is empty, there is no active conversation, or a submission is
// already in flight.
func (f *Flow) Begin() (*Pending, bool) {
	if !f.CanSubmit() {
		return nil, false
	}

	convID := f.store.ActiveID()
	draft := f.composer.Snapshot()

	msg := conversation.NewUserMessage(draft.Text, draft.Attachment.Ref())
	if !f.store.Append(convID, msg) {
		return nil, false
	}
	f.composer.Reset()
	f.loading = true
	f.pendingID = convID

	logger.WithConversation(convID).Debug("submission started",
		"prompt_len", len(draft.Text), "has_file", draft.Attachment != nil)

	return &Pending{
		ConversationID: convID,
		Request: backend.Request{
			Prompt:     draft.Text,
			UserID:     f.userID,
			Attachment: draft.Attachment,
		},
		StartedAt: time.Now(),
	}, true
}

// Send performs the network request for p. It does not touch the store or
// the flow's state and may run on any goroutine.
func (f *Flow) Send(ctx context.Context, p *Pending) Result {
	reply, err := f.sender.Send(ctx, p.Request)
	return Result{
		ConversationID: p.ConversationID,
		Reply:          reply,
		Err:            err,
		Elapsed:        time.Since(p.StartedAt),
	}
}

// Complete records the outcome in the conversation the submission started
// in, which need not be the active one any more, and clears loading.
func (f *Flow) Complete(res Result) {
	defer func() {
		f.loading = false
		f.pendingID = ""
	}()

	log := logger.WithConversation(res.ConversationID)
	if res.Err != nil {
		log.Error("submission failed", "error", res.Err, "elapsed", res.Elapsed)
		f.store.Append(res.ConversationID, ErrorMessage(res.Err))
		return
	}

	log.Debug("submission completed", "elapsed", res.Elapsed)
	f.store.Append(res.ConversationID, res.Reply.Message())
}

// Submit runs a whole submission synchronously. It returns false when there
// was nothing to submit.
func (f *Flow) Submit(ctx context.Context) (Result, bool) {
	p, ok := f.Begin()
	if !ok {
		return Result{}, false
	}
	res := f.Send(ctx, p)
	f.Complete(res)
	return res, true
}

// ErrorMessage builds the assistant message shown in place of a reply.
func ErrorMessage(err error) conversation.Message {
	msg := conversation.NewAssistantMessage("", ErrorPrefix+errors.Describe(err), nil, time.Time{})
	msg.Failed = true
	return msg
}
