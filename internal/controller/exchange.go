package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"supportbot/internal/backend"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

const (
	placeholderText = "Processing..."
	failureText     = "Sorry, I encountered an error. Please try again."
)

// refreshTrigger starts the post-mutation analytics and history pulls.
type refreshTrigger interface {
	Trigger(ctx context.Context)
}

// ExchangeController drives chat turns: Idle -> Sending -> Completed|Failed,
// then back to Idle. Several turns may be in flight at once unless serialize
// is set; each turn owns its placeholder.
type ExchangeController struct {
	backend    interfaces.Backend
	session    *Session
	transcript *Transcript
	refresher  refreshTrigger
	serialize  bool

	mu       sync.Mutex
	inFlight int
	last     model.ExchangeState
}

func NewExchangeController(backend interfaces.Backend, session *Session, transcript *Transcript, refresher refreshTrigger, serialize bool) *ExchangeController {
	return &ExchangeController{
		backend:    backend,
		session:    session,
		transcript: transcript,
		refresher:  refresher,
		serialize:  serialize,
	}
}

// pendingExchange is a turn whose user message and placeholder are already
// shown and whose chat request has not been made yet.
type pendingExchange struct {
	message       string
	provider      string
	placeholderID string
	state         model.ExchangeState
}

// Send runs one exchange and returns its settled state. Blank text, a missing
// provider, or (when serialized) a turn already in flight make it a no-op
// that returns app_errors.ErrPreconditionNotMet. Network failures are not
// returned: they end the turn in ExchangeFailed with an apology in the
// transcript.
func (x *ExchangeController) Send(ctx context.Context, text string) (model.ExchangeState, error) {
	p, err := x.begin(text)
	if err != nil {
		return model.ExchangeState{}, err
	}
	return x.complete(ctx, p), nil
}

// begin checks the preconditions, counts the turn as in flight and appends
// the user turn and its placeholder. It never blocks on the network, so
// callers that begin turns in order see them in the transcript in order.
func (x *ExchangeController) begin(text string) (*pendingExchange, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return nil, fmt.Errorf("%w: message is empty", app_errors.ErrPreconditionNotMet)
	}
	provider := x.session.Provider()
	if provider == "" {
		return nil, fmt.Errorf("%w: no provider selected", app_errors.ErrPreconditionNotMet)
	}

	x.mu.Lock()
	if x.serialize && x.inFlight > 0 {
		x.mu.Unlock()
		return nil, fmt.Errorf("%w: a message is already being sent", app_errors.ErrPreconditionNotMet)
	}
	x.inFlight++
	x.mu.Unlock()

	userTurn := x.transcript.Append(model.Turn{Role: model.RoleUser, Text: message})
	placeholder := x.transcript.Append(model.Turn{Role: model.RoleBot, Text: placeholderText, Placeholder: true})
	return &pendingExchange{
		message:       message,
		provider:      provider,
		placeholderID: placeholder.ID,
		state:         model.ExchangeState{TurnID: userTurn.ID, Status: model.ExchangeSending, UserText: message},
	}, nil
}

// complete makes the chat request for p and settles the turn.
func (x *ExchangeController) complete(ctx context.Context, p *pendingExchange) model.ExchangeState {
	state := p.state
	resp, err := x.backend.Chat(ctx, &backend.ChatRequest{
		Message:   p.message,
		Provider:  p.provider,
		SessionID: x.session.ID(),
	})
	x.transcript.RemovePlaceholder(p.placeholderID)

	if err != nil {
		slog.Error("Chat request failed", "provider", p.provider, "session_id", x.session.ID(), "error", err)
		x.transcript.Append(model.Turn{Role: model.RoleBot, Text: failureText})
		state.Status = model.ExchangeFailed
		x.settle(state)
		return state
	}

	x.transcript.Append(model.Turn{
		Role:           model.RoleBot,
		Text:           resp.Response,
		ConversationID: resp.ConversationID,
		Rateable:       resp.ConversationID != "",
	})
	if resp.ConversationID != "" {
		x.session.setActiveConversation(resp.ConversationID)
	} else {
		slog.Warn("Chat response carried no conversation id; it cannot be rated", "provider", p.provider)
	}
	state.Status = model.ExchangeCompleted
	state.ConversationID = resp.ConversationID
	x.settle(state)

	x.refresher.Trigger(ctx)
	return state
}

func (x *ExchangeController) settle(state model.ExchangeState) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.inFlight--
	x.last = state
}

// Phase reports ExchangeSending while any turn is in flight and ExchangeIdle otherwise.
func (x *ExchangeController) Phase() model.ExchangeStatus {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.inFlight > 0 {
		return model.ExchangeSending
	}
	return model.ExchangeIdle
}

// Last returns the most recently settled exchange.
func (x *ExchangeController) Last() model.ExchangeState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.last
}
