// Package events defines the typed user-intent events a presentation surface
// emits and the controller consumes, plus a small in-memory bus to carry them.
//
// Design:
//   - One concrete type per intent; consumers type-switch on Event.
//   - Bus fans each published event out to every subscriber over a buffered channel.
//   - Publish never blocks: when a subscriber's buffer is full the event is dropped and counted.
//   - PublishWait blocks until every subscriber has the event, for input that must not be lost.
package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"supportbot/internal/model"
)

// ErrClosed is returned by PublishWait after Close.
var ErrClosed = errors.New("event bus closed")

// Event is a user intent raised by the presentation surface.
type Event interface {
	Name() string
}

// ProviderChosen is raised when the user picks a provider.
type ProviderChosen struct{ Provider string }

// SendRequested is raised when the user submits a chat message.
type SendRequested struct{ Text string }

// StarSelected is raised when the user clicks a star in the rating dialog.
type StarSelected struct{ Score int }

// FeedbackChanged is raised when the user edits the rating feedback text.
type FeedbackChanged struct{ Text string }

// RatingSubmitRequested is raised when the user submits the rating dialog.
type RatingSubmitRequested struct{}

// RatingDismissed is raised when the rating dialog is closed without submitting.
type RatingDismissed struct{}

// TabSwitched is raised when the user switches panels.
type TabSwitched struct{ Tab model.Tab }

// HistoricalRateRequested is raised by the "rate" action on a history row.
type HistoricalRateRequested struct{ ConversationID model.ConversationID }

// TurnRateRequested is raised by the "rate this" action on a transcript turn.
// An empty ConversationID means the active conversation.
type TurnRateRequested struct{ ConversationID model.ConversationID }

func (ProviderChosen) Name() string          { return "provider_chosen" }
func (SendRequested) Name() string           { return "send_requested" }
func (StarSelected) Name() string            { return "star_selected" }
func (FeedbackChanged) Name() string         { return "feedback_changed" }
func (RatingSubmitRequested) Name() string   { return "rating_submit_requested" }
func (RatingDismissed) Name() string         { return "rating_dismissed" }
func (TabSwitched) Name() string             { return "tab_switched" }
func (HistoricalRateRequested) Name() string { return "historical_rate_requested" }
func (TurnRateRequested) Name() string       { return "turn_rate_requested" }

const defaultBufferSize = 64

// Bus is an in-memory publish/subscribe channel for events.
type Bus struct {
	mu          sync.RWMutex
	subscribers []chan Event
	closed      bool
	dropped     atomic.Int64
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a subscriber and returns its read-only channel. The
// channel is closed by Close.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, defaultBufferSize)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Publish delivers ev to every subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// PublishWait delivers ev to every subscriber, waiting for buffer space.
// It returns ctx.Err() if ctx ends first; subscribers already served keep
// the event. Use it for input that must not be lost, such as user commands
// feeding the controller; Publish is for fan-out that may shed load.
// A Close issued while PublishWait is blocked waits for it to return.
func (b *Bus) PublishWait(ctx context.Context, ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Dropped reports how many deliveries were lost to full buffers.
func (b *Bus) Dropped() int64 {
	return b.dropped.Load()
}

// Close closes every subscriber channel. Further publishes are ignored.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subscribers {
		close(ch)
	}
}
