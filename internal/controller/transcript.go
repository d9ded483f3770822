package controller

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

// Transcript is the visible conversation. Turns are only ever appended, with
// one exception: a placeholder is removed once its exchange settles.
// Presenter calls happen under the lock so the surface sees turns in
// transcript order.
type Transcript struct {
	mu        sync.Mutex
	turns     []model.Turn
	presenter interfaces.Presenter
}

func NewTranscript(presenter interfaces.Presenter) *Transcript {
	return &Transcript{presenter: presenter}
}

// Append adds turn, assigning an id and timestamp when missing, and returns
// the stored copy.
func (t *Transcript) Append(turn model.Turn) model.Turn {
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.turns = append(t.turns, turn)
	t.presenter.AppendTurn(turn)
	return turn
}

// RemovePlaceholder drops the placeholder turn with the given id. Regular
// turns are never removed.
func (t *Transcript) RemovePlaceholder(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := slices.IndexFunc(t.turns, func(turn model.Turn) bool {
		return turn.ID == id && turn.Placeholder
	})
	if idx < 0 {
		return false
	}
	t.turns = slices.Delete(t.turns, idx, idx+1)
	t.presenter.RemoveTurn(id)
	return true
}

// Turns returns a copy of the transcript.
func (t *Transcript) Turns() []model.Turn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.turns)
}

// Len returns the number of turns currently shown.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.turns)
}
