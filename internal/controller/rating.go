package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"supportbot/internal/backend"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/interfaces"
	"supportbot/internal/model"
	"supportbot/internal/validation"
)

const (
	ratingSubmittedText = "Rating submitted successfully!"
	ratingFailedText    = "Failed to submit rating. Please try again."
)

// RatingController runs the star-and-feedback workflow for one conversation
// at a time. It is either closed or open with a draft.
type RatingController struct {
	backend   interfaces.Backend
	session   *Session
	history   *HistorySync
	presenter interfaces.Presenter
	refresher refreshTrigger
	noticeFor time.Duration

	mu    sync.Mutex
	open  bool
	draft model.RatingDraft
}

func NewRatingController(backend interfaces.Backend, session *Session, history *HistorySync, presenter interfaces.Presenter, refresher refreshTrigger, noticeFor time.Duration) *RatingController {
	return &RatingController{
		backend:   backend,
		session:   session,
		history:   history,
		presenter: presenter,
		refresher: refresher,
		noticeFor: noticeFor,
	}
}

// Open starts a fresh draft for id. The id must have come back from a send
// in this session or be present in the last history pull.
func (r *RatingController) Open(id model.ConversationID) error {
	if id == "" {
		return fmt.Errorf("%w: no conversation to rate", app_errors.ErrPreconditionNotMet)
	}
	if !r.session.returnedBySend(id) && !r.history.Contains(id) {
		return fmt.Errorf("%w: conversation %s is unknown", app_errors.ErrPreconditionNotMet, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.open = true
	r.draft = model.RatingDraft{ConversationID: id}
	r.publish()
	return nil
}

// SelectScore sets the draft score. Scores outside 1..5 fail with
// app_errors.ErrValidation and leave the draft untouched.
func (r *RatingController) SelectScore(n int) error {
	if err := validation.Var(n, "min=1,max=5"); err != nil {
		return fmt.Errorf("score %d: %w", n, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return fmt.Errorf("%w: rating dialog is closed", app_errors.ErrPreconditionNotMet)
	}
	r.draft.Score = n
	r.publish()
	return nil
}

// SetFeedback replaces the draft's feedback text.
func (r *RatingController) SetFeedback(text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.open {
		return fmt.Errorf("%w: rating dialog is closed", app_errors.ErrPreconditionNotMet)
	}
	r.draft.FeedbackText = text
	r.publish()
	return nil
}

// Submit sends the draft and reports whether the backend accepted it. Without
// an open draft scored 1..5 it issues no request and returns
// app_errors.ErrPreconditionNotMet. A rejection or network failure keeps the
// draft open for a retry.
func (r *RatingController) Submit(ctx context.Context) (bool, error) {
	r.mu.Lock()
	if !r.open || r.draft.Score < 1 {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: nothing to submit", app_errors.ErrPreconditionNotMet)
	}
	draft := r.draft
	r.mu.Unlock()

	resp, err := r.backend.Rate(ctx, &backend.RateRequest{
		ConversationID: draft.ConversationID,
		Rating:         draft.Score,
		Feedback:       strings.TrimSpace(draft.FeedbackText),
	})
	if err != nil || !resp.Success {
		if err != nil {
			slog.Error("Rating submission failed", "conversation_id", draft.ConversationID, "error", err)
		} else {
			slog.Warn("Rating rejected by backend", "conversation_id", draft.ConversationID, "message", resp.Message)
		}
		r.presenter.ShowNotice(model.Notice{Text: ratingFailedText, Kind: model.NoticeError, Duration: r.noticeFor})
		return false, nil
	}

	r.mu.Lock()
	if r.open && r.draft.ConversationID == draft.ConversationID {
		r.closeLocked()
	}
	r.mu.Unlock()

	r.presenter.ShowNotice(model.Notice{Text: ratingSubmittedText, Kind: model.NoticeSuccess, Duration: r.noticeFor})
	slog.Info("Rating submitted", "conversation_id", draft.ConversationID, "rating", draft.Score)
	r.refresher.Trigger(ctx)
	return true, nil
}

// Close discards any draft and hides the dialog. Calling it again is harmless.
func (r *RatingController) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeLocked()
}

func (r *RatingController) closeLocked() {
	r.open = false
	r.draft = model.RatingDraft{}
	r.publish()
}

// State returns the current dialog state.
func (r *RatingController) State() model.RatingDialogState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state()
}

func (r *RatingController) state() model.RatingDialogState {
	return model.RatingDialogState{
		Open:           r.open,
		ConversationID: r.draft.ConversationID,
		Score:          r.draft.Score,
		FeedbackText:   r.draft.FeedbackText,
	}
}

func (r *RatingController) publish() {
	r.presenter.ShowRatingDialog(r.state())
}
