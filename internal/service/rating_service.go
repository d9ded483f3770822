package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"supportbot/internal/backend"
	"supportbot/internal/model"
	"supportbot/internal/repository"
)

// RatingService stores one rating per conversation; rating again replaces it.
type RatingService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewRatingService(repo repository.Repository) *RatingService {
	return &RatingService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Rate saves the rating. Unknown conversations and storage failures are
// reported as success=false rather than as errors.
func (s *RatingService) Rate(ctx context.Context, req *backend.RateRequest) *backend.RateResponse {
	id, err := strconv.ParseInt(string(req.ConversationID), 10, 64)
	if err != nil {
		return &backend.RateResponse{Success: false, Message: "Conversation not found"}
	}

	if _, err := s.repo.GetConversation(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &backend.RateResponse{Success: false, Message: "Conversation not found"}
		}
		slog.Error("Could not look up conversation", "conversation_id", id, "error", err)
		return &backend.RateResponse{Success: false, Message: "Failed to save rating"}
	}

	rating := &model.Rating{ConversationID: id, Rating: req.Rating, Timestamp: s.now()}
	if feedback := strings.TrimSpace(req.Feedback); feedback != "" {
		rating.Feedback = &feedback
	}
	if err := s.repo.UpsertRating(ctx, rating); err != nil {
		slog.Error("Could not save rating", "conversation_id", id, "error", err)
		return &backend.RateResponse{Success: false, Message: "Failed to save rating"}
	}

	slog.Info("Rating saved", "conversation_id", id, "rating", req.Rating)
	return &backend.RateResponse{Success: true, Message: "Rating saved successfully"}
}
