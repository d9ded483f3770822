package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"supportbot/internal/model"
	"supportbot/internal/repository"
)

// DefaultHistoryLimit is how many conversations GET /api/conversations returns
// when no limit is given.
const DefaultHistoryLimit = 50

// AnalyticsService computes usage statistics and serves conversation history.
type AnalyticsService struct {
	repo repository.Repository
	now  func() time.Time
}

func NewAnalyticsService(repo repository.Repository) *AnalyticsService {
	return &AnalyticsService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Snapshot aggregates today (UTC), the last seven days and each provider.
// Averages are rounded to two decimals.
func (s *AnalyticsService) Snapshot(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	daily, err := s.repo.StatsSince(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("could not compute daily stats: %w", err)
	}
	weekly, err := s.repo.StatsSince(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("could not compute weekly stats: %w", err)
	}
	providers, err := s.repo.ProviderStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not compute provider stats: %w", err)
	}

	comparison := make(map[string]model.StatBlock, len(providers))
	for name, block := range providers {
		comparison[name] = rounded(block)
	}
	return &model.AnalyticsSnapshot{
		Daily:              rounded(daily),
		Weekly:             rounded(weekly),
		ProviderComparison: comparison,
	}, nil
}

// History lists conversations newest first. A non-positive limit means
// DefaultHistoryLimit.
func (s *AnalyticsService) History(ctx context.Context, sessionID string, limit int) ([]model.ConversationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := s.repo.ListConversations(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list conversations: %w", err)
	}
	return records, nil
}

func rounded(b model.StatBlock) model.StatBlock {
	b.AverageRating = math.Round(b.AverageRating*100) / 100
	return b
}
