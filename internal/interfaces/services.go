package interfaces

import (
	"context"

	"supportbot/internal/backend"
	"supportbot/internal/model"
)

// The dev backend's HTTP handlers depend on these service contracts rather
// than on the concrete services, so handler tests can mock them.

type ChatService interface {
	HandleChat(ctx context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error)
}

type RatingService interface {
	Rate(ctx context.Context, req *backend.RateRequest) *backend.RateResponse
}

type AnalyticsService interface {
	Snapshot(ctx context.Context) (*model.AnalyticsSnapshot, error)
	History(ctx context.Context, sessionID string, limit int) ([]model.ConversationRecord, error)
}

type ProviderService interface {
	List() []model.ProviderDescriptor
}
