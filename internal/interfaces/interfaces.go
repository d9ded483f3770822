package interfaces

import (
	"context"

	"supportbot/internal/backend"
	"supportbot/internal/model"
)

// This file defines the seams of the session controller. The controller talks
// to the backend and to the presentation surface only through these contracts,
// so either side can be swapped (HTTP client or fake, terminal or recorder).

// Backend is the REST surface the controller consumes.
type Backend interface {
	Providers(ctx context.Context) ([]model.ProviderDescriptor, error)
	Chat(ctx context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error)
	Rate(ctx context.Context, req *backend.RateRequest) (*backend.RateResponse, error)
	Analytics(ctx context.Context) (*model.AnalyticsSnapshot, error)
	Conversations(ctx context.Context) ([]model.ConversationRecord, error)
}

// Presenter is anything that can paint the controller's state. Calls may
// arrive from several goroutines; implementations must be safe for that.
type Presenter interface {
	AppendTurn(turn model.Turn)
	RemoveTurn(turnID string)
	ShowProviderOptions(options []model.ProviderOption)
	ShowSessionBanner(providerLabel string)
	SetInputEnabled(enabled bool)
	ShowAnalytics(snapshot model.AnalyticsSnapshot)
	ShowHistory(items []model.HistoryItem)
	ShowNotice(notice model.Notice)
	ShowRatingDialog(state model.RatingDialogState)
	ShowTab(tab model.Tab)
}
