package repository

import (
	"context"
	"time"

	"supportbot/internal/model"
)

// Repository defines the interface for data storage operations.
// This interface makes it easy to switch database implementations.
type Repository interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) (int64, error)
	GetConversation(ctx context.Context, id int64) (*model.Conversation, error)
	ListConversations(ctx context.Context, sessionID string, limit int) ([]model.ConversationRecord, error)

	UpsertRating(ctx context.Context, rating *model.Rating) error

	StatsSince(ctx context.Context, since time.Time) (model.StatBlock, error)
	ProviderStats(ctx context.Context) (map[string]model.StatBlock, error)
}
