package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"supportbot/internal/backend"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/llm"
	"supportbot/internal/model"
	"supportbot/internal/repository"
)

// ChatService answers chat messages with the chosen provider and persists
// every answered exchange.
type ChatService struct {
	repo     repository.Repository
	registry *llm.Registry
	now      func() time.Time
}

func NewChatService(repo repository.Repository, registry *llm.Registry) *ChatService {
	return &ChatService{repo: repo, registry: registry, now: func() time.Time { return time.Now().UTC() }}
}

// HandleChat generates a reply and stores the exchange. An unknown or
// unavailable provider is a validation error. A generation failure is
// reported in the reply text with no conversation id and nothing is stored.
func (s *ChatService) HandleChat(ctx context.Context, req *backend.ChatRequest) (*backend.ChatResponse, error) {
	provider, ok := s.registry.Get(req.Provider)
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", app_errors.ErrValidation, req.Provider)
	}
	if !provider.Available() {
		return nil, fmt.Errorf("%w: provider %q is not available", app_errors.ErrValidation, req.Provider)
	}

	message := strings.TrimSpace(req.Message)
	reply, err := provider.Generate(ctx, message)
	if err != nil {
		slog.Error("Provider failed to generate a reply", "provider", req.Provider, "session_id", req.SessionID, "error", err)
		return &backend.ChatResponse{
			Response:  fmt.Sprintf("Sorry, I encountered an error: %v", err),
			Provider:  req.Provider,
			SessionID: req.SessionID,
			Timestamp: model.NewTimestamp(s.now()),
		}, nil
	}

	conv := &model.Conversation{
		SessionID:   req.SessionID,
		UserMessage: message,
		LLMProvider: req.Provider,
		LLMResponse: reply,
		Timestamp:   s.now(),
	}
	id, err := s.repo.CreateConversation(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("%w: could not save conversation: %v", app_errors.ErrInternal, err)
	}

	slog.Info("Conversation saved", "conversation_id", id, "provider", req.Provider, "session_id", req.SessionID)
	return &backend.ChatResponse{
		Response:       reply,
		ConversationID: model.ConversationID(fmt.Sprint(id)),
		Provider:       req.Provider,
		SessionID:      req.SessionID,
		Timestamp:      model.NewTimestamp(conv.Timestamp),
	}, nil
}
