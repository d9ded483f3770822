package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"supportbot/internal/backend"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/interfaces"
	"supportbot/internal/model"
	"supportbot/internal/validation"
)

// Handler serves the dev backend's JSON API.
type Handler struct {
	chat      interfaces.ChatService
	rating    interfaces.RatingService
	analytics interfaces.AnalyticsService
	providers interfaces.ProviderService
	now       func() time.Time
}

func NewHandler(chat interfaces.ChatService, rating interfaces.RatingService, analytics interfaces.AnalyticsService, providers interfaces.ProviderService) *Handler {
	return &Handler{
		chat:      chat,
		rating:    rating,
		analytics: analytics,
		providers: providers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, backend.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().Format(time.RFC3339),
	})
}

// ListProviders handles GET /api/providers.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.providers.List())
}

// Chat handles POST /api/chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req backend.ChatRequest
	if !decodeValid(w, r, &req) {
		return
	}

	resp, err := h.chat.HandleChat(r.Context(), &req)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// Rate handles POST /api/rate. Business failures are reported in the body
// with success=false, not as an HTTP error.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	var req backend.RateRequest
	if !decodeValid(w, r, &req) {
		return
	}
	respondWithJSON(w, http.StatusOK, h.rating.Rate(r.Context(), &req))
}

// Analytics handles GET /api/analytics.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.analytics.Snapshot(r.Context())
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: %v", app_errors.ErrInternal, err))
		return
	}
	respondWithJSON(w, http.StatusOK, snapshot)
}

// Conversations handles GET /api/conversations?session_id=&limit=.
func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondWithError(w, fmt.Errorf("%w: limit must be a positive integer", app_errors.ErrValidation))
			return
		}
		limit = n
	}

	records, err := h.analytics.History(r.Context(), query.Get("session_id"), limit)
	if err != nil {
		respondWithError(w, fmt.Errorf("%w: %v", app_errors.ErrInternal, err))
		return
	}
	if records == nil {
		records = []model.ConversationRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

// decodeValid decodes the JSON body into dst and validates it. On failure it
// writes a 400 response and returns false.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		slog.Debug("Failed to decode request body", "path", r.URL.Path, "error", err)
		respondWithError(w, fmt.Errorf("%w: invalid request body", app_errors.ErrValidation))
		return false
	}
	if err := validation.Struct(dst); err != nil {
		respondWithError(w, err)
		return false
	}
	return true
}
