package controller

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

// DefaultHistoryLimit is how many records the history view shows.
const DefaultHistoryLimit = 10

// HistorySync pulls recent conversation records and republishes the newest
// few in backend order. Its staleness and sequencing rules match AnalyticsSync.
type HistorySync struct {
	backend   interfaces.Backend
	presenter interfaces.Presenter
	limit     int
	sequenced bool

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64
	records []model.ConversationRecord
	known   map[model.ConversationID]struct{}
}

func NewHistorySync(backend interfaces.Backend, presenter interfaces.Presenter, limit int, sequenced bool) *HistorySync {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &HistorySync{
		backend:   backend,
		presenter: presenter,
		limit:     limit,
		sequenced: sequenced,
		known:     make(map[model.ConversationID]struct{}),
	}
}

// Refresh pulls the history and publishes at most limit records. On error
// the previous records are returned alongside the error.
func (h *HistorySync) Refresh(ctx context.Context) ([]model.ConversationRecord, error) {
	seq := h.seq.Add(1)

	records, err := h.backend.Conversations(ctx)
	if err != nil {
		slog.Warn("History refresh failed; keeping previous records", "seq", seq, "error", err)
		return h.Records(), fmt.Errorf("could not refresh history: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.sequenced && seq < h.applied {
		slog.Debug("Discarding stale history response", "seq", seq, "applied", h.applied)
		return slices.Clone(h.records), nil
	}
	h.applied = seq

	known := make(map[model.ConversationID]struct{}, len(records))
	for _, rec := range records {
		known[rec.ID] = struct{}{}
	}
	h.known = known
	h.records = slices.Clone(records[:min(len(records), h.limit)])

	items := make([]model.HistoryItem, 0, len(h.records))
	for _, rec := range h.records {
		items = append(items, model.HistoryItem{Record: rec, Rateable: !rec.Rated()})
	}
	h.presenter.ShowHistory(items)
	return slices.Clone(h.records), nil
}

// Records returns the last published records.
func (h *HistorySync) Records() []model.ConversationRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.records)
}

// Contains reports whether id was part of the last applied pull.
func (h *HistorySync) Contains(id model.ConversationID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.known[id]
	return ok
}

// Lookup returns the published record with the given id.
func (h *HistorySync) Lookup(id model.ConversationID) (model.ConversationRecord, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	idx := slices.IndexFunc(h.records, func(r model.ConversationRecord) bool { return r.ID == id })
	if idx < 0 {
		return model.ConversationRecord{}, false
	}
	return h.records[idx], true
}
