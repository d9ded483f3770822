package controller

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"sync/atomic"

	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

// AnalyticsSync pulls usage statistics and republishes them. A failed pull
// leaves the last published snapshot in place.
type AnalyticsSync struct {
	backend   interfaces.Backend
	presenter interfaces.Presenter
	sequenced bool

	seq atomic.Uint64

	mu       sync.Mutex
	applied  uint64
	snapshot model.AnalyticsSnapshot
	loaded   bool
}

// NewAnalyticsSync returns a sync. When sequenced is set, a response that
// started before the last applied one is discarded; otherwise the last
// response to arrive wins.
func NewAnalyticsSync(backend interfaces.Backend, presenter interfaces.Presenter, sequenced bool) *AnalyticsSync {
	return &AnalyticsSync{backend: backend, presenter: presenter, sequenced: sequenced}
}

// Refresh pulls a new snapshot and publishes it. On error the previous
// snapshot is returned alongside the error.
func (a *AnalyticsSync) Refresh(ctx context.Context) (model.AnalyticsSnapshot, error) {
	seq := a.seq.Add(1)

	snapshot, err := a.backend.Analytics(ctx)
	if err != nil {
		slog.Warn("Analytics refresh failed; keeping previous snapshot", "seq", seq, "error", err)
		return a.Snapshot(), fmt.Errorf("could not refresh analytics: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sequenced && seq < a.applied {
		slog.Debug("Discarding stale analytics response", "seq", seq, "applied", a.applied)
		return cloneSnapshot(a.snapshot), nil
	}
	a.applied = seq
	a.snapshot = cloneSnapshot(*snapshot)
	a.loaded = true
	a.presenter.ShowAnalytics(cloneSnapshot(a.snapshot))
	return cloneSnapshot(a.snapshot), nil
}

// Snapshot returns the last published snapshot.
func (a *AnalyticsSync) Snapshot() model.AnalyticsSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneSnapshot(a.snapshot)
}

// Loaded reports whether any pull has succeeded.
func (a *AnalyticsSync) Loaded() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loaded
}

func cloneSnapshot(s model.AnalyticsSnapshot) model.AnalyticsSnapshot {
	s.ProviderComparison = maps.Clone(s.ProviderComparison)
	return s
}
