package controller

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Refresher re-pulls analytics and history after a mutation. Pulls run in the
// background; Wait blocks until every triggered pull has settled. With a
// positive debounce, triggers that arrive within the window share one pull.
type Refresher struct {
	analytics *AnalyticsSync
	history   *HistorySync
	debounce  time.Duration

	wg   sync.WaitGroup
	runs atomic.Int64

	mu    sync.Mutex
	timer *time.Timer
}

func NewRefresher(analytics *AnalyticsSync, history *HistorySync, debounce time.Duration) *Refresher {
	return &Refresher{analytics: analytics, history: history, debounce: debounce}
}

// Trigger schedules a pull of both feeds. It never blocks. The pull outlives
// ctx's cancellation since it is not tied to the request that caused it.
func (r *Refresher) Trigger(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	if r.debounce <= 0 {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.run(ctx)
		}()
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.wg.Add(1)
	if r.timer != nil && r.timer.Stop() {
		// The pending pull never started; hand its slot back.
		r.wg.Done()
	}
	r.timer = time.AfterFunc(r.debounce, func() {
		defer r.wg.Done()
		r.run(ctx)
	})
}

// RefreshNow pulls both feeds and waits for them. Failures are already
// logged by the syncs and only the first is returned.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	r.runs.Add(1)
	var g errgroup.Group
	g.Go(func() error {
		_, err := r.analytics.Refresh(ctx)
		return err
	})
	g.Go(func() error {
		_, err := r.history.Refresh(ctx)
		return err
	})
	return g.Wait()
}

func (r *Refresher) run(ctx context.Context) {
	_ = r.RefreshNow(ctx)
}

// Wait blocks until all triggered pulls have finished.
func (r *Refresher) Wait() {
	r.wg.Wait()
}

// Runs returns how many pulls have started.
func (r *Refresher) Runs() int64 {
	return r.runs.Load()
}
