// Package controller holds the client-side chat session: provider selection,
// chat turns, the rating workflow and the analytics and history feeds. Every
// component shares one *Session and paints through an interfaces.Presenter.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"supportbot/internal/config"
	app_errors "supportbot/internal/errors"
	"supportbot/internal/events"
	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

const initFailedText = "Failed to initialize application. Please refresh the page."

// Options tunes a Controller. The zero value is usable; see DefaultOptions.
type Options struct {
	HistoryLimit     int
	NoticeDuration   time.Duration
	RefreshDebounce  time.Duration
	SequencedRefresh bool
	SerializeSends   bool
	// NewSessionID overrides session id generation, mainly for tests.
	NewSessionID func() string
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		HistoryLimit:     DefaultHistoryLimit,
		NoticeDuration:   5 * time.Second,
		SequencedRefresh: true,
	}
}

// OptionsFromConfig maps the loaded configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		HistoryLimit:     cfg.HistoryLimit,
		NoticeDuration:   cfg.NoticeDuration,
		RefreshDebounce:  cfg.RefreshDebounce,
		SequencedRefresh: cfg.SequencedRefresh,
		SerializeSends:   cfg.SerializeSends,
	}
}

// Controller wires the session components together and turns presenter
// events into operations.
type Controller struct {
	presenter interfaces.Presenter

	session    *Session
	transcript *Transcript
	catalog    *ProviderCatalog
	exchange   *ExchangeController
	rating     *RatingController
	analytics  *AnalyticsSync
	history    *HistorySync
	refresher  *Refresher

	ops sync.WaitGroup
}

func New(backend interfaces.Backend, presenter interfaces.Presenter, opts Options) *Controller {
	session := NewSession(opts.NewSessionID)
	transcript := NewTranscript(presenter)
	analytics := NewAnalyticsSync(backend, presenter, opts.SequencedRefresh)
	history := NewHistorySync(backend, presenter, opts.HistoryLimit, opts.SequencedRefresh)
	refresher := NewRefresher(analytics, history, opts.RefreshDebounce)

	return &Controller{
		presenter:  presenter,
		session:    session,
		transcript: transcript,
		catalog:    NewProviderCatalog(backend, session, transcript, presenter),
		exchange:   NewExchangeController(backend, session, transcript, refresher, opts.SerializeSends),
		rating:     NewRatingController(backend, session, history, presenter, refresher, opts.NoticeDuration),
		analytics:  analytics,
		history:    history,
		refresher:  refresher,
	}
}

// Initialize disables input, then fetches providers, analytics and history in
// parallel. Only a provider failure is returned; it also raises a blocking
// notice since no session is usable without providers.
func (c *Controller) Initialize(ctx context.Context) error {
	c.presenter.SetInputEnabled(false)

	var g errgroup.Group
	g.Go(func() error {
		_, err := c.catalog.Fetch(ctx)
		return err
	})
	g.Go(func() error {
		_, _ = c.analytics.Refresh(ctx)
		return nil
	})
	g.Go(func() error {
		_, _ = c.history.Refresh(ctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		slog.Error("Initialization failed", "session_id", c.session.ID(), "error", err)
		c.presenter.ShowNotice(model.Notice{Text: initFailedText, Kind: model.NoticeBlocking})
		return err
	}
	slog.Info("Session initialized", "session_id", c.session.ID())
	return nil
}

// Dispatch handles one event. Events whose preconditions do not hold are
// ignored and return nil.
func (c *Controller) Dispatch(ctx context.Context, ev events.Event) error {
	var err error
	switch e := ev.(type) {
	case events.ProviderChosen:
		err = c.catalog.Select(e.Provider)
	case events.SendRequested:
		_, err = c.exchange.Send(ctx, e.Text)
	case events.StarSelected:
		err = c.rating.SelectScore(e.Score)
	case events.FeedbackChanged:
		err = c.rating.SetFeedback(e.Text)
	case events.RatingSubmitRequested:
		_, err = c.rating.Submit(ctx)
	case events.RatingDismissed:
		c.rating.Close()
	case events.TabSwitched:
		c.presenter.ShowTab(e.Tab)
	case events.HistoricalRateRequested:
		err = c.rating.Open(e.ConversationID)
	case events.TurnRateRequested:
		id := e.ConversationID
		if id == "" {
			id = c.session.ActiveConversation()
		}
		err = c.rating.Open(id)
	default:
		err = fmt.Errorf("%w: unhandled event %T", app_errors.ErrInternal, ev)
	}

	return ignorePrecondition(ev, err)
}

// ignorePrecondition drops app_errors.ErrPreconditionNotMet, which marks an
// event that had nothing to do.
func ignorePrecondition(ev events.Event, err error) error {
	if errors.Is(err, app_errors.ErrPreconditionNotMet) {
		slog.Debug("Ignoring event", "event", ev.Name(), "reason", err)
		return nil
	}
	return err
}

// Run dispatches events from ch until ch is closed or ctx is done. Chat
// requests and rating submits run concurrently so a slow backend does not
// hold up the rest of the stream; user turns still appear in stream order. Run returns once every operation it started settles.
func (c *Controller) Run(ctx context.Context, ch <-chan events.Event) error {
	defer c.ops.Wait()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case events.SendRequested:
				// The user turn is appended here, in stream order; only the
				// request runs in the background.
				p, err := c.exchange.begin(e.Text)
				if err = ignorePrecondition(ev, err); err != nil {
					slog.Warn("Event failed", "event", ev.Name(), "error", err)
				}
				if p == nil {
					continue
				}
				c.ops.Add(1)
				go func() {
					defer c.ops.Done()
					c.exchange.complete(ctx, p)
				}()
			case events.RatingSubmitRequested:
				c.ops.Add(1)
				go func() {
					defer c.ops.Done()
					c.dispatchLogged(ctx, ev)
				}()
			default:
				c.dispatchLogged(ctx, ev)
			}
		}
	}
}

func (c *Controller) dispatchLogged(ctx context.Context, ev events.Event) {
	if err := c.Dispatch(ctx, ev); err != nil {
		slog.Warn("Event failed", "event", ev.Name(), "error", err)
	}
}

// Wait blocks until every background operation and refresh has settled.
func (c *Controller) Wait() {
	c.ops.Wait()
	c.refresher.Wait()
}

func (c *Controller) Session() *Session             { return c.session }
func (c *Controller) Transcript() *Transcript       { return c.transcript }
func (c *Controller) Catalog() *ProviderCatalog     { return c.catalog }
func (c *Controller) Exchange() *ExchangeController { return c.exchange }
func (c *Controller) Rating() *RatingController     { return c.rating }
func (c *Controller) Analytics() *AnalyticsSync     { return c.analytics }
func (c *Controller) History() *HistorySync         { return c.history }
func (c *Controller) Refresher() *Refresher         { return c.refresher }
