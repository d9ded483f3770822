package controller

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"unicode"
	"unicode/utf8"

	app_errors "supportbot/internal/errors"
	"supportbot/internal/interfaces"
	"supportbot/internal/model"
)

const unavailableHint = "API key not configured"

// ProviderCatalog holds the providers fetched at start-up and validates the
// user's choice among them.
type ProviderCatalog struct {
	backend    interfaces.Backend
	session    *Session
	transcript *Transcript
	presenter  interfaces.Presenter

	mu           sync.RWMutex
	providers    []model.ProviderDescriptor
	inputEnabled bool
}

func NewProviderCatalog(backend interfaces.Backend, session *Session, transcript *Transcript, presenter interfaces.Presenter) *ProviderCatalog {
	return &ProviderCatalog{
		backend:    backend,
		session:    session,
		transcript: transcript,
		presenter:  presenter,
	}
}

// Fetch loads the provider list and publishes it as picker options. On
// failure the catalog is left empty, an empty option list is published and
// the error (wrapping app_errors.ErrNetwork) is returned.
func (c *ProviderCatalog) Fetch(ctx context.Context) ([]model.ProviderDescriptor, error) {
	providers, err := c.backend.Providers(ctx)
	if err != nil {
		providers = nil
	}

	c.mu.Lock()
	c.providers = slices.Clone(providers)
	c.presenter.ShowProviderOptions(providerOptions(providers))
	c.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("could not fetch providers: %w", err)
	}
	slog.Info("Loaded providers", "count", len(providers))
	return slices.Clone(providers), nil
}

// Providers returns the last fetched provider list.
func (c *ProviderCatalog) Providers() []model.ProviderDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.providers)
}

// Select makes name the session's provider. It fails with
// app_errors.ErrInvalidSelection when name is unknown or unavailable. The
// first successful selection enables the input surface.
func (c *ProviderCatalog) Select(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := slices.IndexFunc(c.providers, func(p model.ProviderDescriptor) bool { return p.Name == name })
	if idx < 0 {
		return fmt.Errorf("%w: unknown provider %q", app_errors.ErrInvalidSelection, name)
	}
	if !c.providers[idx].Available {
		return fmt.Errorf("%w: provider %q is not available", app_errors.ErrInvalidSelection, name)
	}

	c.session.setProvider(name)
	c.presenter.ShowSessionBanner(ProviderLabel(name))
	c.transcript.Append(model.Turn{
		Role: model.RoleBot,
		Text: fmt.Sprintf("Hello! I'm your %s powered customer support assistant. How can I help you today?", name),
	})
	if !c.inputEnabled {
		c.inputEnabled = true
		c.presenter.SetInputEnabled(true)
	}

	slog.Info("Provider selected", "provider", name, "session_id", c.session.ID())
	return nil
}

// InputEnabled reports whether a provider has ever been selected.
func (c *ProviderCatalog) InputEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputEnabled
}

// ProviderLabel capitalises a provider name for display.
func ProviderLabel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

func providerOptions(providers []model.ProviderDescriptor) []model.ProviderOption {
	options := make([]model.ProviderOption, 0, len(providers))
	for _, p := range providers {
		opt := model.ProviderOption{Name: p.Name, Label: ProviderLabel(p.Name), Enabled: p.Available}
		if !p.Available {
			opt.Hint = unavailableHint
		}
		options = append(options, opt)
	}
	return options
}
