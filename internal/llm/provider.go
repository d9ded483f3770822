// Package llm holds the language-model providers the dev backend answers with.
package llm

import (
	"context"
	"fmt"
	"strings"

	"supportbot/internal/model"
)

// SystemPrompt frames every provider as a support assistant.
const SystemPrompt = "You are a helpful customer support assistant. Answer clearly and concisely."

// Provider generates a reply to one user message.
type Provider interface {
	Name() string
	Available() bool
	APIKeyConfigured() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// EchoProvider answers deterministically without any external service.
type EchoProvider struct{}

func (EchoProvider) Name() string           { return "echo" }
func (EchoProvider) Available() bool        { return true }
func (EchoProvider) APIKeyConfigured() bool { return true }

func (EchoProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Thanks for reaching out! You asked: %q. A support specialist will follow up if needed.", strings.TrimSpace(prompt)), nil
}

// Registry is the ordered set of providers the backend exposes.
type Registry struct {
	providers []Provider
}

func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: providers}
}

// Get returns the provider with the given name.
func (r *Registry) Get(name string) (Provider, bool) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Describe lists every provider in registration order.
func (r *Registry) Describe() []model.ProviderDescriptor {
	out := make([]model.ProviderDescriptor, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, model.ProviderDescriptor{
			Name:             p.Name(),
			Available:        p.Available(),
			APIKeyConfigured: p.APIKeyConfigured(),
		})
	}
	return out
}
