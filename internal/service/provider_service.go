package service

import (
	"supportbot/internal/llm"
	"supportbot/internal/model"
)

// ProviderService handles the business logic for provider discovery.
type ProviderService struct {
	registry *llm.Registry
}

// NewProviderService creates a new ProviderService.
func NewProviderService(registry *llm.Registry) *ProviderService {
	return &ProviderService{registry: registry}
}

// List returns every provider with its availability.
func (s *ProviderService) List() []model.ProviderDescriptor {
	return s.registry.Describe()
}
