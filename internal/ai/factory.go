package ai

import (
	"fmt"

	"upkeep/internal/config"
	"upkeep/internal/port"
)

// ProviderFactory is a function that creates an AIClient from a provider config.
type ProviderFactory func(cfg *config.AIProviderConfig) (port.AIClient, error)

// registry of provider factories, populated by the providers package.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewProvider creates an AIClient from a provider config using the registered factory.
func NewProvider(cfg *config.AIProviderConfig) (port.AIClient, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown AI provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewClient builds the fallback chain for every configured provider slot.
// A chain with no usable provider is returned anyway; it reports
// IsAvailable() == false so callers can fail fast.
func NewClient(cfg *config.AIConfig) (*FallbackClient, error) {
	var clients []port.AIClient
	var names []string
	for _, pc := range cfg.Providers() {
		c, err := NewProvider(pc)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
		names = append(names, pc.Provider)
	}
	return NewFallbackClient(clients, names), nil
}
