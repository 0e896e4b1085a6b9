// Package providers registers the concrete AI clients with the ai factory.
package providers

import (
	"upkeep/internal/ai"
	"upkeep/internal/ai/claude"
	"upkeep/internal/ai/gemini"
	"upkeep/internal/ai/openai"
	"upkeep/internal/config"
	"upkeep/internal/port"
)

func init() {
	ai.RegisterProvider("openai", func(cfg *config.AIProviderConfig) (port.AIClient, error) {
		return openai.NewClient(cfg), nil
	})
	ai.RegisterProvider("claude", func(cfg *config.AIProviderConfig) (port.AIClient, error) {
		return claude.NewClient(cfg), nil
	})
	ai.RegisterProvider("gemini", func(cfg *config.AIProviderConfig) (port.AIClient, error) {
		return gemini.NewClient(cfg), nil
	})
}

// NewClient builds the provider fallback chain with every known provider registered.
func NewClient(cfg *config.AIConfig) (*ai.FallbackClient, error) {
	return ai.NewClient(cfg)
}
