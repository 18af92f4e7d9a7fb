package llm

import (
	"fmt"

	"piiguard/internal/config"
	"piiguard/internal/port"
)

// ProviderFactory is a function that creates a ChatModel from the LLM config.
type ProviderFactory func(cfg *config.LLMConfig) (port.ChatModel, error)

// registry of model provider factories, populated via RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewChatModel creates a ChatModel from the LLM config using the registered factory.
func NewChatModel(cfg *config.LLMConfig) (port.ChatModel, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
