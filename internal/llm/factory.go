package llm

import (
	"fmt"

	"github.com/yuhao-w/commitgen/internal/config"
)

// ProviderFactory creates LLM providers based on configuration
type ProviderFactory struct{}

// NewProviderFactory creates a new ProviderFactory
func NewProviderFactory() *ProviderFactory {
	return &ProviderFactory{}
}

// Create creates a Provider based on the configuration
func (f *ProviderFactory) Create(cfg config.Config) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg), nil
	case "deepseek":
		return NewDeepseekProvider(cfg), nil
	case "ollama":
		return NewOllamaProvider(cfg), nil
	case "gemini":
		return NewGeminiProvider(cfg), nil
	case "grok":
		return NewGrokProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
