package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/yuhao-w/commitgen/internal/config"
)

const (
	// GrokDefaultBaseURL is the default API base URL for Grok
	GrokDefaultBaseURL = "https://api.x.ai/v1"
)

// GrokProvider implements Provider for xAI Grok
// Grok uses OpenAI-compatible API
type GrokProvider struct {
	cfg config.Config
}

// NewGrokProvider creates a new Grok provider
func NewGrokProvider(cfg config.Config) *GrokProvider {
	// Set default base URL if not specified
	if cfg.BaseURL == "" {
		cfg.BaseURL = GrokDefaultBaseURL
	}
	return &GrokProvider{cfg: cfg}
}

// Name returns the provider name
func (p *GrokProvider) Name() string {
	return "grok"
}

// GetConfig returns the resolved configuration
func (p *GrokProvider) GetConfig() config.Config {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel for Grok
func (p *GrokProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	temperature, maxTokens := generationParams(p.cfg)
	cfg := &openai.ChatModelConfig{
		APIKey:      p.cfg.APIKey,
		Model:       p.cfg.Model,
		BaseURL:     p.cfg.BaseURL,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	return openai.NewChatModel(ctx, cfg)
}
