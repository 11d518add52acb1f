package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/yuhao-w/commitgen/internal/config"
)

// OpenAIProvider implements Provider for OpenAI API
type OpenAIProvider struct {
	cfg config.Config
}

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(cfg config.Config) *OpenAIProvider {
	return &OpenAIProvider{cfg: cfg}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// GetConfig returns the resolved configuration
func (p *OpenAIProvider) GetConfig() config.Config {
	return p.cfg
}

// CreateChatModel creates an Eino ChatModel for OpenAI
func (p *OpenAIProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
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
