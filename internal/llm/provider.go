package llm

import (
	"context"

	"github.com/cloudwego/eino/components/model"
	"github.com/yuhao-w/commitgen/internal/config"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GetConfig returns the resolved configuration
	GetConfig() config.Config

	// CreateChatModel creates an Eino ChatModel instance
	CreateChatModel(ctx context.Context) (model.ChatModel, error)
}

// generationParams converts the configured sampling settings into the
// pointer form the eino model configs expect.
func generationParams(cfg config.Config) (*float32, *int) {
	temperature := float32(cfg.Temperature)
	maxTokens := cfg.MaxTokens
	return &temperature, &maxTokens
}
