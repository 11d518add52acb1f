package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/yuhao-w/commitgen/internal/log"
)

// Usage aggregates token usage across completions
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client wraps an Eino ChatModel with retry behavior and exposes a simple
// single-prompt completion call. Each Complete is one independent exchange;
// the client keeps no conversation state, only aggregate token usage.
type Client struct {
	chatModel model.ChatModel
	retry     RetryConfig
	usage     Usage
}

// NewClient creates a new Client
func NewClient(chatModel model.ChatModel, retry RetryConfig) *Client {
	return &Client{
		chatModel: chatModel,
		retry:     retry,
	}
}

// Complete sends a single user prompt and returns the model's text response.
// Transient transport failures are retried per the retry configuration.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := WithRetryResult(ctx, c.retry, func() (*schema.Message, error) {
		return c.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	})
	if err != nil {
		return "", fmt.Errorf("model call failed: %w", err)
	}
	if msg == nil {
		return "", fmt.Errorf("model returned empty response")
	}

	c.recordUsage(msg)
	return msg.Content, nil
}

// Usage returns the aggregate token usage of all completions so far
func (c *Client) Usage() Usage {
	return c.usage
}

func (c *Client) recordUsage(msg *schema.Message) {
	if msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	u := msg.ResponseMeta.Usage
	c.usage.PromptTokens += u.PromptTokens
	c.usage.CompletionTokens += u.CompletionTokens
	c.usage.TotalTokens += u.TotalTokens
	log.DebugTokenUsage(u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}
