// Package llm provides the text-generation client used to turn raw
// track metadata into announcement text.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/heraldfm/herald/internal/domain"
)

// Completer is the narrow surface the announcer needs: one prompt pair
// in, one plain string out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithMaxTokens sets the response token limit.
func WithMaxTokens(n int) ClientOption {
	return func(c *Client) { c.maxTokens = n }
}

// WithTimeout bounds each completion request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// Compile-time interface check.
var _ Completer = (*Client)(nil)

// Client wraps the OpenAI chat-completions API. Temperature is pinned
// to zero so the same track always yields the same announcement text.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	log       *log.Logger
}

// NewClient creates a text-generation client.
func NewClient(apiKey string, logger *log.Logger, opts ...ClientOption) *Client {
	c := &Client{
		api:       openai.NewClient(apiKey),
		model:     openai.GPT4oMini,
		maxTokens: 200,
		timeout:   30 * time.Second,
		log:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete sends one system+user prompt pair and returns the assistant's
// reply, trimmed. An empty reply is a failure, not a partial success.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Debug("completion request", "model", c.model, "user", userPrompt)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: %w", domain.ErrEmptyCompletion)
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", fmt.Errorf("llm: %w", domain.ErrEmptyCompletion)
	}

	c.log.Debug("completion reply", "chars", len(reply))
	return reply, nil
}
