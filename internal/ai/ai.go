// Package ai wraps chat completion providers behind a fallback chain that
// always produces an answer.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	RoleSystem    = openai.ChatMessageRoleSystem
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// FallbackText is returned when every provider failed.
const FallbackText = `I am sorry, but I am currently unable to reach the AI services. Here are some general suggestions based on your request:

1. Take time to think about your objective and break it down into small, achievable steps.
2. Set realistic deadlines for each step.
3. Track your progress regularly and adjust your approach when needed.
4. Do not hesitate to ask for help or advice from people experienced in your field.

Please try your request again in a few moments.`

var ErrEmptyResponse = errors.New("provider returned no choices")

type Message struct {
	Role    string
	Content string
}

type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	name   string
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAIProvider {
	return &OpenAIProvider{
		name:   "openai",
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// NewDeepSeek targets DeepSeek's OpenAI-compatible API.
func NewDeepSeek(apiKey, baseURL, model string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &OpenAIProvider{
		name:   "deepseek",
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return p.name }

func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0.7,
		MaxTokens:   1000,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s completion: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s completion: %w", p.name, ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Chain tries providers in order.
type Chain struct {
	providers []Provider
	timeout   time.Duration
}

// NewChain skips nil providers. timeout bounds each provider call; zero means
// no bound beyond ctx.
func NewChain(timeout time.Duration, providers ...Provider) *Chain {
	c := &Chain{timeout: timeout}
	for _, p := range providers {
		if p != nil {
			c.providers = append(c.providers, p)
		}
	}
	return c
}

// Complete returns the first successful answer, or FallbackText. It never fails.
func (c *Chain) Complete(ctx context.Context, messages []Message) string {
	for _, p := range c.providers {
		reply, err := c.try(ctx, p, messages)
		if err == nil {
			return reply
		}
		slog.Warn("ai provider failed, trying next", "provider", p.Name(), "error", err)
	}
	slog.Error("all ai providers failed, using fallback text", "providers", len(c.providers))
	return FallbackText
}

func (c *Chain) try(ctx context.Context, p Provider, messages []Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return p.Complete(ctx, messages)
}
