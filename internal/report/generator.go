package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrDisabled is returned when no API key is configured.
var ErrDisabled = errors.New("report generation disabled: no API key")

// Generator calls an OpenAI-compatible chat completion endpoint.
type Generator struct {
	client *openai.Client
	Model  string
}

// NewGenerator builds a Generator. An empty apiKey yields a disabled Generator
// whose Generate always returns ErrDisabled.
func NewGenerator(apiKey, baseURL, model string) *Generator {
	if apiKey == "" {
		return &Generator{Model: model}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: 120 * time.Second}
	return &Generator{client: openai.NewClientWithConfig(cfg), Model: model}
}

// Enabled reports whether an API key was configured.
func (g *Generator) Enabled() bool { return g != nil && g.client != nil }

// Generate sends prompt with the analyst system role and returns the reply text.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Enabled() {
		return "", ErrDisabled
	}
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
