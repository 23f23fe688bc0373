// Package ai talks to an OpenAI-compatible chat completion endpoint to
// draft and polish social media posts. It never touches stored content.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JNHNG0205/ai-content-workflow/internal/config"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ErrNotConfigured is returned when no API key was provided
var ErrNotConfigured = errors.New("AI service is not configured")

// ErrEmptyCompletion is returned when the provider answered without text
var ErrEmptyCompletion = errors.New("AI provider returned no text")

// Completer sends one system+user exchange and returns the reply text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// TextGenerator is the contract the service layer depends on
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Refine(ctx context.Context, content, instruction string) (string, error)
}

// OpenAICompleter calls the chat completions API through openai-go
type OpenAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter builds a completer for cfg. Retries are disabled so a
// failing provider surfaces immediately to the caller.
func NewOpenAICompleter(cfg config.AIConfig) *OpenAICompleter {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &OpenAICompleter{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Complete implements Completer
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Writer drafts and refines posts. A nil completer means the service is
// not configured and every call fails with ErrNotConfigured.
type Writer struct {
	completer Completer
}

// NewWriter wraps a completer
func NewWriter(c Completer) *Writer {
	return &Writer{completer: c}
}

// NewFromConfig returns a Writer backed by the OpenAI-compatible API, or an
// unconfigured Writer when no API key is set.
func NewFromConfig(cfg config.AIConfig) *Writer {
	if !cfg.AIEnabled() {
		return NewWriter(nil)
	}
	return NewWriter(NewOpenAICompleter(cfg))
}

// Configured reports whether calls can reach a provider
func (w *Writer) Configured() bool {
	return w.completer != nil
}

// Generate drafts a post from a free-form prompt
func (w *Writer) Generate(ctx context.Context, prompt string) (string, error) {
	return w.run(ctx, GeneratePrompt(prompt))
}

// Refine rewrites existing text, optionally following an instruction
func (w *Writer) Refine(ctx context.Context, content, instruction string) (string, error) {
	return w.run(ctx, RefinePrompt(content, instruction))
}

func (w *Writer) run(ctx context.Context, user string) (string, error) {
	if w.completer == nil {
		return "", ErrNotConfigured
	}
	raw, err := w.completer.Complete(ctx, Persona, user)
	if err != nil {
		return "", err
	}
	return CleanPostText(raw), nil
}
