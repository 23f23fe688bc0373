package service

import (
	"context"
	"errors"

	"github.com/JNHNG0205/ai-content-workflow/internal/ai"
	"github.com/JNHNG0205/ai-content-workflow/internal/apperr"
	"github.com/JNHNG0205/ai-content-workflow/internal/metrics"
	"github.com/JNHNG0205/ai-content-workflow/internal/models"
	"github.com/JNHNG0205/ai-content-workflow/internal/policy"
	"github.com/JNHNG0205/ai-content-workflow/internal/validation"
	"github.com/rs/zerolog"
)

// aiService is the concrete implementation of AIService
type aiService struct {
	writer ai.TextGenerator
	log    zerolog.Logger
}

func newAIService(writer ai.TextGenerator, log zerolog.Logger) *aiService {
	return &aiService{
		writer: writer,
		log:    log.With().Str("service", "ai").Logger(),
	}
}

// NewAIService creates an AI service over a text generator
func NewAIService(writer ai.TextGenerator, log zerolog.Logger) AIService {
	return newAIService(writer, log)
}

// Generate drafts post text from a prompt
func (s *aiService) Generate(ctx context.Context, who models.Identity, prompt string) (text string, err error) {
	defer s.record(policy.OpGenerateText, &err)

	if err := policy.Authorize(who.Role, policy.OpGenerateText); err != nil {
		return "", err
	}
	if errs := validation.ValidatePrompt(prompt); len(errs) > 0 {
		return "", apperr.Validation("invalid prompt", errs)
	}

	text, err = s.writer.Generate(ctx, prompt)
	if err != nil {
		return "", s.upstream("generate", err)
	}
	return text, nil
}

// Refine rewrites existing text with an optional instruction
func (s *aiService) Refine(ctx context.Context, who models.Identity, content, instruction string) (text string, err error) {
	defer s.record(policy.OpRefineText, &err)

	if err := policy.Authorize(who.Role, policy.OpRefineText); err != nil {
		return "", err
	}
	if errs := validation.ValidateRefine(content, instruction); len(errs) > 0 {
		return "", apperr.Validation("invalid refine request", errs)
	}

	text, err = s.writer.Refine(ctx, content, instruction)
	if err != nil {
		return "", s.upstream("refine", err)
	}
	return text, nil
}

func (s *aiService) upstream(action string, err error) error {
	if errors.Is(err, ai.ErrNotConfigured) {
		return apperr.Upstream(ai.ErrNotConfigured.Error(), err)
	}
	s.log.Error().Err(err).Str("action", action).Msg("AI provider call failed")
	return apperr.Upstream("Failed to "+action+" content", err)
}

func (s *aiService) record(op policy.Operation, err *error) {
	metrics.AIRequestsTotal.WithLabelValues(string(op), outcome(*err)).Inc()
}
