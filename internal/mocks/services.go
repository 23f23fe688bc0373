package mocks

import (
	"context"
	"sync"

	"github.com/JNHNG0205/ai-content-workflow/internal/ai"
)

// MockTextGenerator is a mock implementation of ai.TextGenerator
type MockTextGenerator struct {
	mu           sync.Mutex
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	RefineFunc   func(ctx context.Context, content, instruction string) (string, error)
	Prompts      []string
	Refined      []string
}

// Verify interface compliance
var _ ai.TextGenerator = (*MockTextGenerator)(nil)

func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "Generated: " + prompt, nil
}

func (m *MockTextGenerator) Refine(ctx context.Context, content, instruction string) (string, error) {
	m.mu.Lock()
	m.Refined = append(m.Refined, content)
	m.mu.Unlock()
	if m.RefineFunc != nil {
		return m.RefineFunc(ctx, content, instruction)
	}
	return "Refined: " + content, nil
}
