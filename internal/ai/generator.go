package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"backend_architect/config"
	"backend_architect/internal/types"
)

var (
	// ErrGenerationFailed is the single error kind surfaced to callers; the cause is wrapped.
	ErrGenerationFailed = errors.New("generation failed")
	ErrEmptyResponse    = errors.New("no response from AI service")
	ErrInvalidResponse  = errors.New("invalid response format from AI")
	ErrNoResult         = errors.New("generator returned no result")
)

// Generator turns a backend description into a project scaffold for one framework.
type Generator interface {
	GenerateBackendCode(ctx context.Context, prompt string, framework types.Framework) (*types.GeneratedCode, error)
}

// Provider represents the LLM provider type
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// New creates the generator selected by cfg.LLMProvider.
func New(cfg config.Config) (Generator, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(cfg.LLMProvider))) {
	case ProviderGemini, "":
		return NewGeminiGenerator(cfg.GeminiModel, cfg.GeminiKeySource()), nil
	case ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIModel, cfg.OpenAIKeySource()), nil
	default:
		return nil, fmt.Errorf("unsupported LLM_PROVIDER: %s (supported: gemini, openai)", cfg.LLMProvider)
	}
}

func failed(err error) error {
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}
