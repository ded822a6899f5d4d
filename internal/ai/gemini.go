package ai

import (
	"context"
	"errors"
	"log"
	"strings"

	"google.golang.org/genai"

	"backend_architect/internal/ai/prompts"
	"backend_architect/internal/types"
)

// contentGenerator is the slice of *genai.Models the generator needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiGenerator requests schema-constrained JSON from the Gemini API.
// A client is built per call so the key is read at call time.
type GeminiGenerator struct {
	model   string
	apiKey  func() string
	connect func(ctx context.Context, apiKey string) (contentGenerator, error)
}

func NewGeminiGenerator(model string, apiKey func() string) *GeminiGenerator {
	if model == "" {
		model = "gemini-3-pro-preview"
	}
	return &GeminiGenerator{
		model:   model,
		apiKey:  apiKey,
		connect: connectGemini,
	}
}

func connectGemini(ctx context.Context, apiKey string) (contentGenerator, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return cli.Models, nil
}

func (g *GeminiGenerator) Name() string { return "Gemini:" + g.model }

// GenerateBackendCode issues exactly one GenerateContent call.
func (g *GeminiGenerator) GenerateBackendCode(ctx context.Context, userPrompt string, framework types.Framework) (*types.GeneratedCode, error) {
	fullPrompt, systemInstruction := prompts.GetBackendGenerationPrompt(userPrompt, framework)

	key := ""
	if g.apiKey != nil {
		key = g.apiKey()
	}
	models, err := g.connect(ctx, key)
	if err != nil {
		return nil, failed(err)
	}

	log.Printf("Requesting %s blueprint from %s (%d prompt bytes)", framework, g.Name(), len(fullPrompt))
	resp, err := models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: fullPrompt}}}},
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemInstruction}}},
			ResponseMIMEType:  "application/json",
			ResponseSchema:    blueprintSchema(),
			Temperature:       genai.Ptr[float32](0.3),
		},
	)
	if err != nil {
		return nil, failed(err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, failed(ErrEmptyResponse)
	}
	code, err := decodeGeneratedCode(text)
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			log.Printf("Failed to parse AI response: %s", text)
		}
		return nil, failed(err)
	}
	return code, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
