package ai

import (
	"context"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"backend_architect/internal/ai/prompts"
	"backend_architect/internal/types"
)

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator is the alternate provider, using a strict json_schema response format.
type OpenAIGenerator struct {
	model     string
	apiKey    func() string
	newClient func(apiKey string) chatCompleter
}

func NewOpenAIGenerator(model string, apiKey func() string) *OpenAIGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &OpenAIGenerator{
		model:  model,
		apiKey: apiKey,
		newClient: func(apiKey string) chatCompleter {
			return openai.NewClient(apiKey)
		},
	}
}

func (g *OpenAIGenerator) Name() string { return "OpenAI:" + g.model }

func (g *OpenAIGenerator) GenerateBackendCode(ctx context.Context, userPrompt string, framework types.Framework) (*types.GeneratedCode, error) {
	fullPrompt, systemInstruction := prompts.GetBackendGenerationPrompt(userPrompt, framework)

	key := ""
	if g.apiKey != nil {
		key = g.apiKey()
	}
	client := g.newClient(key)

	log.Printf("Requesting %s blueprint from %s (%d prompt bytes)", framework, g.Name(), len(fullPrompt))
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: fullPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "backend_blueprint",
				Schema: blueprintDefinition(),
				Strict: true,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, failed(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("OpenAI usage for failed request: %+v", resp.Usage)
		return nil, failed(ErrEmptyResponse)
	}

	code, err := decodeGeneratedCode(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("Failed to parse AI response: %s", resp.Choices[0].Message.Content)
		return nil, failed(err)
	}
	return code, nil
}
