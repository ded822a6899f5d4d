package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"backend_architect/config"
	"backend_architect/internal/types"
)

const oneFileResult = `{
  "files": [{"path": "app/main.py", "content": "from fastapi import FastAPI\napp = FastAPI()"}],
  "explanation": "A single FastAPI app.",
  "dependencies": ["fastapi", "uvicorn"],
  "setupSteps": ["pip install -r requirements.txt", "uvicorn app.main:app"]
}`

type fakeModels struct {
	calls  int
	model  string
	text   string
	config *genai.GenerateContentConfig
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.text = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func newTestGemini(models *fakeModels, gotKey *string) *GeminiGenerator {
	g := NewGeminiGenerator("", func() string { return "key-1" })
	g.connect = func(ctx context.Context, apiKey string) (contentGenerator, error) {
		if gotKey != nil {
			*gotKey = apiKey
		}
		return models, nil
	}
	return g
}

func TestGeminiGeneratorSuccess(t *testing.T) {
	models := &fakeModels{resp: textResponse(oneFileResult[:40], oneFileResult[40:])}
	var key string
	g := newTestGemini(models, &key)

	code, err := g.GenerateBackendCode(context.Background(), "Add a GET /time route", types.FastAPI)
	require.NoError(t, err)

	assert.Equal(t, 1, models.calls)
	assert.Equal(t, "key-1", key)
	assert.Equal(t, "gemini-3-pro-preview", models.model)
	assert.Contains(t, models.text, "Add a GET /time route")
	assert.Contains(t, models.text, "SQLAlchemy")

	require.NotNil(t, models.config)
	assert.Equal(t, "application/json", models.config.ResponseMIMEType)
	require.NotNil(t, models.config.ResponseSchema)
	assert.ElementsMatch(t, []string{"files", "explanation", "dependencies", "setupSteps"}, models.config.ResponseSchema.Required)
	require.NotNil(t, models.config.SystemInstruction)
	assert.Contains(t, models.config.SystemInstruction.Parts[0].Text, "FastAPI")

	require.Len(t, code.Files, 1)
	assert.Equal(t, "app/main.py", code.Files[0].Path)
	assert.Equal(t, []string{"fastapi", "uvicorn"}, code.Dependencies)
}

func TestGeminiGeneratorFailuresShareOneKind(t *testing.T) {
	cases := map[string]*fakeModels{
		"provider error": {err: errors.New("403 API key not valid")},
		"no candidates":  {resp: &genai.GenerateContentResponse{}},
		"empty text":     {resp: textResponse("")},
		"not json":       {resp: textResponse("sorry, I can't")},
		"shape mismatch": {resp: textResponse(`{"files": []}`)},
	}
	for name, models := range cases {
		t.Run(name, func(t *testing.T) {
			g := newTestGemini(models, nil)
			code, err := g.GenerateBackendCode(context.Background(), "p", types.Django)
			assert.Nil(t, code)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, 1, models.calls)
		})
	}
}

func TestGeminiGeneratorConnectError(t *testing.T) {
	g := NewGeminiGenerator("gemini-2.5-pro", nil)
	g.connect = func(ctx context.Context, apiKey string) (contentGenerator, error) {
		assert.Empty(t, apiKey)
		return nil, errors.New("missing key")
	}
	_, err := g.GenerateBackendCode(context.Background(), "p", types.FastAPI)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, "Gemini:gemini-2.5-pro", g.Name())
}

type fakeChat struct {
	calls int
	req   openai.ChatCompletionRequest
	resp  openai.ChatCompletionResponse
	err   error
}

func (f *fakeChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.req = req
	return f.resp, f.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
		{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
	}}
}

func TestOpenAIGeneratorSuccess(t *testing.T) {
	chat := &fakeChat{resp: chatResponse("```json\n" + oneFileResult + "\n```")}
	var key string
	g := NewOpenAIGenerator("", func() string { return "sk-live" })
	g.newClient = func(apiKey string) chatCompleter {
		key = apiKey
		return chat
	}

	code, err := g.GenerateBackendCode(context.Background(), "Add a GET /time route", types.Firebase)
	require.NoError(t, err)
	require.Len(t, code.Files, 1)

	assert.Equal(t, "sk-live", key)
	assert.Equal(t, openai.GPT4o, chat.req.Model)
	require.Len(t, chat.req.Messages, 2)
	assert.Contains(t, chat.req.Messages[0].Content, "Firebase")
	assert.Contains(t, chat.req.Messages[1].Content, "Add a GET /time route")

	require.NotNil(t, chat.req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, chat.req.ResponseFormat.Type)
	require.NotNil(t, chat.req.ResponseFormat.JSONSchema)
	assert.True(t, chat.req.ResponseFormat.JSONSchema.Strict)

	raw, err := json.Marshal(chat.req.ResponseFormat.JSONSchema.Schema)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"setupSteps"`)
	assert.Contains(t, string(raw), `"additionalProperties":false`)
}

func TestOpenAIGeneratorFailures(t *testing.T) {
	cases := map[string]*fakeChat{
		"api error":  {err: &openai.APIError{HTTPStatusCode: 401, Message: "bad key"}},
		"no choices": {resp: openai.ChatCompletionResponse{}},
		"bad json":   {resp: chatResponse(`{"files": "nope"}`)},
	}
	for name, chat := range cases {
		t.Run(name, func(t *testing.T) {
			g := NewOpenAIGenerator("gpt-4o-mini", nil)
			g.newClient = func(string) chatCompleter { return chat }
			_, err := g.GenerateBackendCode(context.Background(), "p", types.FastAPI)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Equal(t, 1, chat.calls)
		})
	}
}

func TestNewSelectsProvider(t *testing.T) {
	g, err := New(config.Config{LLMProvider: "gemini", GeminiModel: "gemini-2.5-flash"})
	require.NoError(t, err)
	assert.IsType(t, &GeminiGenerator{}, g)

	g, err = New(config.Config{LLMProvider: "OpenAI"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIGenerator{}, g)

	_, err = New(config.Config{LLMProvider: "claude"})
	assert.Error(t, err)
}
