package ai

import (
	"github.com/sashabaranov/go-openai/jsonschema"
	"google.golang.org/genai"
)

const (
	filesDescription        = "List of all files in the project structure"
	pathDescription         = "The relative path of the file (e.g., app/models.py)"
	contentDescription      = "The full source code or configuration of the file"
	explanationDescription  = "A detailed explanation of the architecture, database schema, and migration or deployment strategy"
	dependenciesDescription = "Packages the project requires, in the framework's package manager naming"
	setupStepsDescription   = "Terminal commands for environment setup, database initialization, and running the app"
)

var requiredFields = []string{"files", "explanation", "dependencies", "setupSteps"}

// blueprintSchema is the Gemini response schema for a generated scaffold.
func blueprintSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"files": {
				Type:        genai.TypeArray,
				Description: filesDescription,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"path":    {Type: genai.TypeString, Description: pathDescription},
						"content": {Type: genai.TypeString, Description: contentDescription},
					},
					Required: []string{"path", "content"},
				},
			},
			"explanation": {Type: genai.TypeString, Description: explanationDescription},
			"dependencies": {
				Type:        genai.TypeArray,
				Description: dependenciesDescription,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"setupSteps": {
				Type:        genai.TypeArray,
				Description: setupStepsDescription,
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: requiredFields,
	}
}

// blueprintDefinition mirrors blueprintSchema for OpenAI strict json_schema output.
func blueprintDefinition() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"files": {
				Type:        jsonschema.Array,
				Description: filesDescription,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"path":    {Type: jsonschema.String, Description: pathDescription},
						"content": {Type: jsonschema.String, Description: contentDescription},
					},
					Required:             []string{"path", "content"},
					AdditionalProperties: false,
				},
			},
			"explanation": {Type: jsonschema.String, Description: explanationDescription},
			"dependencies": {
				Type:        jsonschema.Array,
				Description: dependenciesDescription,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
			"setupSteps": {
				Type:        jsonschema.Array,
				Description: setupStepsDescription,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
			},
		},
		Required:             requiredFields,
		AdditionalProperties: false,
	}
}
