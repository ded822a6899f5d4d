package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"backend_architect/internal/types"
)

// wireCode mirrors types.GeneratedCode with pointers so missing properties are detectable.
type wireCode struct {
	Files        *[]wireFile `json:"files"`
	Explanation  *string     `json:"explanation"`
	Dependencies *[]string   `json:"dependencies"`
	SetupSteps   *[]string   `json:"setupSteps"`
}

type wireFile struct {
	Path    *string `json:"path"`
	Content *string `json:"content"`
}

// decodeGeneratedCode parses the model output. The result is all-or-nothing.
func decodeGeneratedCode(llmOutput string) (*types.GeneratedCode, error) {
	cleanedOutput := strings.TrimSpace(llmOutput)
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```json")
	cleanedOutput = strings.TrimPrefix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSuffix(cleanedOutput, "```")
	cleanedOutput = strings.TrimSpace(cleanedOutput)
	if cleanedOutput == "" {
		return nil, ErrEmptyResponse
	}

	var wire wireCode
	if err := json.Unmarshal([]byte(cleanedOutput), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	switch {
	case wire.Files == nil:
		return nil, fmt.Errorf("%w: missing files", ErrInvalidResponse)
	case wire.Explanation == nil:
		return nil, fmt.Errorf("%w: missing explanation", ErrInvalidResponse)
	case wire.Dependencies == nil:
		return nil, fmt.Errorf("%w: missing dependencies", ErrInvalidResponse)
	case wire.SetupSteps == nil:
		return nil, fmt.Errorf("%w: missing setupSteps", ErrInvalidResponse)
	}

	out := &types.GeneratedCode{
		Files:        make([]types.CodeFile, 0, len(*wire.Files)),
		Explanation:  *wire.Explanation,
		Dependencies: *wire.Dependencies,
		SetupSteps:   *wire.SetupSteps,
	}
	for i, f := range *wire.Files {
		if f.Path == nil || f.Content == nil {
			return nil, fmt.Errorf("%w: file %d is missing path or content", ErrInvalidResponse, i)
		}
		out.Files = append(out.Files, types.CodeFile{Path: *f.Path, Content: *f.Content})
	}
	return out, nil
}
