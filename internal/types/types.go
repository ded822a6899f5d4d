package types

import (
	"fmt"
	"strings"
)

// Framework is the backend stack the generated scaffold targets.
type Framework string

const (
	FastAPI  Framework = "FastAPI"
	Django   Framework = "Django"
	Firebase Framework = "Firebase"
)

// DefaultFramework is selected for new sessions when nothing is configured.
const DefaultFramework = FastAPI

var frameworks = []Framework{FastAPI, Django, Firebase}

// Frameworks returns the supported frameworks in display order.
func Frameworks() []Framework {
	out := make([]Framework, len(frameworks))
	copy(out, frameworks)
	return out
}

// ParseFramework matches s against the supported frameworks, ignoring case and surrounding space.
func ParseFramework(s string) (Framework, error) {
	s = strings.TrimSpace(s)
	for _, f := range frameworks {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported framework %q", s)
}

func (f Framework) Valid() bool {
	_, err := ParseFramework(string(f))
	return err == nil
}

func (f Framework) String() string { return string(f) }

// CodeFile is one entry of the generated file manifest.
type CodeFile struct {
	Path    string `json:"path" yaml:"path"`
	Content string `json:"content" yaml:"content"`
}

// GeneratedCode is the structured scaffold returned by the AI provider.
// Paths are not deduplicated.
type GeneratedCode struct {
	Files        []CodeFile `json:"files" yaml:"files"`
	Explanation  string     `json:"explanation" yaml:"explanation"`
	Dependencies []string   `json:"dependencies" yaml:"dependencies"`
	SetupSteps   []string   `json:"setupSteps" yaml:"setupSteps"`
}

// File returns the first file with the given path.
func (g *GeneratedCode) File(path string) (CodeFile, bool) {
	if g == nil {
		return CodeFile{}, false
	}
	for _, f := range g.Files {
		if f.Path == path {
			return f, true
		}
	}
	return CodeFile{}, false
}
