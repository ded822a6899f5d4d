package utils

import (
	"path/filepath"
	"strings"
)

// DetermineFileType labels a generated file for display, based on its path.
func DetermineFileType(filename string) string {
	lowerFilename := strings.ToLower(filename)
	base := filepath.Base(lowerFilename)

	// Name-based matches take precedence over extensions.
	switch {
	case base == "dockerfile" || strings.HasPrefix(base, "dockerfile."):
		return "Dockerfile"
	case strings.HasPrefix(base, "docker-compose"):
		return "Compose"
	case base == "requirements.txt" || strings.HasPrefix(base, "requirements-"):
		return "Requirements"
	case base == ".env" || strings.HasPrefix(base, ".env."):
		return "Env"
	case base == ".gitignore" || base == ".dockerignore":
		return "Ignore"
	case base == "makefile":
		return "Makefile"
	case base == "firestore.rules" || base == "storage.rules":
		return "Security Rules"
	case base == ".firebaserc":
		return "JSON"
	case strings.Contains(lowerFilename, ".github/workflows/"):
		return "Workflow"
	}

	switch filepath.Ext(lowerFilename) {
	case ".py":
		return "Python"
	case ".ts":
		return "TypeScript"
	case ".js":
		return "JavaScript"
	case ".json":
		return "JSON"
	case ".yaml", ".yml":
		return "YAML"
	case ".toml":
		return "TOML"
	case ".ini", ".cfg":
		return "INI"
	case ".sql":
		return "SQL"
	case ".md":
		return "Markdown"
	case ".sh":
		return "Shell"
	case ".html":
		return "HTML"
	case ".txt":
		return "Text"
	case ".mako":
		return "Template"
	default:
		return "Text"
	}
}
