package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"backend_architect/internal/types"
	"backend_architect/internal/utils"
)

type outputFormat string

const (
	formatHuman outputFormat = "human"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
)

func parseFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatHuman, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (human, json, yaml)", s)
	}
}

func display(w io.Writer, result *types.GeneratedCode, framework types.Framework, format outputFormat) error {
	switch format {
	case formatJSON:
		return displayJSON(w, result)
	case formatYAML:
		return displayYAML(w, result)
	default:
		displayHuman(w, result, framework)
		return nil
	}
}

func displayJSON(w io.Writer, result *types.GeneratedCode) error {
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(output))
	return nil
}

func displayYAML(w io.Writer, result *types.GeneratedCode) error {
	output, err := yaml.Marshal(result)
	if err != nil {
		return err
	}
	fmt.Fprint(w, string(output))
	return nil
}

func displayHuman(w io.Writer, result *types.GeneratedCode, framework types.Framework) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	white := color.New(color.FgWhite, color.Bold)
	faint := color.New(color.Faint)

	green.Fprintf(w, "✓ System architecture generated (%s)\n\n", framework)

	cyan.Fprintln(w, "📁 FILE MANIFEST:")
	for _, f := range result.Files {
		fmt.Fprintln(w)
		white.Fprintf(w, "── %s ", f.Path)
		faint.Fprintf(w, "[%s]\n", utils.DetermineFileType(f.Path))
		fmt.Fprintln(w, strings.TrimRight(f.Content, "\n"))
	}
	fmt.Fprintln(w)

	cyan.Fprintln(w, "🧭 ARCHITECTURAL INTENT:")
	for _, line := range strings.Split(strings.TrimSpace(result.Explanation), "\n") {
		fmt.Fprintf(w, "   %s\n", line)
	}
	fmt.Fprintln(w)

	if len(result.Dependencies) > 0 {
		cyan.Fprintln(w, "📦 DEPENDENCIES:")
		fmt.Fprintf(w, "   %s\n\n", strings.Join(result.Dependencies, ", "))
	}

	if len(result.SetupSteps) > 0 {
		cyan.Fprintln(w, "🚀 EXECUTION SEQUENCE:")
		for i, step := range result.SetupSteps {
			fmt.Fprintf(w, "   %d. %s\n", i+1, color.YellowString(step))
		}
		fmt.Fprintln(w)
	}
}

func printHeader(w io.Writer, prompt string, framework types.Framework) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🏗️  Backend Architect")
	fmt.Fprintf(w, "📝 Requirements: %s\n", prompt)
	fmt.Fprintf(w, "🧩 Framework: %s\n\n", framework)
}

func printSuccess(w io.Writer, msg string) {
	color.New(color.FgGreen).Fprintf(w, "✓ %s\n", msg)
}

func printError(w io.Writer, msg string) {
	color.New(color.FgRed).Fprintf(w, "✗ %s\n", msg)
}
