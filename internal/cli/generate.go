// Package cli is the terminal front-end: the same single generation call as the web page,
// with the spinner standing in for the busy flag.
package cli

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"backend_architect/config"
	"backend_architect/internal/ai"
	"backend_architect/internal/clipboard"
	"backend_architect/internal/session"
	"backend_architect/internal/types"
)

var ErrEmptyPrompt = errors.New("prompt must not be empty")

// Deps is what the commands need at run time.
type Deps struct {
	Generator        session.Generator
	Copier           *clipboard.Copier
	DefaultFramework types.Framework
}

// DepsFunc builds Deps lazily so argument errors never touch configuration.
type DepsFunc func() (*Deps, error)

// LoadDeps reads .env and the viper config and builds the configured provider.
func LoadDeps() (*Deps, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Info: Loaded environment variables from .env file.")
	}
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	gen, err := ai.New(cfg)
	if err != nil {
		return nil, err
	}
	framework, err := types.ParseFramework(cfg.DefaultFramework)
	if err != nil {
		framework = types.DefaultFramework
	}
	return &Deps{
		Generator:        gen,
		Copier:           clipboard.New(cfg.CopyAckDuration()),
		DefaultFramework: framework,
	}, nil
}

type generateOptions struct {
	framework string
	output    string
	copyPath  string
}

func NewGenerateCmd(deps DepsFunc) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate PROMPT",
		Short: "Generate a backend blueprint from a description",
		Long: `Describe the backend you need and get a production-ready scaffold: files,
an architectural explanation, dependencies and setup steps.

Examples:
  # FastAPI service (the default framework)
  architect generate "A simple user profile app with real-time status updates"

  # Firebase project as YAML
  architect generate "chat rooms with moderation" -f firebase -o yaml

  # Put the generated Dockerfile on the clipboard
  architect generate "inventory API" -f django --copy Dockerfile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, deps, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.framework, "framework", "f", "", "Target framework (FastAPI, Django, Firebase)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "human", "Output format (human, json, yaml)")
	cmd.Flags().StringVar(&opts.copyPath, "copy", "", "Copy the content of the generated file with this path to the clipboard")

	return cmd
}

func runGenerate(cmd *cobra.Command, depsFn DepsFunc, prompt string, opts *generateOptions) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	format, err := parseFormat(opts.output)
	if err != nil {
		return err
	}
	var framework types.Framework
	if opts.framework != "" {
		if framework, err = types.ParseFramework(opts.framework); err != nil {
			return err
		}
	}

	deps, err := depsFn()
	if err != nil {
		return err
	}
	if framework == "" {
		framework = deps.DefaultFramework
	}
	if !framework.Valid() {
		framework = types.DefaultFramework
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	if format == formatHuman {
		printHeader(out, prompt, framework)
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(errOut))
	s.Suffix = " Architecting..."
	s.Start()
	result, err := deps.Generator.GenerateBackendCode(cmd.Context(), prompt, framework)
	s.Stop()
	if err == nil && result == nil {
		err = ai.ErrNoResult
	}
	if err != nil {
		log.Printf("WARN: generation failed (%s): %v", framework, err)
		printError(errOut, session.FailureMessage)
		return errors.New(session.FailureMessage)
	}

	if err := display(out, result, framework, format); err != nil {
		return err
	}

	if opts.copyPath == "" {
		return nil
	}
	file, ok := result.File(opts.copyPath)
	if !ok {
		return fmt.Errorf("no generated file with path %q", opts.copyPath)
	}
	if deps.Copier == nil {
		return errors.New("clipboard is not available")
	}
	if err := deps.Copier.Copy(file.Content); err != nil {
		return err
	}
	printSuccess(errOut, fmt.Sprintf("%s %s", deps.Copier.Label(), file.Path))
	return nil
}

func NewFrameworksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List the supported frameworks",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range types.Frameworks() {
				marker := " "
				if f == types.DefaultFramework {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, f)
			}
		},
	}
}
