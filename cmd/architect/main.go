package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"backend_architect/internal/cli"
)

var (
	version = "v1.0.0-beta" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "architect",
		Short: "Production-ready backend blueprints from a description",
		Long: `architect turns a plain-language description of a backend into a complete
scaffold for FastAPI, Django or Firebase: files, explanation, dependencies and
setup steps. Nothing is written to disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		cli.NewGenerateCmd(cli.LoadDeps),
		cli.NewFrameworksCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "architect version %s\n", version)
		},
	}
}
