// Package cmd contains all CLI commands for the sheetmind binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/cmd/ask"
	"github.com/klytics/sheetmind/cmd/completion"
	cmdconfig "github.com/klytics/sheetmind/cmd/config"
	"github.com/klytics/sheetmind/cmd/run"
	cmdshell "github.com/klytics/sheetmind/cmd/shell"
	cmdtelemetry "github.com/klytics/sheetmind/cmd/telemetry"
	"github.com/klytics/sheetmind/cmd/version"
	cmdwatch "github.com/klytics/sheetmind/cmd/watch"
	"github.com/klytics/sheetmind/cmd/workbook"
)

var (
	jsonOutput bool
	verbose    bool
	modelName  string
	provider   string
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetmind",
		Short: "Natural-language assistant for Excel spreadsheets",
		Long: `SheetMind — talk to your spreadsheets.

Turns plain-English commands into spreadsheet operations: sort, filter,
calculate, chart, and analyze .xlsx data from your terminal, with an AI
fallback for anything the built-in parser cannot handle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", defaultModel(), "AI model name override")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", defaultProvider(), "AI provider: anthropic | openai | ollama")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(ask.NewCommand())
	rootCmd.AddCommand(cmdshell.NewCommand())
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(workbook.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(cmdtelemetry.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func defaultModel() string {
	return os.Getenv("SHEETMIND_MODEL")
}

func defaultProvider() string {
	return os.Getenv("SHEETMIND_PROVIDER")
}
