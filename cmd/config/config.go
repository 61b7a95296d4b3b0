// Package config provides CLI commands for configuration management.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/config"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage SheetMind configuration",
		Long:  "View and initialize SheetMind settings (~/.sheetmind/config.yaml).",
	}

	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newPathCommand())

	return cmd
}

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.WriteDefault()
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Printf("Config ready at %s\n", path)
			return nil
		},
	}
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			fmt.Printf("provider:             %s\n", cfg.Provider)
			fmt.Printf("model:                %s\n", cfg.Model)
			fmt.Printf("ollama.host:          %s\n", cfg.Ollama.Host)
			fmt.Printf("confidence threshold: %.2f\n", cfg.Agent.ConfidenceThreshold)
			fmt.Printf("history window:       %d\n", cfg.Agent.HistoryWindow)
			fmt.Printf("telemetry:            %t\n", cfg.Telemetry.Enabled)
			fmt.Printf("output format:        %s\n", cfg.Output.Format)
			return nil
		},
	}
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file path",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(filepath.Join(config.Dir(), "config.yaml"))
		},
	}
}
