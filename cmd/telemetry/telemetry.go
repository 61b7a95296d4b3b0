// Package telemetry provides CLI commands for the local usage log.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/telemetry"
)

// NewCommand returns the telemetry command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect or clear local usage statistics",
		Long:  "Usage data stays on this machine (~/.sheetmind/telemetry.jsonl); nothing is ever uploaded.",
	}

	cmd.AddCommand(newStatsCommand())
	cmd.AddCommand(newClearCommand())

	return cmd
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated usage statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			stats, err := telemetry.DefaultStore().Summary()
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(stats)
			}

			fmt.Printf("Commands run:      %d\n", stats.TotalCommands)
			fmt.Printf("Avg confidence:    %.2f\n", stats.AvgConfidence)
			fmt.Printf("Escalated to AI:   %.0f%%\n", stats.EscalatedRate*100)
			fmt.Printf("Avg duration:      %.0fms\n", stats.AvgDuration)
			fmt.Printf("Errors:            %d\n", stats.ErrorCount)

			if len(stats.TopActions) > 0 {
				fmt.Println("Actions:")
				actions := make([]string, 0, len(stats.TopActions))
				for a := range stats.TopActions {
					actions = append(actions, a)
				}
				sort.Slice(actions, func(i, j int) bool {
					return stats.TopActions[actions[i]] > stats.TopActions[actions[j]]
				})
				for _, a := range actions {
					fmt.Printf("  %-10s %d\n", a, stats.TopActions[a])
				}
			}
			return nil
		},
	}
}

func newClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all local usage data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := telemetry.DefaultStore().Clear(); err != nil {
				return err
			}
			fmt.Println("Telemetry data cleared")
			return nil
		},
	}
}
