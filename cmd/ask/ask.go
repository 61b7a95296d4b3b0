// Package ask provides the one-shot natural-language command.
package ask

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/agent"
	"github.com/klytics/sheetmind/internal/session"
	"github.com/klytics/sheetmind/internal/table"
	"github.com/klytics/sheetmind/internal/telemetry"
)

// NewCommand creates the "ask" command.
func NewCommand() *cobra.Command {
	var (
		workbookPath string
		contextPath  string
	)

	cmd := &cobra.Command{
		Use:   "ask \"<command>\"",
		Short: "Run one natural-language command against a workbook",
		Long: `Runs a single plain-English command and prints the result.

With --file the command operates directly on an .xlsx workbook. With
--context it operates on a selection context JSON exported by a spreadsheet
client, and prints the operations for the client to apply.`,
		Example: `  sheetmind ask --file sales.xlsx "sum column Revenue"
  sheetmind ask --file sales.xlsx "sort data by column Revenue descending"
  sheetmind ask --context selection.json "create a bar chart from range A1:C10"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			providerFlag, _ := cmd.Flags().GetString("provider")
			modelFlag, _ := cmd.Flags().GetString("model")

			query := strings.Join(args, " ")
			a, cfg := session.NewAgent(providerFlag, modelFlag)

			var res agent.Result
			start := time.Now()

			if contextPath != "" {
				ec, err := agent.LoadContext(contextPath)
				if err != nil {
					return err
				}
				res = a.ProcessWithContext(cmd.Context(), query, ec)
			} else {
				if workbookPath != "" {
					wb, err := table.Open(workbookPath)
					if err != nil {
						return err
					}
					defer wb.Close()
					a.AttachBackend(wb)
				}
				res = a.Process(cmd.Context(), query)
			}

			if cfg.Telemetry.Enabled {
				telemetry.DefaultStore().Record(telemetry.Event{
					Timestamp:  time.Now(),
					Command:    "ask",
					Action:     string(res.Intent.Action),
					Confidence: res.Intent.Confidence,
					Escalated:  res.Intent.Confidence < cfg.Agent.ConfidenceThreshold,
					DurationMs: time.Since(start).Milliseconds(),
				})
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Println(res.Response)
			if len(res.Operations) > 0 {
				dim := color.New(color.FgHiBlack)
				dim.Println("\nOperations:")
				for _, op := range res.Operations {
					data, err := json.Marshal(op)
					if err != nil {
						return err
					}
					dim.Printf("  %s\n", data)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&workbookPath, "file", "f", "", "Workbook to operate on (.xlsx)")
	cmd.Flags().StringVar(&contextPath, "context", "", "Selection context JSON instead of a workbook")
	cmd.MarkFlagsMutuallyExclusive("file", "context")

	return cmd
}
