// Package run provides the "run" command for executing YAML scripts.
package run

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/script"
	"github.com/klytics/sheetmind/internal/session"
	"github.com/klytics/sheetmind/internal/table"
)

// NewCommand creates the "run" command.
func NewCommand() *cobra.Command {
	var workbookPath string

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a YAML script of natural-language commands",
		Long: `Executes the steps of a script file in order against one workbook.

Each step is a plain-English command. Step responses can be reused in later
steps via ${{ steps.<id>.response }}.`,
		Example: `  sheetmind run monthly-report.yaml
  sheetmind run cleanup.yaml --file other.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			verboseFlag, _ := cmd.Flags().GetBool("verbose")
			providerFlag, _ := cmd.Flags().GetString("provider")
			modelFlag, _ := cmd.Flags().GetString("model")

			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			path := workbookPath
			if path == "" {
				path = s.Workbook
			}
			if path == "" {
				return fmt.Errorf("script %q names no workbook — add a 'workbook' field or pass --file", s.Name)
			}

			a, _ := session.NewAgent(providerFlag, modelFlag)
			wb, err := table.Open(path)
			if err != nil {
				return err
			}
			defer wb.Close()
			a.AttachBackend(wb)

			runStep := func(ctx context.Context, command, sheet string) (string, error) {
				if sheet != "" {
					// The sheet reference rides along in the command text, where
					// the parser's sheet extractor picks it up.
					command = fmt.Sprintf("%s in sheet %s", command, sheet)
				}
				return a.Process(ctx, command).Response, nil
			}

			results, runErr := script.NewRunner(runStep, verboseFlag).Run(cmd.Context(), s)

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
				return runErr
			}

			bold := color.New(color.Bold)
			for _, r := range results {
				bold.Printf("%s:\n", r.StepID)
				if r.Error != nil {
					color.New(color.FgRed).Printf("  error: %s\n", r.Error)
					continue
				}
				for _, line := range strings.Split(r.Response, "\n") {
					fmt.Printf("  %s\n", line)
				}
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&workbookPath, "file", "f", "", "Workbook override (.xlsx)")
	return cmd
}
