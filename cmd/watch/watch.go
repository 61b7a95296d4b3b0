// Package watch provides the "sheetmind watch" command for monitoring a
// workbook and re-running a command on change.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/agent"
	"github.com/klytics/sheetmind/internal/session"
	"github.com/klytics/sheetmind/internal/table"
	w "github.com/klytics/sheetmind/internal/watch"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var (
		command  string
		debounce int
	)

	cmd := &cobra.Command{
		Use:   "watch <file.xlsx>",
		Short: "Watch a workbook and re-run a command when it changes",
		Long: `Monitors a workbook file and re-runs the given natural-language command
every time the file is saved, printing the fresh result. Useful to keep a
calculation or analysis up to date while editing in Excel.`,
		Example: `  sheetmind watch sales.xlsx --command "sum column Revenue"
  sheetmind watch data.xlsx --command "give me a summary analysis of the data" --debounce 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if command == "" {
				return fmt.Errorf("no command given — pass one with --command, e.g. --command \"sum column Revenue\"")
			}
			providerFlag, _ := cmd.Flags().GetString("provider")
			modelFlag, _ := cmd.Flags().GetString("model")

			a, _ := session.NewAgent(providerFlag, modelFlag)

			watcher, err := w.New(args[0], debounce)
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			watcher.Handler = func(path string) error {
				response, err := runAgainst(cmd.Context(), a, path, command)
				if err != nil {
					return err
				}
				bold.Printf("%s changed:\n", path)
				fmt.Println(response)
				return nil
			}

			// First run immediately, then on every change.
			if response, err := runAgainst(cmd.Context(), a, watcher.Path, command); err == nil {
				fmt.Println(response)
			} else {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watcher.Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "Natural-language command to re-run")
	cmd.Flags().IntVar(&debounce, "debounce", 500, "Milliseconds to wait after a change before processing")
	return cmd
}

// runAgainst reopens the workbook for each run so external saves are seen.
func runAgainst(ctx context.Context, a *agent.Agent, path, command string) (string, error) {
	wb, err := table.Open(path)
	if err != nil {
		return "", err
	}
	defer wb.Close()

	a.AttachBackend(wb)
	defer a.AttachBackend(nil)

	return a.Process(ctx, command).Response, nil
}
