// Package shell provides the "sheetmind shell" interactive REPL command.
package shell

import (
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/session"
	shellpkg "github.com/klytics/sheetmind/internal/shell"
)

// NewCommand creates the "shell" command.
func NewCommand() *cobra.Command {
	var workbookPath string

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive SheetMind session",
		Long: `Start an interactive REPL with a persistent workbook and conversation.

The loaded workbook and the conversation transcript persist across commands
in the session. Tab completion covers session commands and example phrasings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			providerFlag, _ := cmd.Flags().GetString("provider")
			modelFlag, _ := cmd.Flags().GetString("model")

			a, _ := session.NewAgent(providerFlag, modelFlag)
			sess, err := shellpkg.NewSession(a)
			if err != nil {
				return err
			}

			if workbookPath != "" {
				if err := sess.Load(workbookPath); err != nil {
					return err
				}
			}

			return sess.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&workbookPath, "file", "f", "", "Workbook to open on startup (.xlsx)")
	return cmd
}
