// Package workbook provides CLI commands for inspecting .xlsx files directly.
package workbook

import "github.com/spf13/cobra"

// NewCommand returns the workbook subcommand group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbook",
		Short: "Inspect Excel workbooks (.xlsx)",
		Long:  "Commands for looking inside .xlsx files without going through the assistant — list sheets and dump sheet data.",
	}

	cmd.AddCommand(newSheetsCommand())
	cmd.AddCommand(newReadCommand())

	return cmd
}
