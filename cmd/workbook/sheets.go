package workbook

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/table"
)

func newSheetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sheets <file.xlsx>",
		Short: "List the worksheets in a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			wb, err := table.Open(args[0])
			if err != nil {
				return err
			}
			defer wb.Close()

			sheets := wb.ListSheets()
			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sheets)
			}

			for _, name := range sheets {
				fmt.Println(name)
			}
			return nil
		},
	}
}
