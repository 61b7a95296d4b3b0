package workbook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/sheetmind/internal/table"
)

func newReadCommand() *cobra.Command {
	var (
		sheetName string
		csvOutput bool
	)

	cmd := &cobra.Command{
		Use:   "read <file.xlsx>",
		Short: "Dump the data of a worksheet",
		Long:  "Reads an .xlsx file and outputs its data. Supports JSON, CSV, and pretty-printed table output.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonFlag, _ := cmd.Flags().GetBool("json")

			filePath := args[0]
			if !strings.HasSuffix(strings.ToLower(filePath), ".xlsx") {
				return fmt.Errorf("expected an .xlsx file, got %q — use 'sheetmind workbook read <file.xlsx>'", filePath)
			}

			wb, err := table.Open(filePath)
			if err != nil {
				return err
			}
			defer wb.Close()

			tbl, err := wb.GetTable(sheetName)
			if err != nil {
				return err
			}

			if jsonFlag {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(tbl)
			}

			if csvOutput {
				return outputCSV(tbl)
			}

			return outputPretty(tbl, sheetName)
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Read the named sheet (default: active sheet)")
	cmd.Flags().BoolVar(&csvOutput, "csv", false, "Output as CSV")

	return cmd
}

func outputCSV(tbl *table.Table) error {
	writeRow := func(cells []string) {
		quoted := make([]string, len(cells))
		for i, c := range cells {
			if strings.ContainsAny(c, ",\"\n") {
				c = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
			}
			quoted[i] = c
		}
		fmt.Println(strings.Join(quoted, ","))
	}

	writeRow(tbl.Headers)
	for _, row := range tbl.Rows {
		writeRow(row)
	}
	return nil
}

func outputPretty(tbl *table.Table, sheetName string) error {
	headerStyle := color.New(color.Bold, color.FgCyan)
	dim := color.New(color.FgHiBlack)

	if sheetName != "" {
		headerStyle.Printf("Sheet: %s\n", sheetName)
	}

	if len(tbl.Headers) == 0 && tbl.IsEmpty() {
		dim.Println("  (empty)")
		return nil
	}

	// Calculate column widths
	colWidths := make([]int, len(tbl.Headers))
	for j, h := range tbl.Headers {
		colWidths[j] = len(h)
	}
	for _, row := range tbl.Rows {
		for j, cell := range row {
			for len(colWidths) <= j {
				colWidths = append(colWidths, 0)
			}
			if len(cell) > colWidths[j] {
				colWidths[j] = len(cell)
			}
		}
	}

	// Cap column widths
	for i := range colWidths {
		if colWidths[i] > 40 {
			colWidths[i] = 40
		}
		if colWidths[i] < 3 {
			colWidths[i] = 3
		}
	}

	printRow(tbl.Headers, colWidths, color.New(color.Bold))
	dim.Print("  ")
	for j, w := range colWidths {
		if j > 0 {
			dim.Print("+-")
		}
		dim.Print(strings.Repeat("-", w+1))
	}
	dim.Println()

	for _, row := range tbl.Rows {
		printRow(row, colWidths, nil)
	}

	dim.Printf("  (%d rows)\n", len(tbl.Rows))
	return nil
}

func printRow(row []string, colWidths []int, style *color.Color) {
	fmt.Print("  ")
	for j := range colWidths {
		if j > 0 {
			fmt.Print("| ")
		}
		cell := ""
		if j < len(row) {
			cell = row[j]
		}
		if len(cell) > colWidths[j] {
			cell = cell[:colWidths[j]-1] + "~"
		}
		padded := cell + strings.Repeat(" ", colWidths[j]-len(cell)+1)
		if style != nil {
			style.Print(padded)
		} else {
			fmt.Print(padded)
		}
	}
	fmt.Println()
}
