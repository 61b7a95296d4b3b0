package agent

import (
	"fmt"
	"strings"

	"github.com/klytics/sheetmind/internal/nlp"
	"github.com/klytics/sheetmind/internal/table"
)

// Chart type names as the spreadsheet-client executor expects them.
var contextChartTypes = map[string]string{
	"bar":  "ColumnClustered",
	"line": "Line",
	"pie":  "Pie",
}

// dispatchWithContext resolves an intent against the live selection instead
// of a workbook. Mutating actions emit operation records; the client executor
// applies them.
func (a *Agent) dispatchWithContext(intent nlp.Intent, ec *ExcelContext, analysis ContextAnalysis) (string, []Operation) {
	switch intent.Action {
	case nlp.ActionCalculate:
		return calculateInContext(intent, ec, analysis)
	case nlp.ActionCreate:
		return createInContext(intent, ec, analysis)
	case nlp.ActionSort:
		return sortInContext(intent, ec, analysis)
	case nlp.ActionAnalyze:
		return analyzeInContext(ec, analysis), nil
	case nlp.ActionFilter:
		return "Filter operations are not yet implemented for the current selection, but I understand you want to filter your data.", nil
	default:
		return fmt.Sprintf("I understand you want to %s, but I need more specific instructions for this operation.", intent.Action), nil
	}
}

func calculateInContext(intent nlp.Intent, ec *ExcelContext, analysis ContextAnalysis) (string, []Operation) {
	if !analysis.HasData {
		return "Please select a range with data to perform calculations.", nil
	}

	op := intent.Param("operation")
	if op == "" {
		op = "sum"
	}
	fn, ok := map[string]string{
		"sum": "SUM", "average": "AVERAGE", "count": "COUNT", "max": "MAX", "min": "MIN",
	}[op]
	if !ok {
		return fmt.Sprintf("Operation '%s' is not supported yet.", op), nil
	}

	cell, err := resultCell(ec.Selection)
	if err != nil {
		return fmt.Sprintf("Could not place the result formula: %v", err), nil
	}

	formula := fmt.Sprintf("=%s(%s)", fn, stripSheetPrefix(ec.Selection.Address))
	ops := []Operation{{
		Type:    OpSetFormula,
		Range:   cell,
		Formula: [][]string{{formula}},
	}}
	return fmt.Sprintf("Added %s formula in cell %s", fn, cell), ops
}

func createInContext(intent nlp.Intent, ec *ExcelContext, analysis ContextAnalysis) (string, []Operation) {
	if !analysis.HasData {
		return "Please select a range with data to create charts or visualizations.", nil
	}

	chartType := intent.Param("chart_type")
	if chartType == "" {
		chartType = "bar"
	}
	excelType, ok := contextChartTypes[chartType]
	if !ok {
		return fmt.Sprintf("Chart type '%s' is not supported for the current selection.", chartType), nil
	}

	title := intent.Param("title")
	if title == "" {
		title = titleCase(chartType) + " Chart"
	}

	ops := []Operation{{
		Type:      OpInsertChart,
		ChartType: excelType,
		DataRange: ec.Selection.Address,
		Title:     title,
	}}
	return fmt.Sprintf("Created a %s chart from your selected data.", chartType), ops
}

func sortInContext(intent nlp.Intent, ec *ExcelContext, analysis ContextAnalysis) (string, []Operation) {
	if !analysis.HasData {
		return "Please select a range with data to sort.", nil
	}

	ascending, orderName := sortOrder(intent)
	ops := []Operation{{
		Type:      OpSort,
		Range:     ec.Selection.Address,
		Key:       intPtr(0),
		Ascending: boolPtr(ascending),
	}}
	return fmt.Sprintf("Sorted the selected data in %s order.", orderName), ops
}

// analyzeInContext is read-only: it summarizes the selection by converting it
// to the shared table model and reusing the workbook summary.
func analyzeInContext(ec *ExcelContext, analysis ContextAnalysis) string {
	if !analysis.HasData {
		return "Please select a range with data to analyze."
	}
	return summarizeTable(selectionTable(ec.Selection, analysis.HasHeaders))
}

// selectionTable converts a selection value block into a Table. Without a
// header row, generated letter headers ("Column A", ...) stand in.
func selectionTable(sel Selection, hasHeaders bool) *table.Table {
	values := sel.Values
	tbl := &table.Table{}
	if len(values) == 0 {
		return tbl
	}

	start := 0
	if hasHeaders {
		for _, cell := range values[0] {
			tbl.Headers = append(tbl.Headers, cellString(cell))
		}
		start = 1
	} else {
		for i := range values[0] {
			tbl.Headers = append(tbl.Headers, "Column "+table.ColumnLetter(i))
		}
	}

	for _, row := range values[start:] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cellString(cell)
		}
		tbl.Rows = append(tbl.Rows, cells)
	}
	return tbl
}

func cellString(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integers without a fraction.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func stripSheetPrefix(address string) string {
	if i := strings.LastIndex(address, "!"); i >= 0 {
		return address[i+1:]
	}
	return address
}
