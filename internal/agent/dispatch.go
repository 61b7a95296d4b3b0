package agent

import (
	"fmt"
	"math"
	"strings"

	"github.com/klytics/sheetmind/internal/nlp"
	"github.com/klytics/sheetmind/internal/table"
)

// dispatch routes a confidently parsed intent to its workbook handler. Every
// handler returns response text; failures become messages, never errors.
func (a *Agent) dispatch(intent nlp.Intent) string {
	switch intent.Action {
	case nlp.ActionCalculate:
		return a.handleCalculate(intent)
	case nlp.ActionSort:
		return a.handleSort(intent)
	case nlp.ActionFilter:
		return a.handleFilter(intent)
	case nlp.ActionCreate:
		return a.handleCreate(intent)
	case nlp.ActionAnalyze:
		return a.handleAnalyze(intent)
	case nlp.ActionFormat:
		return a.handleFormat(intent)
	case nlp.ActionExport:
		return a.handleExport(intent)
	case nlp.ActionImport:
		return a.handleImport(intent)
	default:
		return fmt.Sprintf("I understood your command as '%s' but don't know how to handle it yet.", intent.Action)
	}
}

func (a *Agent) handleCalculate(intent nlp.Intent) string {
	tbl, err := a.backend.GetTable(intent.Param("sheet"))
	if err != nil {
		return fmt.Sprintf("Error reading data: %v", err)
	}
	if tbl.IsEmpty() {
		return "No data found to perform calculations on."
	}

	col, errMsg := resolveColumn(tbl, intent, preferNumeric)
	if errMsg != "" {
		return errMsg
	}

	op := intent.Param("operation")
	if op == "" {
		op = "sum"
	}

	values := numericValues(tbl, col)
	label := tbl.Headers[col]

	switch op {
	case "sum":
		total := 0.0
		for _, v := range values {
			total += v
		}
		return fmt.Sprintf("The sum of column '%s' is %s", label, table.FormatNumber(total))
	case "average":
		if len(values) == 0 {
			return fmt.Sprintf("Column '%s' has no numeric values to average.", label)
		}
		total := 0.0
		for _, v := range values {
			total += v
		}
		return fmt.Sprintf("The average of column '%s' is %s", label, table.FormatNumber(total/float64(len(values))))
	case "count":
		count := 0
		for _, cell := range tbl.Column(col) {
			if strings.TrimSpace(cell) != "" {
				count++
			}
		}
		return fmt.Sprintf("Column '%s' has %d non-empty values", label, count)
	case "max":
		if len(values) == 0 {
			return fmt.Sprintf("Column '%s' has no numeric values.", label)
		}
		maxV := values[0]
		for _, v := range values[1:] {
			if v > maxV {
				maxV = v
			}
		}
		return fmt.Sprintf("The maximum value in column '%s' is %s", label, table.FormatNumber(maxV))
	case "min":
		if len(values) == 0 {
			return fmt.Sprintf("Column '%s' has no numeric values.", label)
		}
		minV := values[0]
		for _, v := range values[1:] {
			if v < minV {
				minV = v
			}
		}
		return fmt.Sprintf("The minimum value in column '%s' is %s", label, table.FormatNumber(minV))
	default:
		return fmt.Sprintf("Operation '%s' is not supported yet.", op)
	}
}

func (a *Agent) handleSort(intent nlp.Intent) string {
	sheet := intent.Param("sheet")
	tbl, err := a.backend.GetTable(sheet)
	if err != nil {
		return fmt.Sprintf("Error reading data: %v", err)
	}
	if tbl.IsEmpty() {
		return "No data found to sort."
	}

	col, errMsg := resolveColumn(tbl, intent, preferFirst)
	if errMsg != "" {
		return errMsg
	}

	ascending, orderName := sortOrder(intent)
	tbl.SortBy(col, ascending)

	if err := a.backend.WriteTable(tbl, sheet, 1, 1); err != nil {
		return fmt.Sprintf("Error writing sorted data: %v", err)
	}
	if err := a.backend.Save(""); err != nil {
		return fmt.Sprintf("Error saving workbook: %v", err)
	}
	return fmt.Sprintf("Successfully sorted data by column '%s' in %s order.", tbl.Headers[col], orderName)
}

func (a *Agent) handleFilter(intent nlp.Intent) string {
	operator := intent.Param("operator")
	value, hasValue := intent.Params["value"]
	if operator == "" || !hasValue {
		return "I need more specific filter criteria. For example: 'show rows where revenue > 1000'"
	}

	tbl, err := a.backend.GetTable(intent.Param("sheet"))
	if err != nil {
		return fmt.Sprintf("Error reading data: %v", err)
	}
	if tbl.IsEmpty() {
		return "No data found to filter."
	}

	col, errMsg := resolveColumn(tbl, intent, preferValueColumn)
	if errMsg != "" {
		return errMsg
	}

	var matched [][]string
	for _, row := range tbl.Rows {
		cell := ""
		if col < len(row) {
			cell = row[col]
		}
		if matchesFilter(cell, operator, value) {
			matched = append(matched, row)
		}
	}

	label := tbl.Headers[col]
	if len(matched) == 0 {
		return fmt.Sprintf("No rows found matching the filter criteria: %s %s %v", label, operator, value)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d rows where %s %s %v. Here are the first few:\n", len(matched), label, operator, value)
	b.WriteString(strings.Join(tbl.Headers, " | "))
	for i, row := range matched {
		if i == 5 {
			break
		}
		b.WriteString("\n" + strings.Join(row, " | "))
	}
	return b.String()
}

func (a *Agent) handleCreate(intent nlp.Intent) string {
	if chartType := intent.Param("chart_type"); chartType != "" {
		if chartType == "pivot" {
			return "Pivot table creation is not yet implemented, but I understand you want to create a pivot table from your data."
		}
		return a.createChart(intent, chartType)
	}

	lower := strings.ToLower(intent.RawText)
	switch {
	case intent.Target == "column" || strings.Contains(lower, "column"):
		return "I understand you want to create a new column. Could you specify what data or formula should go in this column?"
	case intent.Target == "sheet" || strings.Contains(lower, "sheet") || strings.Contains(lower, "worksheet"):
		name := intent.Param("sheet")
		if name == "" {
			name = "NewSheet"
		}
		if err := a.backend.CreateSheet(name); err != nil {
			return fmt.Sprintf("Error creating worksheet: %v", err)
		}
		if err := a.backend.Save(""); err != nil {
			return fmt.Sprintf("Error saving workbook: %v", err)
		}
		return fmt.Sprintf("Successfully created a new worksheet named '%s'.", name)
	default:
		return "I understand you want to create something, but I need more specific details about what to create."
	}
}

func (a *Agent) createChart(intent nlp.Intent, chartType string) string {
	sheet := intent.Param("sheet")
	tbl, err := a.backend.GetTable(sheet)
	if err != nil {
		return fmt.Sprintf("Error reading data: %v", err)
	}
	if tbl.IsEmpty() {
		return "No data found to create a chart from."
	}

	title := intent.Param("title")
	if title == "" {
		title = titleCase(chartType) + " Chart"
	}

	dataRange := intent.Param("range")
	if dataRange == "" {
		dataRange = tbl.BoundingRange()
	}

	if err := a.backend.CreateChart(chartType, dataRange, title, sheet); err != nil {
		return fmt.Sprintf("Error creating chart: %v", err)
	}
	if err := a.backend.Save(""); err != nil {
		return fmt.Sprintf("Error saving workbook: %v", err)
	}
	return fmt.Sprintf("Successfully created a %s chart titled '%s' from your data.", chartType, title)
}

func (a *Agent) handleAnalyze(intent nlp.Intent) string {
	tbl, err := a.backend.GetTable(intent.Param("sheet"))
	if err != nil {
		return fmt.Sprintf("Error reading data: %v", err)
	}
	if tbl.IsEmpty() {
		return "No data found to analyze."
	}

	analysisType := intent.Param("analysis_type")
	if analysisType == "" {
		analysisType = "summary"
	}

	switch analysisType {
	case "summary":
		return summarizeTable(tbl)
	case "correlation":
		return correlateTable(tbl)
	default:
		return fmt.Sprintf("Analysis type '%s' is not yet implemented.", analysisType)
	}
}

func (a *Agent) handleFormat(intent nlp.Intent) string {
	if ft := intent.Param("format_type"); ft != "" {
		return fmt.Sprintf("Formatting as %s is not yet implemented, but I understand you want to format your data.", ft)
	}
	return "Formatting operations are not yet fully implemented, but I understand you want to format your data."
}

func (a *Agent) handleExport(intent nlp.Intent) string {
	if intent.Target != nlp.DefaultTarget {
		return fmt.Sprintf("Exporting the %s is not yet implemented, but I understand you want to export your data.", intent.Target)
	}
	return "Export operations are not yet implemented, but I understand you want to export your data."
}

func (a *Agent) handleImport(intent nlp.Intent) string {
	if intent.Target != nlp.DefaultTarget {
		return fmt.Sprintf("Importing into the %s is not yet implemented, but I understand you want to import data.", intent.Target)
	}
	return "Import operations are not yet implemented, but I understand you want to import data."
}

// Column-resolution fallback strategies, used when the command names no
// column at all.
type columnFallback int

const (
	// preferFirst falls back to the first column (sort).
	preferFirst columnFallback = iota
	// preferNumeric falls back to the first numeric column (calculate).
	preferNumeric
	// preferValueColumn prefers a header that looks like a measure, then the
	// first column (filter).
	preferValueColumn
)

var measureHeaders = []string{"revenue", "sales", "amount", "price", "value"}

// resolveColumn maps the command's column reference onto the table: an exact
// header label wins over a letter, a letter over the fallback strategy. The
// second return is a user-facing error message, empty on success.
func resolveColumn(tbl *table.Table, intent nlp.Intent, fallback columnFallback) (int, string) {
	ref := intent.Param("column")
	if ref == "" {
		// "sum column revenue" carries the label in the target, not params.
		if rest, ok := strings.CutPrefix(intent.Target, "column "); ok {
			ref = rest
		}
	}

	if ref != "" {
		if idx := tbl.ColumnIndex(ref); idx >= 0 {
			return idx, ""
		}
		if idx := table.LetterIndex(ref); idx >= 0 && idx < len(tbl.Headers) {
			return idx, ""
		}
		return 0, fmt.Sprintf("Column '%s' not found. Available columns: %s", ref, strings.Join(tbl.Headers, ", "))
	}

	switch fallback {
	case preferNumeric:
		numeric := tbl.NumericColumns()
		if len(numeric) == 0 {
			return 0, "No numeric columns found for calculation."
		}
		return numeric[0], ""
	case preferValueColumn:
		for _, want := range measureHeaders {
			for i, h := range tbl.Headers {
				if strings.Contains(strings.ToLower(h), want) {
					return i, ""
				}
			}
		}
		return 0, ""
	default:
		return 0, ""
	}
}

// sortOrder reads the extracted order parameter ("asc"/"desc", ascending by
// default) and returns both the flag and the word used in responses.
func sortOrder(intent nlp.Intent) (bool, string) {
	if intent.Param("order") == "desc" {
		return false, "descending"
	}
	return true, "ascending"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func numericValues(tbl *table.Table, col int) []float64 {
	var out []float64
	for _, cell := range tbl.Column(col) {
		if v, ok := table.ParseNumber(cell); ok {
			out = append(out, v)
		}
	}
	return out
}

// matchesFilter applies one comparison to a cell. Ordered comparisons skip
// cells that do not parse as numbers; equality compares numerically when both
// sides parse and textually otherwise.
func matchesFilter(cell, operator string, value any) bool {
	switch operator {
	case ">", "<":
		threshold, ok := value.(float64)
		if !ok {
			return false
		}
		v, numeric := table.ParseNumber(cell)
		if !numeric {
			return false
		}
		if operator == ">" {
			return v > threshold
		}
		return v < threshold
	case "=":
		if threshold, ok := value.(float64); ok {
			if v, numeric := table.ParseNumber(cell); numeric {
				return v == threshold
			}
			return false
		}
		return strings.EqualFold(cell, fmt.Sprintf("%v", value))
	case "contains":
		return strings.Contains(strings.ToLower(cell), strings.ToLower(fmt.Sprintf("%v", value)))
	default:
		return false
	}
}

func summarizeTable(tbl *table.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data summary: %d rows × %d columns.", len(tbl.Rows), len(tbl.Headers))

	numeric := tbl.NumericColumns()
	if len(numeric) == 0 {
		b.WriteString(" No numeric columns found.")
		return b.String()
	}

	for _, idx := range numeric {
		values := numericValues(tbl, idx)
		total, minV, maxV := 0.0, values[0], values[0]
		for _, v := range values {
			total += v
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
		}
		fmt.Fprintf(&b, "\n%s: average %s, range %s to %s",
			tbl.Headers[idx],
			table.FormatNumber(total/float64(len(values))),
			table.FormatNumber(minV), table.FormatNumber(maxV))
	}
	return b.String()
}

func correlateTable(tbl *table.Table) string {
	numeric := tbl.NumericColumns()
	if len(numeric) < 2 {
		return "Need at least 2 numeric columns to calculate correlations."
	}

	var b strings.Builder
	b.WriteString("Correlation between numeric columns:")
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r := pearson(numericValues(tbl, numeric[i]), numericValues(tbl, numeric[j]))
			fmt.Fprintf(&b, "\n%s vs %s: %.3f", tbl.Headers[numeric[i]], tbl.Headers[numeric[j]], r)
		}
	}
	return b.String()
}

// pearson computes the correlation coefficient over paired values. Unequal
// lengths truncate to the shorter series; degenerate series yield 0.
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	if n < 2 {
		return 0
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
