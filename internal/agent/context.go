package agent

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/klytics/sheetmind/internal/table"
)

// ExcelContext describes the live state of a spreadsheet client: the current
// worksheet and the selected range with its values. It arrives per request
// and is never stored.
type ExcelContext struct {
	Worksheet Worksheet `json:"worksheet"`
	Selection Selection `json:"selection"`
}

// Worksheet identifies the active worksheet.
type Worksheet struct {
	Name string `json:"name"`
}

// Selection is the currently selected cell range. Values holds the literal
// 2-D value block; JSON numbers decode as float64.
type Selection struct {
	Address     string  `json:"address"`
	RowCount    int     `json:"rowCount"`
	ColumnCount int     `json:"columnCount"`
	Values      [][]any `json:"values"`
}

// ContextAnalysis holds derived heuristics about a selection. It is computed
// per request, never persisted.
type ContextAnalysis struct {
	HasSelection      bool    `json:"hasSelection"`
	WorksheetName     string  `json:"worksheetName,omitempty"`
	SelectionAddress  string  `json:"selectionAddress,omitempty"`
	RowCount          int     `json:"rowCount"`
	ColumnCount       int     `json:"columnCount"`
	HasData           bool    `json:"hasData"`
	IsNumeric         bool    `json:"isNumeric"`
	HasHeaders        bool    `json:"hasHeaders"`
	NumericPercentage float64 `json:"numericPercentage"`
}

// LoadContext reads an ExcelContext from a JSON file, as exported by the
// spreadsheet add-in.
func LoadContext(path string) (*ExcelContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read context file %s: %w", path, err)
	}
	var ec ExcelContext
	if err := json.Unmarshal(data, &ec); err != nil {
		return nil, fmt.Errorf("invalid context JSON in %s: %w", path, err)
	}
	return &ec, nil
}

// AnalyzeContext derives selection heuristics: whether data is present,
// whether the first row looks like a header row (text first row over a
// numeric second row), and how numeric the block is (share > 0.5).
func AnalyzeContext(ec *ExcelContext) ContextAnalysis {
	if ec == nil {
		return ContextAnalysis{}
	}

	analysis := ContextAnalysis{
		HasSelection:     true,
		WorksheetName:    ec.Worksheet.Name,
		SelectionAddress: ec.Selection.Address,
		RowCount:         ec.Selection.RowCount,
		ColumnCount:      ec.Selection.ColumnCount,
	}

	values := ec.Selection.Values
	if len(values) == 0 {
		return analysis
	}
	analysis.HasData = true

	if len(values) > 1 && len(values[0]) > 0 && len(values[1]) > 0 {
		firstRowText := false
		for _, cell := range values[0] {
			if s, ok := cell.(string); ok && strings.TrimSpace(s) != "" {
				firstRowText = true
				break
			}
		}
		secondRowNumeric := false
		for _, cell := range values[1] {
			if isNumericCell(cell) {
				secondRowNumeric = true
				break
			}
		}
		analysis.HasHeaders = firstRowText && secondRowNumeric
	}

	total, numeric := 0, 0
	for _, row := range values {
		for _, cell := range row {
			if cell == nil {
				continue
			}
			total++
			if isNumericCell(cell) {
				numeric++
			}
		}
	}
	if total > 0 {
		analysis.NumericPercentage = float64(numeric) / float64(total)
		analysis.IsNumeric = float64(numeric) > float64(total)*0.5
	}

	return analysis
}

// Summary renders the analysis for embedding into a fallback prompt.
func (a ContextAnalysis) Summary() string {
	if !a.HasSelection {
		return "No Excel context available."
	}
	return fmt.Sprintf(
		"Worksheet: %s\nSelection: %s\nData size: %d rows × %d columns\nHas data: %t\nNumeric data: %t\nHas headers: %t",
		a.WorksheetName, a.SelectionAddress, a.RowCount, a.ColumnCount,
		a.HasData, a.IsNumeric, a.HasHeaders)
}

func isNumericCell(cell any) bool {
	switch v := cell.(type) {
	case float64, float32, int, int64:
		return true
	case json.Number:
		_, err := v.Float64()
		return err == nil
	default:
		return false
	}
}

// resultCell computes the cell one column past the selection's right edge,
// on the selection's first row. This is where context-mode calculations
// place their formula.
func resultCell(sel Selection) (string, error) {
	address := sel.Address
	// Addresses may carry a sheet prefix ("Sheet1!A1:C10").
	if i := strings.LastIndex(address, "!"); i >= 0 {
		address = address[i+1:]
	}

	start, _, found := strings.Cut(address, ":")
	if !found {
		start = address
	}
	start = strings.ReplaceAll(start, "$", "")
	if start == "" {
		return "", fmt.Errorf("selection has no address")
	}

	letters := start
	digits := ""
	for i, r := range start {
		if r >= '0' && r <= '9' {
			letters, digits = start[:i], start[i:]
			break
		}
	}
	if letters == "" || digits == "" {
		return "", fmt.Errorf("could not parse selection address %q", sel.Address)
	}
	row, err := strconv.Atoi(digits)
	if err != nil {
		return "", fmt.Errorf("could not parse selection address %q", sel.Address)
	}

	startIdx := 0
	for _, r := range strings.ToUpper(letters) {
		startIdx = startIdx*26 + int(r-'A'+1)
	}
	startIdx-- // zero-based

	return fmt.Sprintf("%s%d", table.ColumnLetter(startIdx+sel.ColumnCount), row), nil
}
