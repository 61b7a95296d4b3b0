package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is the Excel file collaborator. It wraps an open excelize file;
// all failures are returned as errors at this boundary, never panics.
type Workbook struct {
	path string
	f    *excelize.File
}

// Open loads an existing .xlsx file, or creates a fresh workbook in memory
// when the path does not exist yet.
func Open(path string) (*Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Workbook{path: path, f: excelize.NewFile()}, nil
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	return &Workbook{path: path, f: f}, nil
}

// Path returns the file path this workbook was opened from.
func (w *Workbook) Path() string {
	return w.path
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// sheetOrActive returns the named sheet, defaulting to the active one.
func (w *Workbook) sheetOrActive(sheet string) string {
	if sheet != "" {
		return sheet
	}
	return w.f.GetSheetName(w.f.GetActiveSheetIndex())
}

// GetTable reads a sheet into a Table, treating the first row as headers.
// An empty sheet name means the active sheet.
func (w *Workbook) GetTable(sheet string) (*Table, error) {
	name := w.sheetOrActive(sheet)
	rows, err := w.f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", name, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}
	return &Table{Headers: rows[0], Rows: rows[1:]}, nil
}

// WriteTable writes a table back to a sheet, headers first. startRow and
// startCol are 1-indexed. Numeric-looking cells are written as numbers so
// Excel keeps its native types.
func (w *Workbook) WriteTable(t *Table, sheet string, startRow, startCol int) error {
	name := w.sheetOrActive(sheet)
	if idx, _ := w.f.GetSheetIndex(name); idx < 0 {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("could not create sheet %q: %w", name, err)
		}
	}

	write := func(row, col int, cell string) error {
		cellName, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if f, ok := ParseNumber(cell); ok {
			return w.f.SetCellValue(name, cellName, f)
		}
		return w.f.SetCellValue(name, cellName, cell)
	}

	for j, h := range t.Headers {
		if err := write(startRow, startCol+j, h); err != nil {
			return err
		}
	}
	for i, row := range t.Rows {
		for j, cell := range row {
			if err := write(startRow+1+i, startCol+j, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetFormula writes a formula (e.g. "=SUM(A1:A10)") into one cell.
func (w *Workbook) SetFormula(cell, formula, sheet string) error {
	name := w.sheetOrActive(sheet)
	if err := w.f.SetCellFormula(name, cell, formula); err != nil {
		return fmt.Errorf("could not set formula in %s: %w", cell, err)
	}
	return nil
}

// chartTypes maps the dispatcher's chart names onto excelize chart types.
var chartTypes = map[string]excelize.ChartType{
	"bar":  excelize.Col,
	"line": excelize.Line,
	"pie":  excelize.Pie,
}

// CreateChart adds a chart over the given A1-style data range. The first
// column of the range provides categories; each following column becomes a
// series. The chart is anchored just right of the data.
func (w *Workbook) CreateChart(chartType, dataRange, title, sheet string) error {
	name := w.sheetOrActive(sheet)

	ct, ok := chartTypes[chartType]
	if !ok {
		ct = excelize.Col
	}

	startCol, startRow, endCol, endRow, err := parseRange(dataRange)
	if err != nil {
		return err
	}

	var series []excelize.ChartSeries
	catStart, _ := excelize.CoordinatesToCellName(startCol, startRow)
	catEnd, _ := excelize.CoordinatesToCellName(startCol, endRow)
	categories := fmt.Sprintf("%s!%s:%s", name, catStart, catEnd)

	firstSeries := startCol + 1
	if endCol == startCol {
		// Single-column range: chart the column itself with no categories.
		firstSeries = startCol
		categories = ""
	}
	for col := firstSeries; col <= endCol; col++ {
		vStart, _ := excelize.CoordinatesToCellName(col, startRow)
		vEnd, _ := excelize.CoordinatesToCellName(col, endRow)
		series = append(series, excelize.ChartSeries{
			Categories: categories,
			Values:     fmt.Sprintf("%s!%s:%s", name, vStart, vEnd),
		})
	}

	anchor, _ := excelize.CoordinatesToCellName(endCol+2, startRow)
	err = w.f.AddChart(name, anchor, &excelize.Chart{
		Type:   ct,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: title}},
	})
	if err != nil {
		return fmt.Errorf("could not create %s chart: %w", chartType, err)
	}
	return nil
}

func parseRange(rng string) (startCol, startRow, endCol, endRow int, err error) {
	start, end, found := strings.Cut(rng, ":")
	if !found || start == "" || end == "" {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q — expected a form like A1:C10", rng)
	}
	startCol, startRow, err = excelize.CellNameToCoordinates(start)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	endCol, endRow, err = excelize.CellNameToCoordinates(end)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("invalid range %q: %w", rng, err)
	}
	return startCol, startRow, endCol, endRow, nil
}

// ListSheets returns the workbook's sheet names in order.
func (w *Workbook) ListSheets() []string {
	return w.f.GetSheetList()
}

// CreateSheet adds a new worksheet.
func (w *Workbook) CreateSheet(name string) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("could not create sheet %q: %w", name, err)
	}
	return nil
}

// Save writes the workbook to disk. An empty path saves in place.
func (w *Workbook) Save(path string) error {
	if path == "" {
		path = w.path
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("could not save %s: %w", path, err)
	}
	return nil
}
