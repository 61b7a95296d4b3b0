package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/klytics/sheetmind/internal/table"
)

type chartCall struct {
	chartType string
	dataRange string
	title     string
	sheet     string
}

// fakeBackend is an in-memory Backend that records every mutation.
type fakeBackend struct {
	tbl      *table.Table
	getErr   error
	written  *table.Table
	formulas map[string]string
	charts   []chartCall
	sheets   []string
	saves    int
}

func (f *fakeBackend) GetTable(sheet string) (*table.Table, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.tbl, nil
}

func (f *fakeBackend) WriteTable(t *table.Table, sheet string, startRow, startCol int) error {
	f.written = t
	return nil
}

func (f *fakeBackend) SetFormula(cell, formula, sheet string) error {
	if f.formulas == nil {
		f.formulas = map[string]string{}
	}
	f.formulas[cell] = formula
	return nil
}

func (f *fakeBackend) CreateChart(chartType, dataRange, title, sheet string) error {
	f.charts = append(f.charts, chartCall{chartType, dataRange, title, sheet})
	return nil
}

func (f *fakeBackend) CreateSheet(name string) error {
	f.sheets = append(f.sheets, name)
	return nil
}

func (f *fakeBackend) ListSheets() []string { return []string{"Sheet1"} }

func (f *fakeBackend) Save(path string) error {
	f.saves++
	return nil
}

func salesTable() *table.Table {
	return &table.Table{
		Headers: []string{"Name", "Revenue", "Region"},
		Rows: [][]string{
			{"Widget", "1200", "North"},
			{"Gadget", "850", "South"},
			{"Doohickey", "1200", "East"},
			{"Gizmo", "900", "West"},
		},
	}
}

func newTestAgent(b Backend) *Agent {
	a := New(Options{})
	a.AttachBackend(b)
	return a
}

func TestSumByColumnLabel(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	res := a.Process(context.Background(), "sum column Revenue")

	want := "The sum of column 'Revenue' is 4,150.00"
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
}

func TestAverageFallsBackToFirstNumericColumn(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	// No column named anywhere: the first numeric column (Revenue) is used.
	res := a.Process(context.Background(), "calculate the average of the data in sheet Sales")

	want := "The average of column 'Revenue' is 1,037.50"
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
}

func TestCalculateUnknownColumn(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	res := a.Process(context.Background(), "sum column Profit")

	if !strings.Contains(res.Response, "Column 'profit' not found") {
		t.Errorf("response = %q, want unknown-column message", res.Response)
	}
	if !strings.Contains(res.Response, "Name, Revenue, Region") {
		t.Errorf("response = %q, want available columns listed", res.Response)
	}
}

func TestSortDescendingIsStableAndWritesBack(t *testing.T) {
	fb := &fakeBackend{tbl: salesTable()}
	a := newTestAgent(fb)

	res := a.Process(context.Background(), "sort data by column Revenue descending")

	want := "Successfully sorted data by column 'Revenue' in descending order."
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
	if fb.written == nil {
		t.Fatal("sorted table was not written back")
	}
	if fb.saves == 0 {
		t.Error("workbook was not saved after sorting")
	}

	// The two 1200 rows must keep their original relative order.
	got := make([]string, len(fb.written.Rows))
	for i, row := range fb.written.Rows {
		got[i] = row[0]
	}
	wantOrder := []string{"Widget", "Doohickey", "Gizmo", "Gadget"}
	for i := range wantOrder {
		if got[i] != wantOrder[i] {
			t.Fatalf("sorted order = %v, want %v", got, wantOrder)
		}
	}
}

func TestFilterGreaterThan(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	res := a.Process(context.Background(), "show rows in sheet Sales where Revenue > 1000")

	if !strings.Contains(res.Response, "Found 2 rows where Revenue > 1000") {
		t.Errorf("response = %q, want 2 matching rows", res.Response)
	}
	if !strings.Contains(res.Response, "Widget") || !strings.Contains(res.Response, "Doohickey") {
		t.Errorf("response = %q, want matching row preview", res.Response)
	}
	if strings.Contains(res.Response, "Gadget") {
		t.Errorf("response = %q, should not include non-matching rows", res.Response)
	}
}

func TestFilterNoRowsNamesCriteria(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	res := a.Process(context.Background(), "show rows in sheet Sales where Revenue > 5000")

	want := "No rows found matching the filter criteria: Revenue > 5000"
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
}

func TestFilterWithoutCriteria(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	intent := a.classifier.Classify("filter the data where it matches")
	got := a.dispatch(intent)

	if !strings.Contains(got, "more specific filter criteria") {
		t.Errorf("response = %q, want criteria hint", got)
	}
}

func TestCreateChartUsesRangeParam(t *testing.T) {
	fb := &fakeBackend{tbl: salesTable()}
	a := newTestAgent(fb)

	res := a.Process(context.Background(), "create a bar chart from range A1:C5")

	want := "Successfully created a bar chart titled 'Bar Chart' from your data."
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
	if len(fb.charts) != 1 {
		t.Fatalf("charts created = %d, want 1", len(fb.charts))
	}
	call := fb.charts[0]
	if call.chartType != "bar" || call.dataRange != "A1:C5" || call.title != "Bar Chart" {
		t.Errorf("chart call = %+v", call)
	}
	if fb.saves == 0 {
		t.Error("workbook was not saved after chart creation")
	}
}

func TestCreateChartDefaultsToBoundingRange(t *testing.T) {
	fb := &fakeBackend{tbl: salesTable()}
	a := newTestAgent(fb)

	intent := a.classifier.Classify("create a pie chart of the data")
	a.dispatch(intent)

	if len(fb.charts) != 1 {
		t.Fatalf("charts created = %d, want 1", len(fb.charts))
	}
	if fb.charts[0].dataRange != "A1:C5" {
		t.Errorf("dataRange = %q, want bounding range A1:C5", fb.charts[0].dataRange)
	}
	if fb.charts[0].chartType != "pie" {
		t.Errorf("chartType = %q, want pie", fb.charts[0].chartType)
	}
}

func TestCreateWorksheet(t *testing.T) {
	fb := &fakeBackend{tbl: salesTable()}
	a := newTestAgent(fb)

	res := a.Process(context.Background(), "create worksheet Summary")

	want := "Successfully created a new worksheet named 'summary'."
	if res.Response != want {
		t.Errorf("response = %q, want %q", res.Response, want)
	}
	if len(fb.sheets) != 1 || fb.sheets[0] != "summary" {
		t.Errorf("sheets created = %v, want [summary]", fb.sheets)
	}
}

func TestCreatePivotIsAcknowledged(t *testing.T) {
	fb := &fakeBackend{tbl: salesTable()}
	a := newTestAgent(fb)

	intent := a.classifier.Classify("create a pivot table from the data")
	got := a.dispatch(intent)

	if !strings.Contains(got, "not yet implemented") || !strings.Contains(got, "pivot table") {
		t.Errorf("response = %q, want pivot acknowledgement", got)
	}
	if len(fb.charts) != 0 {
		t.Errorf("pivot request must not create a chart, got %v", fb.charts)
	}
}

func TestAnalyzeSummary(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	intent := a.classifier.Classify("give me a summary analysis of the data")
	got := a.dispatch(intent)

	if !strings.Contains(got, "4 rows × 3 columns") {
		t.Errorf("response = %q, want dimensions", got)
	}
	if !strings.Contains(got, "Revenue: average 1,037.50, range 850.00 to 1,200.00") {
		t.Errorf("response = %q, want Revenue statistics", got)
	}
}

func TestAnalyzeCorrelationNeedsTwoNumericColumns(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	intent := a.classifier.Classify("analyze the correlation in the data")
	got := a.dispatch(intent)

	want := "Need at least 2 numeric columns to calculate correlations."
	if got != want {
		t.Errorf("response = %q, want %q", got, want)
	}
}

func TestAnalyzeCorrelation(t *testing.T) {
	tbl := &table.Table{
		Headers: []string{"X", "Y"},
		Rows: [][]string{
			{"1", "2"}, {"2", "4"}, {"3", "6"},
		},
	}
	a := newTestAgent(&fakeBackend{tbl: tbl})

	intent := a.classifier.Classify("analyze the correlation in the data")
	got := a.dispatch(intent)

	if !strings.Contains(got, "X vs Y: 1.000") {
		t.Errorf("response = %q, want perfect correlation", got)
	}
}

func TestEmptyTableMessages(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: &table.Table{Headers: []string{"A"}}})

	cases := []struct {
		query string
		want  string
	}{
		{"sum column A", "No data found to perform calculations on."},
		{"sort data by column A descending", "No data found to sort."},
		{"show rows in sheet One where Revenue > 10", "No data found to filter."},
		{"create a bar chart from range A1:C5", "No data found to create a chart from."},
		{"give me a summary analysis of the data", "No data found to analyze."},
	}
	for _, tc := range cases {
		intent := a.classifier.Classify(tc.query)
		if got := a.dispatch(intent); got != tc.want {
			t.Errorf("dispatch(%q) = %q, want %q", tc.query, got, tc.want)
		}
	}
}

func TestBackendErrorBecomesMessage(t *testing.T) {
	a := newTestAgent(&fakeBackend{getErr: errors.New("file is locked")})

	intent := a.classifier.Classify("sum column A")
	got := a.dispatch(intent)

	if !strings.Contains(got, "Error reading data") || !strings.Contains(got, "file is locked") {
		t.Errorf("response = %q, want readable backend error", got)
	}
}

func TestFormatAcknowledgesType(t *testing.T) {
	a := newTestAgent(&fakeBackend{tbl: salesTable()})

	intent := a.classifier.Classify("format column B as currency")
	got := a.dispatch(intent)

	if !strings.Contains(got, "currency") || !strings.Contains(got, "not yet implemented") {
		t.Errorf("response = %q, want currency acknowledgement", got)
	}
}
