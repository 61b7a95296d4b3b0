package agent

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func selectionContext() *ExcelContext {
	return &ExcelContext{
		Worksheet: Worksheet{Name: "Sales"},
		Selection: Selection{
			Address:     "Sales!A1:C10",
			RowCount:    10,
			ColumnCount: 3,
			Values: [][]any{
				{"Name", "Revenue", "Units"},
				{"Widget", 1200.0, 3.0},
				{"Gadget", 850.0, 5.0},
			},
		},
	}
}

func TestResultCell(t *testing.T) {
	cases := []struct {
		address string
		cols    int
		want    string
	}{
		{"Sheet1!A1:C10", 3, "D1"},
		{"A1:C10", 3, "D1"},
		{"$B$2:$D$5", 3, "E2"},
		{"C7", 1, "D7"},
		{"Sales!Z1:AA4", 2, "AB1"},
	}
	for _, tc := range cases {
		got, err := resultCell(Selection{Address: tc.address, ColumnCount: tc.cols})
		if err != nil {
			t.Errorf("resultCell(%q) error: %v", tc.address, err)
			continue
		}
		if got != tc.want {
			t.Errorf("resultCell(%q, %d cols) = %q, want %q", tc.address, tc.cols, got, tc.want)
		}
	}
}

func TestResultCellRejectsBadAddress(t *testing.T) {
	if _, err := resultCell(Selection{Address: "!!!"}); err == nil {
		t.Error("want error for unparseable address")
	}
}

func TestAnalyzeContextDetectsHeaders(t *testing.T) {
	analysis := AnalyzeContext(selectionContext())

	if !analysis.HasSelection || !analysis.HasData {
		t.Fatalf("analysis = %+v, want selection with data", analysis)
	}
	if !analysis.HasHeaders {
		t.Error("want header row detected (text row over numeric row)")
	}
	if analysis.WorksheetName != "Sales" {
		t.Errorf("worksheet = %q, want Sales", analysis.WorksheetName)
	}
}

func TestAnalyzeContextNumericShare(t *testing.T) {
	ec := &ExcelContext{
		Selection: Selection{
			Address: "A1:B2",
			Values:  [][]any{{1.0, 2.0}, {3.0, "x"}},
		},
	}
	analysis := AnalyzeContext(ec)

	if !analysis.IsNumeric {
		t.Error("3 of 4 numeric cells should count as numeric data")
	}
	if analysis.NumericPercentage != 0.75 {
		t.Errorf("numeric percentage = %v, want 0.75", analysis.NumericPercentage)
	}
}

func TestAnalyzeContextNil(t *testing.T) {
	analysis := AnalyzeContext(nil)
	if analysis.HasSelection || analysis.HasData {
		t.Errorf("analysis = %+v, want empty for nil context", analysis)
	}
}

func TestContextCalculateEmitsFormulaOperation(t *testing.T) {
	a := New(Options{})

	res := a.ProcessWithContext(context.Background(), "calculate sum of range A1:C10", selectionContext())

	if res.Response != "Added SUM formula in cell D1" {
		t.Errorf("response = %q", res.Response)
	}
	if len(res.Operations) != 1 {
		t.Fatalf("operations = %d, want 1", len(res.Operations))
	}
	op := res.Operations[0]
	if op.Type != OpSetFormula || op.Range != "D1" {
		t.Errorf("operation = %+v", op)
	}
	if len(op.Formula) != 1 || op.Formula[0][0] != "=SUM(A1:C10)" {
		t.Errorf("formula = %v, want =SUM(A1:C10)", op.Formula)
	}
}

func TestContextCreateChartEmitsOperation(t *testing.T) {
	a := New(Options{})

	res := a.ProcessWithContext(context.Background(), "create a bar chart from range A1:C10", selectionContext())

	if len(res.Operations) != 1 {
		t.Fatalf("operations = %d, want 1", len(res.Operations))
	}
	op := res.Operations[0]
	if op.Type != OpInsertChart || op.ChartType != "ColumnClustered" {
		t.Errorf("operation = %+v, want ColumnClustered insertChart", op)
	}
	if op.DataRange != "Sales!A1:C10" {
		t.Errorf("dataRange = %q, want the selection address", op.DataRange)
	}
	if op.Title != "Bar Chart" {
		t.Errorf("title = %q, want Bar Chart", op.Title)
	}
}

func TestContextSortEmitsOperation(t *testing.T) {
	a := New(Options{})

	res := a.ProcessWithContext(context.Background(), "sort range A1:C10 descending", selectionContext())

	if len(res.Operations) != 1 {
		t.Fatalf("operations = %d, want 1", len(res.Operations))
	}
	op := res.Operations[0]
	if op.Type != OpSort || op.Range != "Sales!A1:C10" {
		t.Errorf("operation = %+v", op)
	}
	if op.Key == nil || *op.Key != 0 {
		t.Errorf("key = %v, want 0", op.Key)
	}
	if op.Ascending == nil || *op.Ascending {
		t.Error("want descending sort")
	}
}

func TestContextAnalyzeSummarizesSelection(t *testing.T) {
	a := New(Options{})
	ec := selectionContext()

	intent := a.classifier.Classify("analyze the selected data")
	response, ops := a.dispatchWithContext(intent, ec, AnalyzeContext(ec))

	if len(ops) != 0 {
		t.Errorf("operations = %v, analysis must be read-only", ops)
	}
	if !strings.Contains(response, "2 rows × 3 columns") {
		t.Errorf("response = %q, want dimensions", response)
	}
	if !strings.Contains(response, "Revenue: average 1,025.00, range 850.00 to 1,200.00") {
		t.Errorf("response = %q, want Revenue statistics", response)
	}
}

func TestContextNoDataMessages(t *testing.T) {
	a := New(Options{})
	empty := &ExcelContext{
		Worksheet: Worksheet{Name: "Sales"},
		Selection: Selection{Address: "Sales!A1:C10", ColumnCount: 3},
	}

	res := a.ProcessWithContext(context.Background(), "calculate sum of range A1:C10", empty)
	if res.Response != "Please select a range with data to perform calculations." {
		t.Errorf("response = %q", res.Response)
	}
	if len(res.Operations) != 0 {
		t.Errorf("operations = %v, want none without data", res.Operations)
	}
}

func TestLoadContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "context.json")
	payload := `{
		"worksheet": {"name": "Q3"},
		"selection": {"address": "Q3!A1:B2", "rowCount": 2, "columnCount": 2,
			"values": [["Region", "Total"], ["North", 410.5]]}
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	ec, err := LoadContext(path)
	if err != nil {
		t.Fatalf("LoadContext: %v", err)
	}
	if ec.Worksheet.Name != "Q3" || ec.Selection.Address != "Q3!A1:B2" {
		t.Errorf("context = %+v", ec)
	}
	if ec.Selection.Values[1][1] != 410.5 {
		t.Errorf("values[1][1] = %v, want 410.5", ec.Selection.Values[1][1])
	}
}

func TestLoadContextMissingFile(t *testing.T) {
	if _, err := LoadContext(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("want error for missing context file")
	}
}
