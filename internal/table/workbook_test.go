package table

import (
	"path/filepath"
	"testing"
)

func tempWorkbook(t *testing.T) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.xlsx")
	w, err := Open(path)
	if err != nil {
		t.Fatalf("could not open workbook: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func TestWriteAndReadTable(t *testing.T) {
	w := tempWorkbook(t)

	in := sampleTable()
	if err := w.WriteTable(in, "", 1, 1); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := w.GetTable("")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(out.Headers) != 3 || out.Headers[1] != "Revenue" {
		t.Errorf("unexpected headers: %v", out.Headers)
	}
	if len(out.Rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(out.Rows))
	}
	if out.Rows[0][0] != "Acme" {
		t.Errorf("unexpected first row: %v", out.Rows[0])
	}
}

func TestWriteTableRoundTripsNumbers(t *testing.T) {
	w := tempWorkbook(t)

	in := &Table{Headers: []string{"N"}, Rows: [][]string{{"1200"}}}
	if err := w.WriteTable(in, "", 1, 1); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out, err := w.GetTable("")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if _, ok := ParseNumber(out.Rows[0][0]); !ok {
		t.Errorf("expected numeric cell, got %q", out.Rows[0][0])
	}
}

func TestGetTableEmptySheet(t *testing.T) {
	w := tempWorkbook(t)

	tbl, err := w.GetTable("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !tbl.IsEmpty() {
		t.Error("expected empty table from a fresh workbook")
	}
}

func TestSetFormula(t *testing.T) {
	w := tempWorkbook(t)
	if err := w.SetFormula("D1", "=SUM(A1:A10)", ""); err != nil {
		t.Fatalf("set formula failed: %v", err)
	}
}

func TestCreateChart(t *testing.T) {
	w := tempWorkbook(t)
	if err := w.WriteTable(sampleTable(), "", 1, 1); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if err := w.CreateChart("bar", "A1:C5", "Test Chart", ""); err != nil {
		t.Fatalf("chart creation failed: %v", err)
	}
}

func TestCreateChartBadRange(t *testing.T) {
	w := tempWorkbook(t)
	if err := w.CreateChart("bar", "nonsense", "", ""); err == nil {
		t.Error("expected error for invalid range")
	}
}

func TestCreateSheetAndList(t *testing.T) {
	w := tempWorkbook(t)

	if err := w.CreateSheet("Budget"); err != nil {
		t.Fatalf("create sheet failed: %v", err)
	}

	sheets := w.ListSheets()
	found := false
	for _, s := range sheets {
		if s == "Budget" {
			found = true
		}
	}
	if !found {
		t.Errorf("Budget not in sheet list: %v", sheets)
	}
}

func TestSaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.xlsx")

	w, err := Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if err := w.WriteTable(sampleTable(), "", 1, 1); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := w.Save(""); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	w.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	tbl, err := reopened.GetTable("")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(tbl.Rows) != 4 {
		t.Errorf("expected 4 rows after reopen, got %d", len(tbl.Rows))
	}
}
