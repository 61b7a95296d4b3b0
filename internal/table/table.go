// Package table provides the rectangular data model shared by the dispatcher
// and the Excel workbook backend. Cells are strings, as excelize reads them;
// numeric interpretation happens on demand.
package table

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Table is a header row plus data rows. The dispatcher reads and reorders
// tables; it never writes cells directly — that is the backend's job.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex resolves a header label to its column index, or -1 if no header
// matches. Matching is case-insensitive since commands arrive lower-cased.
func (t *Table) ColumnIndex(label string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(h, label) {
			return i
		}
	}
	return -1
}

// Column returns the cell values of one column, shorter rows contributing
// empty strings.
func (t *Table) Column(idx int) []string {
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// NumericColumns returns the indexes of columns whose non-empty cells all
// parse as numbers, with at least one such cell.
func (t *Table) NumericColumns() []int {
	var out []int
	for i := range t.Headers {
		numeric := 0
		mixed := false
		for _, cell := range t.Column(i) {
			if cell == "" {
				continue
			}
			if _, ok := ParseNumber(cell); ok {
				numeric++
			} else {
				mixed = true
				break
			}
		}
		if numeric > 0 && !mixed {
			out = append(out, i)
		}
	}
	return out
}

// SortBy stable-sorts the data rows by the given column. Numbers compare
// numerically when both cells parse; otherwise cells compare as strings.
// Rows with equal keys keep their relative order.
func (t *Table) SortBy(col int, ascending bool) {
	cell := func(row []string) string {
		if col < len(row) {
			return row[col]
		}
		return ""
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := cell(t.Rows[i]), cell(t.Rows[j])
		less := compareCells(a, b)
		if ascending {
			return less < 0
		}
		return less > 0
	})
}

func compareCells(a, b string) int {
	fa, okA := ParseNumber(a)
	fb, okB := ParseNumber(b)
	if okA && okB {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}

// BoundingRange returns the A1-style range covering the header row and all
// data rows, e.g. "A1:C11" for a 3-column table with 10 data rows.
func (t *Table) BoundingRange() string {
	cols := len(t.Headers)
	if cols == 0 {
		cols = 1
	}
	return fmt.Sprintf("A1:%s%d", ColumnLetter(cols-1), len(t.Rows)+1)
}

// ColumnLetter converts a zero-based column index to its spreadsheet letter
// ("A", "B", ... "Z", "AA", ...).
func ColumnLetter(idx int) string {
	letters := ""
	idx++
	for idx > 0 {
		idx--
		letters = string(rune('A'+idx%26)) + letters
		idx /= 26
	}
	return letters
}

// LetterIndex maps a single spreadsheet letter to a zero-based column index,
// or -1 when the reference is not a letter.
func LetterIndex(ref string) int {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if len(ref) != 1 || ref[0] < 'A' || ref[0] > 'Z' {
		return -1
	}
	return int(ref[0] - 'A')
}

// ParseNumber parses a cell as a float, tolerating thousands separators.
func ParseNumber(cell string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatNumber renders a float with two decimals and thousands separators,
// matching the response formatting of calculation results ("1,234.56").
func FormatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}
