package agent

// Operation is a tagged instruction for a spreadsheet-client executor.
// The envelope is extensible: executors must skip unknown Type values
// rather than reject them.
type Operation struct {
	Type      string     `json:"type"`
	Range     string     `json:"range,omitempty"`
	Formula   [][]string `json:"formula,omitempty"`
	ChartType string     `json:"chartType,omitempty"`
	DataRange string     `json:"dataRange,omitempty"`
	Title     string     `json:"title,omitempty"`
	Key       *int       `json:"key,omitempty"`
	Ascending *bool      `json:"ascending,omitempty"`
}

// Operation type tags understood by the Excel add-in executor.
const (
	OpSetFormula  = "setFormula"
	OpInsertChart = "insertChart"
	OpSort        = "sort"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
