// Package nlp turns free-form natural-language spreadsheet commands into
// structured intents using weighted keyword and regex matching.
package nlp

import (
	"fmt"
	"sort"
	"strings"
)

// Action is the operation family recognized in a command.
type Action string

// The eight recognized action families. ActionAnalyze is the fallback when
// nothing else matches.
const (
	ActionCreate    Action = "create"
	ActionCalculate Action = "calculate"
	ActionSort      Action = "sort"
	ActionFilter    Action = "filter"
	ActionFormat    Action = "format"
	ActionAnalyze   Action = "analyze"
	ActionExport    Action = "export"
	ActionImport    Action = "import"
)

// DefaultTarget is the target reference used when no column, row, range, or
// sheet reference is found in the command.
const DefaultTarget = "data"

// Intent is the structured result of classifying one command. It is built
// once per request and never mutated afterwards.
type Intent struct {
	Action     Action         `json:"action"`
	Target     string         `json:"target"`
	Params     map[string]any `json:"parameters"`
	Confidence float64        `json:"confidence"`
	RawText    string         `json:"rawText"`
}

// String renders the intent in a compact human-readable form, mainly for
// prompts and debug output.
func (in Intent) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s on %q", in.Action, in.Target)
	if len(in.Params) > 0 {
		keys := make([]string, 0, len(in.Params))
		for k := range in.Params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, in.Params[k])
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	fmt.Fprintf(&b, " [%.2f]", in.Confidence)
	return b.String()
}

// Param returns a string parameter, or the empty string if absent or not a
// string.
func (in Intent) Param(key string) string {
	if v, ok := in.Params[key].(string); ok {
		return v
	}
	return ""
}
