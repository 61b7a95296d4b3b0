package nlp

import "strings"

// commonCommands are canned phrasings shown as suggestions and offered to
// the shell for completion.
var commonCommands = []string{
	"Create a pivot table from the data",
	"Add a formula to calculate tax in column D",
	"Sort the data by date ascending",
	"Filter rows where revenue > 1000",
	"Format column C as currency",
	"Create a bar chart from sales data",
	"Calculate the average of column B",
	"Find the top 10 customers by revenue",
	"Export data as CSV",
	"Create a new worksheet",
}

// Suggestions returns command completions for a partial input. With empty
// input it returns the top five examples.
func Suggestions(partial string) []string {
	if partial == "" {
		return append([]string(nil), commonCommands[:5]...)
	}

	lower := strings.ToLower(partial)
	var out []string
	for _, cmd := range commonCommands {
		if strings.Contains(strings.ToLower(cmd), lower) {
			out = append(out, cmd)
		}
	}
	return out
}
