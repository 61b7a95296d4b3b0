package nlp

import (
	"regexp"
	"strings"
)

// actionPattern is one scoring category. Categories live in an ordered slice,
// not a map: when two categories tie, the first-declared one wins, and that
// ordering must stay deterministic.
type actionPattern struct {
	action Action
	groups []*regexp.Regexp
}

// targetPattern is one target-reference category, checked in declaration
// order. Specific references (column, row, range, sheet) come before the
// generic data pattern so they always win over the default.
type targetPattern struct {
	kind     string
	patterns []*regexp.Regexp
}

// Classifier maps a sentence to an Intent. It holds only compiled patterns
// and is safe for concurrent use.
type Classifier struct {
	actions []actionPattern
	targets []targetPattern
}

// NewClassifier compiles the pattern catalogue.
func NewClassifier() *Classifier {
	return &Classifier{
		actions: []actionPattern{
			// calculate is declared before create: a bare aggregate verb
			// ("sum column A") ties with create's noun group, and the tie
			// must resolve to the calculation.
			{ActionCalculate, compileAll(
				`calculate|compute|sum|average|count|total|find`,
				`formula|function|equation|operation`,
			)},
			{ActionCreate, compileAll(
				`create|make|add|generate|build|new`,
				`pivot table|chart|graph|plot|table|column|row|sheet|worksheet`,
			)},
			{ActionSort, compileAll(
				`sort|order|arrange|organize`,
				`ascending|descending|asc|desc|alphabetical|numerical`,
			)},
			{ActionFilter, compileAll(
				`filter|find|search|show|display|where`,
				`greater than|less than|equal|contains|matches|>|<|=`,
			)},
			{ActionFormat, compileAll(
				`format|style|color|font|bold|italic`,
				`currency|percentage|date|number|text`,
			)},
			{ActionAnalyze, compileAll(
				`analyze|analysis|correlation|trend|pattern|insight`,
				`statistics|stats|summary|report`,
			)},
			{ActionExport, compileAll(
				`export|save|download|output`,
				`csv|pdf|image|file`,
			)},
			{ActionImport, compileAll(
				`import|load|open|read`,
				`file|data|csv|excel`,
			)},
		},
		targets: []targetPattern{
			{"column", compileAll(
				`column [A-Z]+|col [A-Z]+`,
				`column \w+|col \w+`,
			)},
			{"row", compileAll(
				`row \d+`,
				`rows? \d+-\d+`,
			)},
			{"range", compileAll(
				`[A-Z]+\d+:[A-Z]+\d+`,
				`range [A-Z]+\d+:[A-Z]+\d+`,
			)},
			{"sheet", compileAll(
				`sheet \w+|worksheet \w+`,
				`tab \w+`,
			)},
			{"data", compileAll(
				`data|dataset|table|spreadsheet`,
				`all data|entire data|whole data`,
			)},
		},
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(`(?i)` + p)
	}
	return res
}

// domainTerms each add a 0.1 confidence bonus when present literally in the
// text. The stacking is uncapped; only the final sum is clamped to 1.0.
var domainTerms = []string{"formula", "cell", "range", "chart", "pivot", "sheet"}

// Classify turns a sentence into an Intent. It never fails: ambiguity shows
// up as low confidence, not as an error.
func (c *Classifier) Classify(text string) Intent {
	text = strings.ToLower(strings.TrimSpace(text))

	action := c.detectAction(text)
	target := c.detectTarget(text)
	params := c.extractParams(text, action)

	return Intent{
		Action:     action,
		Target:     target,
		Params:     params,
		Confidence: confidence(text, action, target, params),
		RawText:    text,
	}
}

// detectAction scores every category by total match count across its groups
// and returns the strict maximum. All-zero means no action was recognized at
// all, which falls back to analyze explicitly rather than best-guessing.
func (c *Classifier) detectAction(text string) Action {
	best := ActionAnalyze
	bestScore := 0
	for _, ap := range c.actions {
		score := 0
		for _, re := range ap.groups {
			score += len(re.FindAllString(text, -1))
		}
		if score > bestScore {
			best = ap.action
			bestScore = score
		}
	}
	if bestScore == 0 {
		return ActionAnalyze
	}
	return best
}

// detectTarget returns the literal matched span of the first target pattern
// that hits, or DefaultTarget when nothing matches.
func (c *Classifier) detectTarget(text string) string {
	for _, tp := range c.targets {
		for _, re := range tp.patterns {
			if m := re.FindString(text); m != "" {
				return m
			}
		}
	}
	return DefaultTarget
}

// confidence is a heuristic score, not a probability: it grows monotonically
// with the amount of specific structure recognized and is clamped to [0,1].
func confidence(text string, action Action, target string, params map[string]any) float64 {
	score := 0.0
	if action != ActionAnalyze {
		score += 0.3
	}
	if target != DefaultTarget {
		score += 0.2
	}
	if n := len(params); n > 0 {
		bonus := 0.1 * float64(n)
		if bonus > 0.4 {
			bonus = 0.4
		}
		score += bonus
	}
	for _, term := range domainTerms {
		if strings.Contains(text, term) {
			score += 0.1
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
