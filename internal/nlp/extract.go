package nlp

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	titleRe      = regexp.MustCompile(`(?:title|name|call it) ['"]([^'"]+)['"]`)
	percentRe    = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	gtRe         = regexp.MustCompile(`(?:greater than|>)\s*(\d+(?:\.\d+)?)`)
	ltRe         = regexp.MustCompile(`(?:less than|<)\s*(\d+(?:\.\d+)?)`)
	eqRe         = regexp.MustCompile(`(?:equal(?:s| to)?|=)\s*(?:"([^"]+)"|'([^']+)'|(\S+))`)
	containsRe   = regexp.MustCompile(`contains?\s+['"]([^'"]+)['"]`)
	colorRe      = regexp.MustCompile(`color[:\s]+(\w+)`)
	commonColRe  = regexp.MustCompile(`(?i)column ([A-Z])\b`)
	commonRngRe  = regexp.MustCompile(`(?i)([A-Z]+\d+:[A-Z]+\d+)`)
	commonShtRe  = regexp.MustCompile(`(?i)(?:sheet|worksheet)\s+(\w+)`)
)

// extractParams pulls action-specific parameters first, then runs the common
// extractors (column letter, A1-style range, sheet name). Common extractors
// run last and only add keys that are still absent, so an action-specific
// extraction is never overwritten.
func (c *Classifier) extractParams(text string, action Action) map[string]any {
	params := map[string]any{}

	switch action {
	case ActionCreate:
		extractCreate(text, params)
	case ActionCalculate:
		extractCalculate(text, params)
	case ActionSort:
		extractSort(text, params)
	case ActionFilter:
		extractFilter(text, params)
	case ActionFormat:
		extractFormat(text, params)
	case ActionAnalyze:
		extractAnalyze(text, params)
	}

	extractCommon(text, params)
	return params
}

func extractCreate(text string, params map[string]any) {
	switch {
	case strings.Contains(text, "pivot table"):
		params["chart_type"] = "pivot"
	case containsAny(text, "chart", "graph", "plot"):
		switch {
		case strings.Contains(text, "bar"):
			params["chart_type"] = "bar"
		case strings.Contains(text, "line"):
			params["chart_type"] = "line"
		case strings.Contains(text, "pie"):
			params["chart_type"] = "pie"
		default:
			params["chart_type"] = "bar"
		}
	}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		params["title"] = m[1]
	}
}

func extractCalculate(text string, params map[string]any) {
	switch {
	case containsAny(text, "sum", "total", "add"):
		params["operation"] = "sum"
	case containsAny(text, "average", "mean", "avg"):
		params["operation"] = "average"
	case strings.Contains(text, "count"):
		params["operation"] = "count"
	case containsAny(text, "max", "maximum", "highest"):
		params["operation"] = "max"
	case containsAny(text, "min", "minimum", "lowest"):
		params["operation"] = "min"
	}

	if m := percentRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			params["percentage"] = v
		}
	}
}

func extractSort(text string, params map[string]any) {
	if containsAny(text, "descending", "desc", "high to low", "largest first") {
		params["order"] = "desc"
	} else {
		params["order"] = "asc"
	}
}

// extractFilter recognizes exactly one comparison. Matches are applied in
// order >, <, =, contains with later matches overriding earlier ones, so a
// phrase like `contains "x"` is not swallowed by the generic = pattern.
func extractFilter(text string, params map[string]any) {
	if m := gtRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			params["operator"] = ">"
			params["value"] = v
		}
	}
	if m := ltRe.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			params["operator"] = "<"
			params["value"] = v
		}
	}
	if m := eqRe.FindStringSubmatch(text); m != nil {
		value := m[1]
		if value == "" {
			value = m[2]
		}
		if value == "" {
			value = m[3]
		}
		params["operator"] = "="
		params["value"] = value
	}
	if m := containsRe.FindStringSubmatch(text); m != nil {
		params["operator"] = "contains"
		params["value"] = m[1]
	}
}

func extractFormat(text string, params map[string]any) {
	switch {
	case strings.Contains(text, "currency"):
		params["format_type"] = "currency"
	case strings.Contains(text, "percentage"):
		params["format_type"] = "percentage"
	case strings.Contains(text, "date"):
		params["format_type"] = "date"
	case strings.Contains(text, "bold"):
		params["format_type"] = "bold"
	case strings.Contains(text, "italic"):
		params["format_type"] = "italic"
	}

	if m := colorRe.FindStringSubmatch(text); m != nil {
		params["color"] = m[1]
	}
}

func extractAnalyze(text string, params map[string]any) {
	switch {
	case strings.Contains(text, "correlation"):
		params["analysis_type"] = "correlation"
	case containsAny(text, "trend", "pattern"):
		params["analysis_type"] = "trend"
	case containsAny(text, "summary", "overview"):
		params["analysis_type"] = "summary"
	case containsAny(text, "statistics", "stats"):
		params["analysis_type"] = "statistics"
	}
}

func extractCommon(text string, params map[string]any) {
	if m := commonColRe.FindStringSubmatch(text); m != nil {
		setIfAbsent(params, "column", strings.ToUpper(m[1]))
	}
	if m := commonRngRe.FindStringSubmatch(text); m != nil {
		setIfAbsent(params, "range", strings.ToUpper(m[1]))
	}
	if m := commonShtRe.FindStringSubmatch(text); m != nil {
		setIfAbsent(params, "sheet", m[1])
	}
}

func setIfAbsent(params map[string]any, key string, value any) {
	if _, ok := params[key]; !ok {
		params[key] = value
	}
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
