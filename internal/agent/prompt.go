package agent

import (
	"fmt"
	"strings"

	"github.com/klytics/sheetmind/internal/nlp"
)

// systemPrompt frames every fallback call. Capabilities are listed so the
// model stays inside what the dispatcher can actually do.
const systemPrompt = `You are SheetMind, an AI assistant specialized in Excel operations.

Your capabilities include:
- Load and analyze Excel files
- Create charts (bar, line, pie)
- Perform calculations (sum, average, count, min, max)
- Sort data by columns
- Filter data with conditions
- Analyze data patterns and statistics
- Create new worksheets
- Process natural language commands

Guidelines:
1. Always provide clear, actionable responses
2. When performing operations, explain what you're doing
3. If you need clarification, ask specific questions
4. Focus on practical Excel solutions
5. Be concise but thorough in explanations

Respond in a helpful, professional manner while being conversational.`

// interpretationPrompt builds the low-confidence escalation prompt. The
// parsed intent is embedded so the model sees what the rule-based pass
// already recognized.
func interpretationPrompt(query string, intent nlp.Intent) string {
	return fmt.Sprintf(`User query: %q

My initial parsing detected:
- Action: %s
- Target: %s
- Parameters: %v
- Confidence: %.2f

Please provide a clear interpretation of what the user wants to do with their Excel data.
Focus on the specific Excel operation they're requesting.`,
		query, intent.Action, intent.Target, intent.Params, intent.Confidence)
}

// interpretationPromptWithContext is the context-mode variant, prefixed with
// the selection analysis.
func interpretationPromptWithContext(query string, intent nlp.Intent, analysis ContextAnalysis) string {
	return fmt.Sprintf(`Current Excel Context:
%s

%s`, analysis.Summary(), interpretationPrompt(query, intent))
}

// localFallback answers when no AI provider is reachable. Plain keyword
// matching over the most common requests; the closing catch-all echoes the
// prompt so the user knows they were heard.
func localFallback(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "sum"):
		return "I can help you sum data. Select the range you want to sum and I'll add the SUM formula."
	case strings.Contains(lower, "chart"):
		return "I can create charts from your data. Select the data range and I'll create a chart for you."
	case strings.Contains(lower, "format") && strings.Contains(lower, "currency"):
		return "I can format cells as currency. Select the cells and I'll apply currency formatting."
	case strings.Contains(lower, "bold"):
		return "I can make text bold. Select the cells and I'll apply bold formatting."
	case strings.Contains(lower, "clear"):
		return "I can clear cell contents. Select the cells you want to clear."
	case strings.Contains(lower, "table"):
		return "I can create formatted tables. Select your data range and I'll convert it to a table."
	case strings.Contains(lower, "analyze"):
		return "I can analyze your data. Select the range and I'll provide basic statistics."
	default:
		return fmt.Sprintf("I understand you want to: %s. Available commands: sum, chart, format currency, bold, clear, table, analyze", prompt)
	}
}
