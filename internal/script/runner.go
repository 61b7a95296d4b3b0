package script

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

// CommandFunc executes one natural-language command against the workbook and
// returns the assistant response. The cmd layer wires this to an agent
// session so the package stays free of agent internals.
type CommandFunc func(ctx context.Context, command, sheet string) (string, error)

// Runner executes script steps sequentially, resolving variable interpolation
// between steps.
type Runner struct {
	run     CommandFunc
	results map[string]*StepResult
	verbose bool
}

// NewRunner creates a script runner around a command executor.
func NewRunner(run CommandFunc, verbose bool) *Runner {
	return &Runner{
		run:     run,
		results: make(map[string]*StepResult),
		verbose: verbose,
	}
}

// Run executes all steps in order. A failing step aborts the run unless its
// on_failure is "skip".
func (r *Runner) Run(ctx context.Context, s *Script) ([]StepResult, error) {
	var results []StepResult

	if r.verbose {
		fmt.Printf("Running script: %s\n", s.Name)
	}

	for i, step := range s.Steps {
		if r.verbose {
			fmt.Printf("[%d/%d] %s: %s\n", i+1, len(s.Steps), step.ID, step.Command)
		}

		command := r.interpolate(step.Command)

		start := time.Now()
		response, err := r.run(ctx, command, step.Sheet)
		duration := time.Since(start)

		result := StepResult{
			StepID:   step.ID,
			Response: response,
			Error:    err,
		}
		results = append(results, result)
		r.results[step.ID] = &result

		if r.verbose {
			fmt.Printf("  Completed in %s\n", duration.Round(time.Millisecond))
		}

		if err != nil {
			if step.OnFailure == "skip" {
				if r.verbose {
					fmt.Printf("  Step %s failed (skipping): %s\n", step.ID, err)
				}
				continue
			}
			return results, fmt.Errorf("step %q failed: %w", step.ID, err)
		}
	}

	return results, nil
}

var interpolationPattern = regexp.MustCompile(`\$\{\{\s*([^}]+)\s*\}\}`)

// interpolate resolves ${{ ... }} expressions: steps.<id>.response, date.today,
// date.now, and env.VAR_NAME. Unknown expressions are left untouched.
func (r *Runner) interpolate(s string) string {
	return interpolationPattern.ReplaceAllStringFunc(s, func(match string) string {
		inner := interpolationPattern.FindStringSubmatch(match)
		if len(inner) < 2 {
			return match
		}
		expr := strings.TrimSpace(inner[1])

		if strings.HasPrefix(expr, "steps.") {
			parts := strings.Split(expr, ".")
			if len(parts) >= 3 && parts[2] == "response" {
				if result, ok := r.results[parts[1]]; ok {
					return result.Response
				}
			}
		}

		if expr == "date.today" {
			return time.Now().Format("2006-01-02")
		}
		if expr == "date.now" || expr == "date.timestamp" {
			return time.Now().Format(time.RFC3339)
		}

		if strings.HasPrefix(expr, "env.") {
			return os.Getenv(strings.TrimPrefix(expr, "env."))
		}

		return match
	})
}
