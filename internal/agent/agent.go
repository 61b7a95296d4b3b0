// Package agent resolves classified intents into concrete spreadsheet
// operations. It owns one session: a workbook backend, an optional AI
// fallback provider, and a bounded conversation transcript.
package agent

import (
	"context"
	"strings"

	"github.com/klytics/sheetmind/internal/ai"
	"github.com/klytics/sheetmind/internal/nlp"
	"github.com/klytics/sheetmind/internal/table"
)

// DefaultConfidenceThreshold gates local resolution: below it, the parsed
// structure is considered too unreliable to act on mechanically and the
// query escalates to the AI fallback.
const DefaultConfidenceThreshold = 0.6

// Backend is the table collaborator the dispatcher works against. The
// excelize-backed table.Workbook implements it; tests use an in-memory fake.
type Backend interface {
	GetTable(sheet string) (*table.Table, error)
	WriteTable(t *table.Table, sheet string, startRow, startCol int) error
	SetFormula(cell, formula, sheet string) error
	CreateChart(chartType, dataRange, title, sheet string) error
	CreateSheet(name string) error
	ListSheets() []string
	Save(path string) error
}

// Options configures a new Agent. Zero values fall back to defaults; a nil
// Provider degrades AI escalation to canned local responses.
type Options struct {
	Provider            ai.Provider
	ConfidenceThreshold float64
	HistoryWindow       int
}

// Agent is one assistant session. It is not safe for concurrent use: a
// session owns its workbook and transcript, and concurrent sessions must
// each own their own Agent.
type Agent struct {
	classifier *nlp.Classifier
	provider   ai.Provider
	backend    Backend
	transcript *Transcript
	threshold  float64
}

// New creates an agent session.
func New(opts Options) *Agent {
	threshold := opts.ConfidenceThreshold
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Agent{
		classifier: nlp.NewClassifier(),
		provider:   opts.Provider,
		transcript: NewTranscript(opts.HistoryWindow),
		threshold:  threshold,
	}
}

// AttachBackend sets the workbook this session operates on.
func (a *Agent) AttachBackend(b Backend) {
	a.backend = b
}

// Backend returns the attached workbook backend, or nil.
func (a *Agent) Backend() Backend {
	return a.backend
}

// Result is the outcome of processing one command. Operations is non-empty
// only in selection-context mode; workbook mode applies changes directly
// through the backend.
type Result struct {
	Response   string           `json:"response"`
	Intent     nlp.Intent       `json:"intent"`
	Operations []Operation      `json:"operations,omitempty"`
	Analysis   *ContextAnalysis `json:"contextAnalysis,omitempty"`
}

// Process handles one command against the attached workbook. It never
// returns an error: every failure path yields a user-facing response text.
func (a *Agent) Process(ctx context.Context, query string) Result {
	history := a.transcript.Messages()
	a.transcript.Add("user", query)

	if a.backend == nil && !mentionsLoading(query) {
		response := "I'd be happy to help with Excel operations! However, no Excel file is currently loaded. Please either:\n" +
			"1. Load an existing file: 'load file.xlsx'\n" +
			"2. Create a new file: 'create a new workbook'"
		a.transcript.Add("assistant", response)
		return Result{Response: response}
	}

	intent := a.classifier.Classify(query)

	var response string
	if intent.Confidence < a.threshold {
		// One fallback call, accepted as the final response. The fallback
		// text is never fed back into the classifier.
		response = a.generate(ctx, history, interpretationPrompt(query, intent))
	} else {
		response = a.dispatch(intent)
	}

	a.transcript.Add("assistant", response)
	return Result{Response: response, Intent: intent}
}

// ProcessWithContext handles one command against a live selection context
// instead of a workbook, emitting operation records for the client executor.
func (a *Agent) ProcessWithContext(ctx context.Context, query string, ec *ExcelContext) Result {
	history := a.transcript.Messages()
	a.transcript.Add("user", query)

	intent := a.classifier.Classify(query)
	analysis := AnalyzeContext(ec)

	var response string
	var ops []Operation
	if intent.Confidence < a.threshold {
		response = a.generate(ctx, history, interpretationPromptWithContext(query, intent, analysis))
	} else {
		response, ops = a.dispatchWithContext(intent, ec, analysis)
	}

	a.transcript.Add("assistant", response)
	return Result{Response: response, Intent: intent, Operations: ops, Analysis: &analysis}
}

// Transcript exposes the session transcript, mainly for inspection.
func (a *Agent) Transcript() *Transcript {
	return a.transcript
}

// generate runs the AI fallback. Provider failures degrade to a canned local
// response; they are never surfaced as hard errors.
func (a *Agent) generate(ctx context.Context, history []ai.Message, prompt string) string {
	if a.provider == nil {
		return localFallback(prompt)
	}

	messages := append(history, ai.Message{Role: "user", Content: prompt})
	reply, err := a.provider.Generate(ctx, systemPrompt, messages)
	if err != nil || strings.TrimSpace(reply) == "" {
		return localFallback(prompt)
	}
	return reply
}

func mentionsLoading(query string) bool {
	lower := strings.ToLower(query)
	for _, w := range []string{"load", "open", "create", "new"} {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
