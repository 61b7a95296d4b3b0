// Package shell provides the interactive SheetMind REPL.
package shell

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/klytics/sheetmind/internal/agent"
	"github.com/klytics/sheetmind/internal/nlp"
	"github.com/klytics/sheetmind/internal/table"
)

// Session manages an interactive SheetMind session: one agent, one optional
// open workbook, and the command history.
type Session struct {
	Agent          *agent.Agent
	CommandHistory []string
	HistoryFile    string
	StartTime      time.Time

	workbook *table.Workbook
}

// builtins are the session-level commands that never reach the agent.
var builtins = []string{
	"load", "save", "sheets", "suggest", "help", "history", "exit", "quit",
}

// NewSession creates a new interactive session around an agent.
func NewSession(a *agent.Agent) (*Session, error) {
	home, _ := os.UserHomeDir()
	histFile := filepath.Join(home, ".sheetmind", "shell_history")

	// Ensure parent dir exists
	os.MkdirAll(filepath.Dir(histFile), 0755)

	return &Session{
		Agent:       a,
		HistoryFile: histFile,
		StartTime:   time.Now(),
	}, nil
}

// Run starts the REPL loop. Blocks until 'exit' or Ctrl+D.
func (s *Session) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "sheetmind> ",
		HistoryFile:     s.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(s.buildCompleter()...),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Println("SheetMind — talk to your spreadsheets")
	fmt.Println("Type 'help' for commands, 'load <file.xlsx>' to open a workbook, 'exit' to quit.")
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.CommandHistory = append(s.CommandHistory, line)

		if done := s.evalBuiltin(ctx, line); done {
			return nil
		}
	}

	return nil
}

// evalBuiltin handles one line. The returned flag reports whether the session
// should end.
func (s *Session) evalBuiltin(ctx context.Context, line string) bool {
	switch {
	case line == "exit" || line == "quit":
		s.closeWorkbook()
		elapsed := time.Since(s.StartTime)
		fmt.Printf("\nSession ended. %d commands run in %s.\n",
			len(s.CommandHistory)-1, formatDuration(elapsed))
		return true
	case line == "help":
		s.printHelp()
	case line == "history":
		for i, cmd := range s.CommandHistory {
			fmt.Printf("  %d  %s\n", i+1, cmd)
		}
	case line == "sheets":
		if s.workbook == nil {
			fmt.Println("No workbook loaded. Use 'load <file.xlsx>' first.")
			break
		}
		for _, name := range s.workbook.ListSheets() {
			fmt.Printf("  %s\n", name)
		}
	case line == "suggest" || strings.HasPrefix(line, "suggest "):
		partial := strings.TrimSpace(strings.TrimPrefix(line, "suggest"))
		for _, sug := range nlp.Suggestions(partial) {
			fmt.Printf("  %s\n", sug)
		}
	case strings.HasPrefix(line, "load "):
		s.loadWorkbook(strings.TrimSpace(strings.TrimPrefix(line, "load ")))
	case line == "save" || strings.HasPrefix(line, "save "):
		s.saveWorkbook(strings.TrimSpace(strings.TrimPrefix(line, "save")))
	default:
		res := s.Agent.Process(ctx, line)
		fmt.Println(res.Response)
	}
	return false
}

// Load opens a workbook and attaches it to the session's agent, replacing
// any previously loaded one.
func (s *Session) Load(path string) error {
	wb, err := table.Open(path)
	if err != nil {
		return err
	}

	s.closeWorkbook()
	s.workbook = wb
	s.Agent.AttachBackend(wb)
	return nil
}

func (s *Session) loadWorkbook(path string) {
	if path == "" {
		fmt.Println("Usage: load <file.xlsx>")
		return
	}
	if err := s.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return
	}
	fmt.Printf("Loaded %s (sheets: %s)\n", path, strings.Join(s.workbook.ListSheets(), ", "))
}

func (s *Session) saveWorkbook(path string) {
	if s.workbook == nil {
		fmt.Println("No workbook loaded. Use 'load <file.xlsx>' first.")
		return
	}
	if err := s.workbook.Save(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return
	}
	if path == "" {
		path = s.workbook.Path()
	}
	fmt.Printf("Saved %s\n", path)
}

func (s *Session) closeWorkbook() {
	if s.workbook != nil {
		s.workbook.Close()
		s.workbook = nil
	}
}

func (s *Session) printHelp() {
	fmt.Println("Session commands:")
	fmt.Println()
	fmt.Println("  load <file.xlsx>  — open a workbook")
	fmt.Println("  save [path]       — save the workbook (optionally to a new path)")
	fmt.Println("  sheets            — list worksheet names")
	fmt.Println("  suggest [text]    — show example commands")
	fmt.Println("  history           — show command history")
	fmt.Println("  exit              — exit the shell")
	fmt.Println()
	fmt.Println("Anything else is treated as a natural-language command, for example:")
	for _, sug := range nlp.Suggestions("") {
		fmt.Printf("  %s\n", sug)
	}
}

// Complete returns completion candidates for the given input: builtins for
// the first word, canned command phrasings otherwise.
func (s *Session) Complete(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return append([]string(nil), builtins...)
	}

	parts := strings.Fields(input)
	if len(parts) == 1 && !strings.HasSuffix(input, " ") {
		var matches []string
		for _, cmd := range builtins {
			if strings.HasPrefix(cmd, parts[0]) {
				matches = append(matches, cmd)
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}

	return nlp.Suggestions(input)
}

func (s *Session) buildCompleter() []readline.PrefixCompleterInterface {
	var items []readline.PrefixCompleterInterface
	for _, cmd := range builtins {
		items = append(items, readline.PcItem(cmd))
	}
	for _, sug := range nlp.Suggestions("") {
		items = append(items, readline.PcItem(sug))
	}
	return items
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", m, s)
}
