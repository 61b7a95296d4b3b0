package shell

import (
	"testing"
	"time"

	"github.com/klytics/sheetmind/internal/agent"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	s, err := NewSession(agent.New(agent.Options{}))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession(t *testing.T) {
	s := newSession(t)
	if len(s.CommandHistory) != 0 {
		t.Errorf("expected empty history, got %d entries", len(s.CommandHistory))
	}
	if s.HistoryFile == "" {
		t.Error("expected history file path to be set")
	}
	if s.Agent == nil {
		t.Error("expected agent to be set")
	}
}

func TestCompleteBuiltins(t *testing.T) {
	s := newSession(t)

	matches := s.Complete("lo")
	if len(matches) != 1 || matches[0] != "load" {
		t.Errorf("expected [load], got %v", matches)
	}

	matches = s.Complete("s")
	found := make(map[string]bool)
	for _, m := range matches {
		found[m] = true
	}
	for _, expected := range []string{"save", "sheets", "suggest"} {
		if !found[expected] {
			t.Errorf("expected %q in completions, got %v", expected, matches)
		}
	}
}

func TestCompleteEmptyListsBuiltins(t *testing.T) {
	s := newSession(t)
	matches := s.Complete("")
	if len(matches) != len(builtins) {
		t.Errorf("expected %d builtins, got %v", len(builtins), matches)
	}
}

func TestCompleteFallsBackToSuggestions(t *testing.T) {
	s := newSession(t)

	matches := s.Complete("pivot")
	if len(matches) == 0 {
		t.Fatal("expected canned suggestion for 'pivot'")
	}
	if matches[0] != "Create a pivot table from the data" {
		t.Errorf("matches = %v", matches)
	}
}

func TestCompleteUnknownInput(t *testing.T) {
	s := newSession(t)
	if matches := s.Complete("zzz qqq"); len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{30 * time.Second, "30s"},
		{90 * time.Second, "1m 30s"},
		{5 * time.Minute, "5m 0s"},
	}
	for _, tc := range tests {
		if got := formatDuration(tc.input); got != tc.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}
