// Package telemetry provides local usage analytics. Privacy-first: no user
// ID, no file paths, no command text — only the recognized action and score.
package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Event represents a single anonymous telemetry event.
type Event struct {
	Timestamp  time.Time `json:"ts"`
	Command    string    `json:"cmd"`
	Action     string    `json:"action,omitempty"`
	Confidence float64   `json:"conf,omitempty"`
	Escalated  bool      `json:"esc,omitempty"`
	DurationMs int64     `json:"ms"`
	ExitCode   int       `json:"exit"`
}

// Stats holds aggregated telemetry statistics.
type Stats struct {
	TotalCommands int            `json:"total_commands"`
	TopActions    map[string]int `json:"top_actions"`
	AvgConfidence float64        `json:"avg_confidence"`
	AvgDuration   float64        `json:"avg_duration_ms"`
	EscalatedRate float64        `json:"escalated_rate"`
	ErrorCount    int            `json:"error_count"`
}

// Store manages the local telemetry store (~/.sheetmind/telemetry.jsonl).
type Store struct {
	Path    string
	MaxSize int64 // default 10MB
}

// DefaultStore returns a Store at the default location.
func DefaultStore() *Store {
	home, _ := os.UserHomeDir()
	return &Store{
		Path:    filepath.Join(home, ".sheetmind", "telemetry.jsonl"),
		MaxSize: 10 * 1024 * 1024,
	}
}

// Record appends an event to the local store. Non-blocking, best-effort.
func (s *Store) Record(e Event) {
	dir := filepath.Dir(s.Path)
	_ = os.MkdirAll(dir, 0755)

	f, err := os.OpenFile(s.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = f.Write(data)
}

// Summary returns aggregated stats from the local store.
func (s *Store) Summary() (*Stats, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Stats{TopActions: make(map[string]int)}, nil
		}
		return nil, err
	}

	stats := &Stats{TopActions: make(map[string]int)}
	var totalDuration int64
	var totalConfidence float64
	escalated := 0

	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		stats.TotalCommands++
		if e.Action != "" {
			stats.TopActions[e.Action]++
		}
		totalDuration += e.DurationMs
		totalConfidence += e.Confidence
		if e.Escalated {
			escalated++
		}
		if e.ExitCode != 0 {
			stats.ErrorCount++
		}
	}

	if stats.TotalCommands > 0 {
		n := float64(stats.TotalCommands)
		stats.AvgDuration = float64(totalDuration) / n
		stats.AvgConfidence = totalConfidence / n
		stats.EscalatedRate = float64(escalated) / n
	}

	return stats, nil
}

// Size returns the size of the telemetry store in bytes.
func (s *Store) Size() int64 {
	info, err := os.Stat(s.Path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// Rotate truncates the store when it exceeds MaxSize.
func (s *Store) Rotate() error {
	info, err := os.Stat(s.Path)
	if err != nil {
		return nil
	}
	if info.Size() <= s.MaxSize {
		return nil
	}
	return os.Truncate(s.Path, 0)
}

// Clear removes all telemetry data.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.Path); os.IsNotExist(err) {
		return nil
	}
	return os.Truncate(s.Path, 0)
}
