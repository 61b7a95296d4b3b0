package agent

import "github.com/klytics/sheetmind/internal/ai"

// defaultHistoryWindow caps the conversation transcript. The transcript only
// enriches fallback prompts; the rule-based parser never sees it.
const defaultHistoryWindow = 10

// Transcript is an append-only bounded conversation log. Oldest entries are
// evicted first once the window is full.
type Transcript struct {
	entries []ai.Message
	max     int
}

// NewTranscript creates a transcript bounded to the given window size.
// A window of zero or less uses the default.
func NewTranscript(window int) *Transcript {
	if window <= 0 {
		window = defaultHistoryWindow
	}
	return &Transcript{max: window}
}

// Add appends one entry, evicting the oldest when over the window.
func (t *Transcript) Add(role, content string) {
	t.entries = append(t.entries, ai.Message{Role: role, Content: content})
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
}

// Messages returns a copy of the transcript entries, oldest first.
func (t *Transcript) Messages() []ai.Message {
	out := make([]ai.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of retained entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}
