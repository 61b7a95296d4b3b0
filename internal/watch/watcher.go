// Package watch monitors a workbook file for external changes and triggers a
// handler, so commands can be re-run against fresh data while the file is
// open in another program.
package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event represents one detected workbook change.
type Event struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	Operation string    `json:"operation"` // "CREATE", "WRITE", ...
	Status    string    `json:"status"`    // "processed", "error"
	Error     string    `json:"error,omitempty"`
}

// Handler is called after the debounce window when the workbook changed.
type Handler func(path string) error

// Watcher monitors a single workbook for create/write events. The parent
// directory is watched, not the file itself: editors replace files on save,
// which would silently drop an inode-level watch.
type Watcher struct {
	Path     string
	Debounce int // milliseconds
	Logger   *log.Logger
	Handler  Handler

	mu      sync.Mutex
	events  []Event
	watcher *fsnotify.Watcher
	timer   *time.Timer
}

// Status represents the current watcher status.
type Status struct {
	Running    bool   `json:"running"`
	Path       string `json:"path"`
	EventCount int    `json:"eventCount"`
}

// New creates a watcher for one workbook path.
func New(path string, debounceMs int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}
	if debounceMs <= 0 {
		debounceMs = 500
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}

	return &Watcher{
		Path:     abs,
		Debounce: debounceMs,
		Logger:   log.New(os.Stderr, "[watch] ", log.LstdFlags),
		watcher:  fsw,
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.Path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}

	w.Logger.Printf("Watching %s", w.Path)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Println("Stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.Logger.Printf("Error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	// Excel drops ~$ lock files next to the workbook while it is open.
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return
	}
	if filepath.Clean(event.Name) != w.Path {
		return
	}

	// Debounce: saves arrive as bursts of events.
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	op := event.Op.String()
	w.timer = time.AfterFunc(time.Duration(w.Debounce)*time.Millisecond, func() {
		w.processChange(op)
	})
	w.mu.Unlock()
}

func (w *Watcher) processChange(operation string) {
	evt := Event{
		Time:      time.Now(),
		Path:      w.Path,
		Operation: operation,
		Status:    "processed",
	}

	if w.Handler != nil {
		if err := w.Handler(w.Path); err != nil {
			evt.Status = "error"
			evt.Error = err.Error()
			w.Logger.Printf("Error processing %s: %v", w.Path, err)
		} else {
			w.Logger.Printf("Processed change to %s", w.Path)
		}
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// GetStatus returns the current watcher status.
func (w *Watcher) GetStatus() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Status{
		Running:    true,
		Path:       w.Path,
		EventCount: len(w.events),
	}
}

// GetEvents returns all recorded events.
func (w *Watcher) GetEvents() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
