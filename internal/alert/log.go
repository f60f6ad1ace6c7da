package alert

import (
	"sync"
	"time"

	"github.com/luki/watchline/internal/telemetry"
)

// Dispatch records one successfully delivered alert batch.
type Dispatch struct {
	At      time.Time
	Alerts  []Alert
	Reading telemetry.Reading
}

// Log keeps the most recent dispatches in memory for display. Nothing is
// written to disk; the log is gone on restart.
type Log struct {
	mu      sync.Mutex
	max     int
	entries []Dispatch
}

// NewLog creates a log holding at most max dispatches.
func NewLog(max int) *Log {
	if max < 1 {
		max = 1
	}
	return &Log{max: max}
}

// Add appends a dispatch, dropping the oldest entry when full.
func (l *Log) Add(d Dispatch) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) >= l.max {
		copy(l.entries, l.entries[1:])
		l.entries[len(l.entries)-1] = d
	} else {
		l.entries = append(l.entries, d)
	}
}

// Recent returns up to n dispatches, newest last.
func (l *Log) Recent(n int) []Dispatch {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n <= 0 || len(l.entries) == 0 {
		return nil
	}
	start := len(l.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Dispatch, len(l.entries[start:]))
	copy(out, l.entries[start:])
	return out
}
