// Package history provides the bounded sliding window of recent telemetry,
// one series per channel sharing a single timestamp axis.
package history

import (
	"sync"

	"github.com/luki/watchline/internal/telemetry"
)

// Window holds the last N samples of every channel. All series evict their
// oldest entry together, so an index always addresses the same instant
// across channels. Appends happen on the ingestion goroutine; Snapshot may
// be called from any goroutine.
type Window struct {
	mu  sync.Mutex
	cap int

	ts          []float64
	gas         []float64
	sound       []float64
	water       []float64
	vibration   []bool
	temperature []*float64
	humidity    []*float64
	motion      []bool
}

// Snapshot is an immutable copy of the window, safe to render or inspect
// while ingestion keeps appending.
type Snapshot struct {
	Ts          []float64
	Gas         []float64
	Sound       []float64
	Water       []float64
	Vibration   []bool
	Temperature []*float64
	Humidity    []*float64
	Motion      []bool
}

// NewWindow creates a window capped at capacity samples per channel.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{cap: capacity}
}

// Append records one reading. At capacity the oldest sample of every
// channel is evicted first.
func (w *Window) Append(r telemetry.Reading) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.ts) >= w.cap {
		w.ts = shift(w.ts)
		w.gas = shift(w.gas)
		w.sound = shift(w.sound)
		w.water = shift(w.water)
		w.vibration = shift(w.vibration)
		w.temperature = shift(w.temperature)
		w.humidity = shift(w.humidity)
		w.motion = shift(w.motion)
	}

	w.ts = append(w.ts, r.Elapsed)
	w.gas = append(w.gas, r.Gas)
	w.sound = append(w.sound, r.Sound)
	w.water = append(w.water, r.Water)
	w.vibration = append(w.vibration, r.Vibration)
	w.temperature = append(w.temperature, r.Temperature)
	w.humidity = append(w.humidity, r.Humidity)
	w.motion = append(w.motion, r.Motion)
}

func shift[T any](s []T) []T {
	copy(s, s[1:])
	return s[:len(s)-1]
}

// Len returns the number of samples currently held.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.ts)
}

// Cap returns the configured capacity.
func (w *Window) Cap() int {
	return w.cap
}

// Snapshot copies every series under the lock.
func (w *Window) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Snapshot{
		Ts:          clone(w.ts),
		Gas:         clone(w.gas),
		Sound:       clone(w.sound),
		Water:       clone(w.water),
		Vibration:   clone(w.vibration),
		Temperature: clone(w.temperature),
		Humidity:    clone(w.humidity),
		Motion:      clone(w.motion),
	}
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
