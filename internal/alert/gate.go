package alert

import "time"

// Gate is the single global cooldown between notification dispatches.
// There is no per-kind deduplication: any successful dispatch arms the
// cooldown for all alert kinds.
//
// A failed dispatch leaves the gate open, so the next reading may attempt
// again immediately. With a persistently failing sink and a sustained
// fault this retries every sample; that matches the deployed behavior and
// stays until the product owner signs off on hardening it.
type Gate struct {
	cooldown time.Duration
	enabled  bool
	last     time.Time // zero until the first successful dispatch
}

// NewGate creates a gate. enabled is false when no sink is configured;
// a disabled gate refuses every acquire silently.
func NewGate(cooldown time.Duration, enabled bool) *Gate {
	return &Gate{cooldown: cooldown, enabled: enabled}
}

// TryAcquire reports whether a non-empty alert batch may be dispatched now.
func (g *Gate) TryAcquire(now time.Time, hasAlerts bool) bool {
	if !hasAlerts || !g.enabled {
		return false
	}
	if g.last.IsZero() {
		return true
	}
	return now.Sub(g.last) >= g.cooldown
}

// RecordSuccess arms the cooldown. Call only after the sink reported
// success; a failed dispatch must not move the window.
func (g *Gate) RecordSuccess(now time.Time) {
	g.last = now
}

// LastNotified returns the time of the last successful dispatch and
// whether one has happened yet.
func (g *Gate) LastNotified() (time.Time, bool) {
	return g.last, !g.last.IsZero()
}
