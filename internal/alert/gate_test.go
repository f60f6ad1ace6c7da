package alert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luki/watchline/internal/telemetry"
)

func TestGateLifecycle(t *testing.T) {
	g := NewGate(60*time.Second, true)
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// Never notified: first acquire with alerts passes.
	require.True(t, g.TryAcquire(now, true))

	g.RecordSuccess(now)

	// Inside the cooldown window: refused.
	require.False(t, g.TryAcquire(now.Add(30*time.Second), true))
	require.False(t, g.TryAcquire(now.Add(59*time.Second), true))

	// At and past the boundary: open again.
	require.True(t, g.TryAcquire(now.Add(60*time.Second), true))
	require.True(t, g.TryAcquire(now.Add(2*time.Minute), true))
}

func TestGateRequiresAlerts(t *testing.T) {
	g := NewGate(time.Minute, true)
	require.False(t, g.TryAcquire(time.Now(), false))
}

func TestGateDisabledWithoutSink(t *testing.T) {
	g := NewGate(time.Minute, false)
	require.False(t, g.TryAcquire(time.Now(), true))
}

func TestFailedDispatchLeavesGateOpen(t *testing.T) {
	g := NewGate(time.Minute, true)
	now := time.Now()

	// A failure means RecordSuccess is never called, so the very next
	// sample may try again.
	require.True(t, g.TryAcquire(now, true))
	require.True(t, g.TryAcquire(now.Add(time.Second), true))

	g.RecordSuccess(now.Add(time.Second))
	require.False(t, g.TryAcquire(now.Add(2*time.Second), true))

	last, ok := g.LastNotified()
	require.True(t, ok)
	require.Equal(t, now.Add(time.Second), last)
}

func TestLogEvictsOldest(t *testing.T) {
	l := NewLog(2)
	base := time.Now()

	for i := 0; i < 3; i++ {
		l.Add(Dispatch{
			At:      base.Add(time.Duration(i) * time.Minute),
			Alerts:  []Alert{{Kind: HighGas, Message: "HIGH GAS: 400", Value: 400}},
			Reading: telemetry.Reading{Gas: 400},
		})
	}

	got := l.Recent(10)
	require.Len(t, got, 2)
	require.Equal(t, base.Add(time.Minute), got[0].At)
	require.Equal(t, base.Add(2*time.Minute), got[1].At)
}
