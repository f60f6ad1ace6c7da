package history

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luki/watchline/internal/telemetry"
)

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(5)

	for i := 0; i < 7; i++ {
		w.Append(telemetry.Reading{Elapsed: float64(i), Gas: float64(100 + i)})
	}

	require.Equal(t, 5, w.Len())

	s := w.Snapshot()
	// After 7 inserts into a window of 5, samples 0 and 1 are gone.
	require.Equal(t, []float64{2, 3, 4, 5, 6}, s.Ts)
	require.Equal(t, []float64{102, 103, 104, 105, 106}, s.Gas)
}

func TestWindowSeriesStayAligned(t *testing.T) {
	w := NewWindow(3)

	w.Append(telemetry.Reading{Elapsed: 1, Gas: 10, Temperature: telemetry.Float(20)})
	w.Append(telemetry.Reading{Elapsed: 2, Gas: 11})
	w.Append(telemetry.Reading{Elapsed: 3, Gas: 12, Motion: true})
	w.Append(telemetry.Reading{Elapsed: 4, Gas: 13, Vibration: true})

	s := w.Snapshot()
	require.Equal(t, []float64{2, 3, 4}, s.Ts)
	require.Equal(t, []float64{11, 12, 13}, s.Gas)
	require.Equal(t, []bool{false, true, false}, s.Motion)
	require.Equal(t, []bool{false, false, true}, s.Vibration)

	// The sample carrying a temperature was evicted with its timestamp.
	require.Len(t, s.Temperature, 3)
	for _, v := range s.Temperature {
		require.Nil(t, v)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w := NewWindow(10)
	w.Append(telemetry.Reading{Elapsed: 1, Gas: 10})

	s := w.Snapshot()
	s.Gas[0] = 999
	s.Ts[0] = 999

	fresh := w.Snapshot()
	require.Equal(t, 10.0, fresh.Gas[0])
	require.Equal(t, 1.0, fresh.Ts[0])
}

func TestWindowMinimumCapacity(t *testing.T) {
	w := NewWindow(0)
	w.Append(telemetry.Reading{Elapsed: 1})
	w.Append(telemetry.Reading{Elapsed: 2})
	require.Equal(t, 1, w.Len())
}
