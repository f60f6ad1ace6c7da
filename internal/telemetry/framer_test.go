package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFramerSplitsLines(t *testing.T) {
	var f LineFramer

	lines := f.Feed([]byte("{\"gas\": 12}\n{\"gas\": 13}\npartial"))
	require.Equal(t, []string{`{"gas": 12}`, `{"gas": 13}`}, lines)
	require.True(t, f.Pending())

	lines = f.Feed([]byte(" tail\n"))
	require.Equal(t, []string{"partial tail"}, lines)
	require.False(t, f.Pending())
}

func TestFramerDropsEmptyLines(t *testing.T) {
	var f LineFramer

	lines := f.Feed([]byte("\n  \n\r\nabc\r\n"))
	require.Equal(t, []string{"abc"}, lines)
}

func TestFramerChunkBoundaryInvariance(t *testing.T) {
	stream := []byte("{\"temp\": 21.5}\nROM: boot ok\r\nEVT;motion=1;gas=412\n°C split\n")

	var whole LineFramer
	want := whole.Feed(stream)

	// Feeding the same stream one byte at a time, including splits inside
	// the multi-byte degree sign, must yield the same lines.
	for size := 1; size <= 5; size++ {
		var f LineFramer
		var got []string
		for i := 0; i < len(stream); i += size {
			end := i + size
			if end > len(stream) {
				end = len(stream)
			}
			got = append(got, f.Feed(stream[i:end])...)
		}
		require.Equal(t, want, got, "chunk size %d", size)
	}
}

func TestFramerReplacesInvalidBytes(t *testing.T) {
	var f LineFramer

	lines := f.Feed([]byte{'a', 0xff, 'b', '\n'})
	require.Len(t, lines, 1)
	require.Equal(t, "a�b", lines[0])
}

func TestFramerReset(t *testing.T) {
	var f LineFramer

	f.Feed([]byte(`{"gas": 9`))
	require.True(t, f.Pending())

	f.Reset()
	require.False(t, f.Pending())

	// The discarded fragment must not leak into the next session's line.
	lines := f.Feed([]byte("99}\n"))
	require.Equal(t, []string{"99}"}, lines)
}
