package telemetry

import (
	"bytes"
	"strings"
)

// LineFramer accumulates raw serial chunks and splits out complete lines.
// A chunk may end mid-line or mid-rune; the trailing fragment stays buffered
// until the next Feed. Decoding is lossy: invalid byte sequences are
// replaced, never fatal.
type LineFramer struct {
	buf []byte
}

// Feed appends a chunk and returns every complete line it closed off,
// trimmed of surrounding whitespace. Empty lines are dropped.
func (f *LineFramer) Feed(p []byte) []string {
	f.buf = append(f.buf, p...)

	var lines []string
	for {
		idx := bytes.IndexByte(f.buf, '\n')
		if idx < 0 {
			break
		}
		raw := f.buf[:idx]
		f.buf = f.buf[idx+1:]

		line := strings.TrimSpace(strings.ToValidUTF8(string(raw), "�"))
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Reset discards any buffered fragment. Called after a reconnect: a line
// cannot span two sessions of the link.
func (f *LineFramer) Reset() {
	f.buf = nil
}

// Pending reports whether a partial line is buffered.
func (f *LineFramer) Pending() bool {
	return len(f.buf) > 0
}
