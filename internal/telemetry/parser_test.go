package telemetry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONParserFullFrame(t *testing.T) {
	p := &JSONParser{}

	r, ok := p.Parse(`{"gas": 350, "sound": 120, "water": 40, "vibration": 1, "temp": 21.5, "humidity": 55, "motion": 0}`, 12.5)
	require.True(t, ok)
	require.Equal(t, 12.5, r.Elapsed)
	require.Equal(t, 350.0, r.Gas)
	require.Equal(t, 120.0, r.Sound)
	require.Equal(t, 40.0, r.Water)
	require.True(t, r.Vibration)
	require.False(t, r.Motion)
	require.NotNil(t, r.Temperature)
	require.Equal(t, 21.5, *r.Temperature)
	require.NotNil(t, r.Humidity)
	require.Equal(t, 55.0, *r.Humidity)
}

func TestJSONParserMissingFields(t *testing.T) {
	p := &JSONParser{}

	r, ok := p.Parse(`{"gas": 10}`, 0)
	require.True(t, ok)
	require.Equal(t, 10.0, r.Gas)
	require.Equal(t, 0.0, r.Sound)
	require.Equal(t, 0.0, r.Water)
	require.False(t, r.Vibration)
	require.False(t, r.Motion)
	require.Nil(t, r.Temperature, "absent temp must stay unset, not 0")
	require.Nil(t, r.Humidity, "absent humidity must stay unset, not 0")
}

func TestJSONParserNaNToken(t *testing.T) {
	p := &JSONParser{}

	// DHT read failures print literal nan; the frame must still decode
	// with the affected sensors marked missing.
	r, ok := p.Parse(`{"gas": 5, "temp": nan, "humidity": nan}`, 0)
	require.True(t, ok)
	require.Equal(t, 5.0, r.Gas)
	require.Nil(t, r.Temperature)
	require.Nil(t, r.Humidity)
}

func TestJSONParserBooleanEncodings(t *testing.T) {
	p := &JSONParser{}

	r, ok := p.Parse(`{"vibration": true, "motion": 1}`, 0)
	require.True(t, ok)
	require.True(t, r.Vibration)
	require.True(t, r.Motion)

	r, ok = p.Parse(`{"vibration": 0, "motion": false}`, 0)
	require.True(t, ok)
	require.False(t, r.Vibration)
	require.False(t, r.Motion)
}

func TestJSONParserRawLines(t *testing.T) {
	p := &JSONParser{}

	for _, line := range []string{
		"ROM: boot ok",
		"{\"gas\": 5",       // truncated frame
		"gas=5;sound=10",    // wrong format
		"[1, 2, 3]",         // wrong sentinel
		"{not json at all}", // sentinel but undecodable
	} {
		_, ok := p.Parse(line, 0)
		require.False(t, ok, "line %q must classify as raw", line)
	}
}

func TestEventParser(t *testing.T) {
	p := &EventParser{Prefix: "EVT"}

	r, ok := p.Parse("EVT;motion=1;gas=412;temp=18.5", 3.0)
	require.True(t, ok)
	require.Equal(t, 3.0, r.Elapsed)
	require.True(t, r.Motion)
	require.Equal(t, 412.0, r.Gas)
	require.NotNil(t, r.Temperature)
	require.Equal(t, 18.5, *r.Temperature)
	require.Nil(t, r.Humidity)
	require.False(t, r.Vibration)
}

func TestEventParserRejectsOtherLines(t *testing.T) {
	p := &EventParser{Prefix: "EVT"}

	for _, line := range []string{
		"EVTX;motion=1", // prefix must be a whole token
		"motion=1",
		`{"gas": 5}`,
		"ROM: boot ok",
	} {
		_, ok := p.Parse(line, 0)
		require.False(t, ok, "line %q must classify as raw", line)
	}
}

func TestEventParserMalformedPairs(t *testing.T) {
	p := &EventParser{}

	r, ok := p.Parse("EVT;gas=oops;motion;vibration=on;extra=1", 0)
	require.True(t, ok)
	require.Equal(t, 0.0, r.Gas, "unparseable value keeps the default")
	require.False(t, r.Motion, "pair without '=' is ignored")
	require.True(t, r.Vibration)
}

func TestNewParserSelection(t *testing.T) {
	require.IsType(t, &JSONParser{}, NewParser("json", ""))
	require.IsType(t, &JSONParser{}, NewParser("", ""))
	require.IsType(t, &EventParser{}, NewParser("event", "EVT"))
	require.IsType(t, &EventParser{}, NewParser("EVENT", "EVT"))
}
