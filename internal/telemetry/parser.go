package telemetry

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Parser decodes one framed line into a Reading. The second return is false
// when the line is not telemetry (raw diagnostic output from the
// controller); such lines are logged, never treated as an error.
type Parser interface {
	Parse(line string, elapsed float64) (Reading, bool)
}

// NewParser returns the parser for the configured wire format
// ("json" or "event"). Unknown names fall back to JSON, the format the
// stock controller firmware emits.
func NewParser(format, eventPrefix string) Parser {
	if strings.EqualFold(format, "event") {
		return &EventParser{Prefix: eventPrefix}
	}
	return &JSONParser{}
}

// flexBool accepts both boolean and 0/1 numeric encodings; firmware
// revisions disagree on which one they send.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch s {
	case "true":
		*b = true
	case "false", "null":
		*b = false
	default:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*b = n != 0
	}
	return nil
}

type jsonFrame struct {
	Gas         float64  `json:"gas"`
	Sound       float64  `json:"sound"`
	Water       float64  `json:"water"`
	Vibration   flexBool `json:"vibration"`
	Temperature *float64 `json:"temp"`
	Humidity    *float64 `json:"humidity"`
	Motion      flexBool `json:"motion"`
}

// JSONParser handles the structured per-line format: one JSON object per
// line with named numeric/boolean fields.
type JSONParser struct{}

// Parse decodes a JSON telemetry line. Lines not starting with '{' and
// lines that fail to decode are classified as raw. The firmware prints a
// bare "nan" for sensors that failed to read; it is rewritten to null
// before decoding so a missing sensor never poisons the whole frame.
func (p *JSONParser) Parse(line string, elapsed float64) (Reading, bool) {
	if line == "" || line[0] != '{' {
		return Reading{}, false
	}
	line = strings.ReplaceAll(line, "nan", "null")

	var frame jsonFrame
	if err := json.Unmarshal([]byte(line), &frame); err != nil {
		return Reading{}, false
	}

	return Reading{
		Elapsed:     elapsed,
		Gas:         frame.Gas,
		Sound:       frame.Sound,
		Water:       frame.Water,
		Vibration:   bool(frame.Vibration),
		Temperature: frame.Temperature,
		Humidity:    frame.Humidity,
		Motion:      bool(frame.Motion),
	}, true
}

// EventParser handles the event-style format: a fixed prefix token followed
// by semicolon-separated KEY=VALUE pairs, e.g. "EVT;motion=1;gas=412".
// The controller emits these only while a triggering condition holds.
type EventParser struct {
	Prefix string
}

// Parse decodes an event line. Unknown keys are ignored; values that fail
// to parse leave the field at its default rather than rejecting the frame.
func (p *EventParser) Parse(line string, elapsed float64) (Reading, bool) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = "EVT"
	}
	rest, ok := strings.CutPrefix(line, prefix)
	if !ok || (rest != "" && rest[0] != ';') {
		return Reading{}, false
	}

	r := Reading{Elapsed: elapsed}
	for _, pair := range strings.Split(rest, ";") {
		key, val, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "gas":
			r.Gas = parseNum(val)
		case "sound":
			r.Sound = parseNum(val)
		case "water":
			r.Water = parseNum(val)
		case "vibration":
			r.Vibration = parseFlag(val)
		case "temp":
			if v, err := strconv.ParseFloat(val, 64); err == nil {
				r.Temperature = &v
			}
		case "humidity":
			if v, err := strconv.ParseFloat(val, 64); err == nil {
				r.Humidity = &v
			}
		case "motion":
			r.Motion = parseFlag(val)
		}
	}
	return r, true
}

func parseNum(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseFlag(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "on":
		return true
	}
	return false
}
