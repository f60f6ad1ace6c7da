// Package alert evaluates threshold conditions on telemetry readings and
// gates how often the resulting notifications may go out.
package alert

import "strconv"

// Kind identifies which condition raised an alert.
type Kind int

const (
	HighGas Kind = iota
	HighSound
	HighWater
	Vibration
	HighTemp
	LowTemp
	HighHumidity
	LowHumidity
	Motion
)

// String returns the kind's wire/display name.
func (k Kind) String() string {
	switch k {
	case HighGas:
		return "HIGH_GAS"
	case HighSound:
		return "HIGH_SOUND"
	case HighWater:
		return "HIGH_WATER"
	case Vibration:
		return "VIBRATION"
	case HighTemp:
		return "HIGH_TEMP"
	case LowTemp:
		return "LOW_TEMP"
	case HighHumidity:
		return "HIGH_HUMIDITY"
	case LowHumidity:
		return "LOW_HUMIDITY"
	case Motion:
		return "MOTION"
	default:
		return "UNKNOWN"
	}
}

// Alert is one triggered condition for one reading. Alerts are produced
// fresh on every reading and never persisted.
type Alert struct {
	Kind    Kind
	Message string
	Value   float64 // triggering value; booleans report 1
}

// fmtVal renders a sensor value the way the controller prints it:
// no trailing zeros, no exponent.
func fmtVal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
