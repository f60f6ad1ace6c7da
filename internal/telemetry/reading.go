// Package telemetry turns the raw serial byte stream into structured
// readings: a line framer that survives arbitrary chunk boundaries, and
// per-wire-format parsers that tolerate malformed frames.
package telemetry

// Reading is a single telemetry frame decoded from the sensor controller.
// Temperature and Humidity are nil when the frame carried no data for them;
// they are never defaulted to 0, since 0 would sit below the low thresholds.
// A Reading is immutable once constructed.
type Reading struct {
	Elapsed     float64 // seconds since process start
	Gas         float64
	Sound       float64
	Water       float64
	Vibration   bool
	Temperature *float64
	Humidity    *float64
	Motion      bool
}

// Float returns v boxed, for building readings with optional fields set.
func Float(v float64) *float64 {
	return &v
}
