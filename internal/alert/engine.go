package alert

import (
	"github.com/luki/watchline/internal/telemetry"
)

// Thresholds are the per-channel trigger levels. Gas, sound and water fire
// on strictly-greater-than; temperature and humidity fire above High or
// below Low, never both for one value.
type Thresholds struct {
	Gas          float64
	Sound        float64
	Water        float64
	TempHigh     float64
	TempLow      float64
	HumidityHigh float64
	HumidityLow  float64
}

// DefaultThresholds mirrors the stock controller deployment.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Gas:          300,
		Sound:        500,
		Water:        300,
		TempHigh:     35,
		TempLow:      10,
		HumidityHigh: 80,
		HumidityLow:  20,
	}
}

// Engine checks readings against a fixed set of thresholds.
type Engine struct {
	t Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(t Thresholds) *Engine {
	return &Engine{t: t}
}

// Check returns the alerts triggered by one reading, in a fixed order:
// gas, sound, water, vibration, temperature, humidity, motion. It is pure;
// identical readings yield identical lists. Vibration and motion are level
// checks on the current sample and repeat on every reading while the
// condition holds. Missing temperature or humidity never triggers.
func (e *Engine) Check(r telemetry.Reading) []Alert {
	var alerts []Alert

	if r.Gas > e.t.Gas {
		alerts = append(alerts, Alert{HighGas, "HIGH GAS: " + fmtVal(r.Gas), r.Gas})
	}
	if r.Sound > e.t.Sound {
		alerts = append(alerts, Alert{HighSound, "HIGH SOUND: " + fmtVal(r.Sound), r.Sound})
	}
	if r.Water > e.t.Water {
		alerts = append(alerts, Alert{HighWater, "HIGH WATER: " + fmtVal(r.Water), r.Water})
	}
	if r.Vibration {
		alerts = append(alerts, Alert{Vibration, "VIBRATION DETECTED", 1})
	}
	if r.Temperature != nil {
		switch v := *r.Temperature; {
		case v > e.t.TempHigh:
			alerts = append(alerts, Alert{HighTemp, "HIGH TEMP: " + fmtVal(v) + "°C", v})
		case v < e.t.TempLow:
			alerts = append(alerts, Alert{LowTemp, "LOW TEMP: " + fmtVal(v) + "°C", v})
		}
	}
	if r.Humidity != nil {
		switch v := *r.Humidity; {
		case v > e.t.HumidityHigh:
			alerts = append(alerts, Alert{HighHumidity, "HIGH HUMIDITY: " + fmtVal(v) + "%", v})
		case v < e.t.HumidityLow:
			alerts = append(alerts, Alert{LowHumidity, "LOW HUMIDITY: " + fmtVal(v) + "%", v})
		}
	}
	if r.Motion {
		alerts = append(alerts, Alert{Motion, "MOTION DETECTED", 1})
	}

	return alerts
}
