// Package notify delivers rendered alert batches to an external channel.
// Delivery is best-effort: a failed or timed-out send is logged by the
// caller and never stops ingestion.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/luki/watchline/internal/alert"
	"github.com/luki/watchline/internal/telemetry"
)

// SendTimeout bounds one dispatch attempt, whatever the transport.
const SendTimeout = 20 * time.Second

// Sink accepts one rendered alert batch. Implementations must respect ctx
// and return within SendTimeout.
type Sink interface {
	Send(ctx context.Context, subject, body string) error
}

// Subject picks the notification subject from the triggered kinds, most
// severe first: gas and vibration outrank sound and water.
func Subject(alerts []alert.Alert) string {
	var warn bool
	for _, a := range alerts {
		switch a.Kind {
		case alert.HighGas, alert.Vibration:
			return "CRITICAL ALERT - Multiple Sensors Triggered!"
		case alert.HighSound, alert.HighWater:
			warn = true
		}
	}
	if warn {
		return "WARNING - Sensor Thresholds Exceeded!"
	}
	return "Sensor Alert"
}

// Body renders the full notification text: the triggered alerts followed by
// every current reading. Missing optional sensors print as N/A, never as 0.
func Body(at time.Time, alerts []alert.Alert, r telemetry.Reading, cooldown time.Duration) string {
	var b strings.Builder

	b.WriteString("SENSOR ALERT SYSTEM\n")
	fmt.Fprintf(&b, "Timestamp: %s\n\n", at.Format("2006-01-02 15:04:05"))

	b.WriteString("TRIGGERED ALERTS:\n")
	for _, a := range alerts {
		b.WriteString("- " + a.Message + "\n")
	}

	b.WriteString("\nCURRENT SENSOR READINGS:\n")
	fmt.Fprintf(&b, "- Gas:         %s\n", num(r.Gas))
	fmt.Fprintf(&b, "- Sound:       %s\n", num(r.Sound))
	fmt.Fprintf(&b, "- Water:       %s\n", num(r.Water))
	fmt.Fprintf(&b, "- Vibration:   %s\n", flag(r.Vibration))
	fmt.Fprintf(&b, "- Temperature: %s °C\n", opt(r.Temperature))
	fmt.Fprintf(&b, "- Humidity:    %s %%\n", opt(r.Humidity))
	fmt.Fprintf(&b, "- Motion:      %s\n", flag(r.Motion))

	fmt.Fprintf(&b, "\nSystem Status: Active\nCooldown: %d seconds\n", int(cooldown.Seconds()))
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func flag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

func opt(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return num(*v)
}
