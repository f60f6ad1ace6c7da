// Package chart renders sparklines for the live telemetry dashboard, with
// color-coded threshold crossings and event rows for boolean channels.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Bounds are the alert limits of one channel. Gas, sound and water only
// carry a high bound; temperature and humidity carry both.
type Bounds struct {
	High    float64
	Low     float64
	HasHigh bool
	HasLow  bool
}

// Color picks the render color for a value against its bounds.
func Color(v float64, b Bounds) lipgloss.Color {
	switch {
	case b.HasHigh && v > b.High:
		return lipgloss.Color("196") // red
	case b.HasLow && v < b.Low:
		return lipgloss.Color("39") // cold blue
	case b.HasHigh && v > b.High*0.85:
		return lipgloss.Color("220") // yellow
	default:
		return lipgloss.Color("78") // soft green
	}
}

// Sparkline renders values right-aligned into width cells, normalized to
// [rangeMin, rangeMax], each block colored against bounds.
func Sparkline(values []float64, width int, rangeMin, rangeMax float64, b Bounds) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(values) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < width-len(values); i++ {
		sb.WriteString(dim.Render("╌"))
	}
	for _, v := range values {
		norm := math.Max(0, math.Min(1, (v-rangeMin)/span))
		idx := int(norm * 7)

		style := lipgloss.NewStyle().Foreground(Color(v, b))
		if b.HasHigh && v > b.High {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}

// OptSparkline renders an optional-valued channel; nil samples show as a
// gap instead of being drawn at zero.
func OptSparkline(values []*float64, width int, rangeMin, rangeMax float64, b Bounds) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	var sb strings.Builder
	for i := 0; i < width-len(values); i++ {
		sb.WriteString(dim.Render("╌"))
	}
	for _, p := range values {
		if p == nil {
			sb.WriteString(dim.Render("·"))
			continue
		}
		v := *p
		norm := math.Max(0, math.Min(1, (v-rangeMin)/span))
		idx := int(norm * 7)
		sb.WriteString(lipgloss.NewStyle().Foreground(Color(v, b)).Render(string(sparkBlocks[idx])))
	}
	return sb.String()
}

// EventRow renders a boolean channel: a solid block where the flag was
// set, a faint baseline where it was not.
func EventRow(flags []bool, width int, on lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	if len(flags) > width {
		flags = flags[len(flags)-width:]
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	onStyle := lipgloss.NewStyle().Foreground(on)

	var sb strings.Builder
	for i := 0; i < width-len(flags); i++ {
		sb.WriteString(dim.Render("╌"))
	}
	for _, f := range flags {
		if f {
			sb.WriteString(onStyle.Render("█"))
		} else {
			sb.WriteString(dim.Render("▁"))
		}
	}
	return sb.String()
}

// Value renders a current numeric value colored against its bounds.
func Value(v float64, unit string, b Bounds) string {
	s := fmt.Sprintf("%6.1f%s", v, unit)
	style := lipgloss.NewStyle().Foreground(Color(v, b))
	if b.HasHigh && v > b.High {
		style = style.Bold(true)
	}
	return style.Render(s)
}

// OptValue renders an optional value, or a dimmed placeholder when missing.
func OptValue(v *float64, unit string, b Bounds) string {
	if v == nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("   N/A" + unit)
	}
	return Value(*v, unit, b)
}

// Range returns a padded min/max over the series, for auto-scaling.
func Range(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 1
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := math.Max(10, (hi-lo)*0.1)
	return lo - pad, hi + pad
}
