package chart

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSparkline(t *testing.T) {
	values := []float64{100, 150, 200, 250, 300, 350, 400}
	result := Sparkline(values, 20, 0, 450, Bounds{High: 300, HasHigh: true})
	if len(result) == 0 {
		t.Error("sparkline should not be empty")
	}
	t.Logf("Sparkline: %s", result)
}

func TestOptSparklineGaps(t *testing.T) {
	v := 21.5
	values := []*float64{&v, nil, &v}
	result := OptSparkline(values, 3, 0, 50, Bounds{High: 35, Low: 10, HasHigh: true, HasLow: true})
	if !strings.Contains(result, "·") {
		t.Error("expected gap marker for missing sample")
	}
}

func TestEventRow(t *testing.T) {
	result := EventRow([]bool{false, true, false}, 5, lipgloss.Color("213"))
	if !strings.Contains(result, "█") {
		t.Error("expected solid block for the set flag")
	}
	if !strings.Contains(result, "╌") {
		t.Error("expected left padding up to width")
	}
}

func TestRangePadding(t *testing.T) {
	lo, hi := Range([]float64{100, 200})
	if lo >= 100 || hi <= 200 {
		t.Errorf("range must pad beyond data: got [%f, %f]", lo, hi)
	}

	lo, hi = Range(nil)
	if lo != 0 || hi != 1 {
		t.Errorf("empty range: got [%f, %f]", lo, hi)
	}
}
