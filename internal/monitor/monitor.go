// Package monitor implements the live telemetry dashboard using BubbleTea:
// sparkline history per channel, current values against thresholds, and a
// ticker of recently dispatched alerts. It only ever reads snapshots; the
// ingestion goroutine remains the sole writer of the window.
package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/watchline/internal/alert"
	"github.com/luki/watchline/internal/chart"
	"github.com/luki/watchline/internal/history"
	"github.com/luki/watchline/internal/link"
)

const pollInterval = 1 * time.Second

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the dashboard. Snapshot and LinkState
// are polled once per tick; Alerts is read for the dispatch ticker.
type Model struct {
	Snapshot   func() history.Snapshot
	LinkState  func() link.State
	Alerts     *alert.Log
	Thresholds alert.Thresholds
	Cooldown   time.Duration

	snap      history.Snapshot
	width     int
	height    int
	paused    bool
	startTime time.Time
}

// New creates the initial dashboard model.
func New(snapshot func() history.Snapshot, linkState func() link.State, alerts *alert.Log, th alert.Thresholds, cooldown time.Duration) Model {
	return Model{
		Snapshot:   snapshot,
		LinkState:  linkState,
		Alerts:     alerts,
		Thresholds: th,
		Cooldown:   cooldown,
		startTime:  time.Now(),
	}
}

// Run blocks in the TUI until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// ── Init / Update ────────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if !m.paused {
			m.snap = m.Snapshot()
		}
		return m, tickCmd()
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorAlert    = lipgloss.Color("208")
	colorMotion   = lipgloss.Color("78")
	colorVibe     = lipgloss.Color("213")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	chartWidth := m.width - 16
	if chartWidth < 30 {
		chartWidth = 30
	}

	var sections []string
	sections = append(sections, m.renderTitleBar())
	sections = append(sections, "")
	sections = append(sections, m.renderLevels(chartWidth)...)
	sections = append(sections, "")
	sections = append(sections, m.renderClimate(chartWidth)...)
	sections = append(sections, "")
	sections = append(sections, m.renderEvents(chartWidth)...)
	sections = append(sections, "")
	sections = append(sections, m.renderAlerts()...)
	sections = append(sections, "", m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderTitleBar() string {
	title := lipgloss.NewStyle().
		Background(colorTitleBg).
		Foreground(colorTitleFg).
		Bold(true).
		Padding(0, 1).
		Render("watchline — serial sensor monitor")

	state := m.LinkState()
	stateStyle := lipgloss.NewStyle().Foreground(colorDim)
	if state == link.Connected {
		stateStyle = lipgloss.NewStyle().Foreground(colorMotion)
	}
	pause := ""
	if m.paused {
		pause = lipgloss.NewStyle().Foreground(colorPaused).Bold(true).Render("  PAUSED")
	}
	return title + "  " + stateStyle.Render("link: "+state.String()) + pause
}

func row(label, value, spark string) string {
	l := lipgloss.NewStyle().Foreground(colorLabel).Width(6).Render(label)
	return fmt.Sprintf("  %s %s  %s", l, value, spark)
}

func (m Model) renderLevels(w int) []string {
	s := m.snap

	combined := append(append(append([]float64{}, s.Gas...), s.Sound...), s.Water...)
	lo, hi := chart.Range(combined)

	gasB := chart.Bounds{High: m.Thresholds.Gas, HasHigh: true}
	sndB := chart.Bounds{High: m.Thresholds.Sound, HasHigh: true}
	wtrB := chart.Bounds{High: m.Thresholds.Water, HasHigh: true}

	return []string{
		lipgloss.NewStyle().Foreground(colorDim).Render("  Gas / Sound / Water"),
		row("gas", current(s.Gas, gasB), chart.Sparkline(s.Gas, w, lo, hi, gasB)),
		row("sound", current(s.Sound, sndB), chart.Sparkline(s.Sound, w, lo, hi, sndB)),
		row("water", current(s.Water, wtrB), chart.Sparkline(s.Water, w, lo, hi, wtrB)),
	}
}

func (m Model) renderClimate(w int) []string {
	s := m.snap
	tempB := chart.Bounds{High: m.Thresholds.TempHigh, Low: m.Thresholds.TempLow, HasHigh: true, HasLow: true}
	humB := chart.Bounds{High: m.Thresholds.HumidityHigh, Low: m.Thresholds.HumidityLow, HasHigh: true, HasLow: true}

	return []string{
		lipgloss.NewStyle().Foreground(colorDim).Render("  Temperature / Humidity"),
		row("temp", lastOpt(s.Temperature, "°C", tempB), chart.OptSparkline(s.Temperature, w, 0, 50, tempB)),
		row("hum", lastOpt(s.Humidity, "%", humB), chart.OptSparkline(s.Humidity, w, 0, 100, humB)),
	}
}

func (m Model) renderEvents(w int) []string {
	s := m.snap
	return []string{
		lipgloss.NewStyle().Foreground(colorDim).Render("  Motion / Vibration"),
		row("motion", countOn(s.Motion), chart.EventRow(s.Motion, w, colorMotion)),
		row("vibe", countOn(s.Vibration), chart.EventRow(s.Vibration, w, colorVibe)),
	}
}

func (m Model) renderAlerts() []string {
	out := []string{lipgloss.NewStyle().Foreground(colorDim).Render("  Recent notifications")}

	recent := m.Alerts.Recent(5)
	if len(recent) == 0 {
		return append(out, lipgloss.NewStyle().Foreground(colorDim).Render("    none"))
	}
	style := lipgloss.NewStyle().Foreground(colorAlert)
	for i := len(recent) - 1; i >= 0; i-- {
		d := recent[i]
		msgs := make([]string, len(d.Alerts))
		for j, a := range d.Alerts {
			msgs[j] = a.Message
		}
		out = append(out, fmt.Sprintf("    %s  %s",
			d.At.Format("15:04:05"),
			style.Render(strings.Join(msgs, ", "))))
	}
	return out
}

func (m Model) renderFooter() string {
	info := fmt.Sprintf(" samples: %d  cooldown: %s  up: %s ",
		len(m.snap.Ts), m.Cooldown, time.Since(m.startTime).Round(time.Second))
	keys := " q quit • space pause "
	return lipgloss.NewStyle().Background(colorFooterBg).Foreground(colorDim).
		Render(info + "│" + keys)
}

func current(values []float64, b chart.Bounds) string {
	if len(values) == 0 {
		return chart.OptValue(nil, "", b)
	}
	return chart.Value(values[len(values)-1], "", b)
}

func lastOpt(values []*float64, unit string, b chart.Bounds) string {
	if len(values) == 0 {
		return chart.OptValue(nil, unit, b)
	}
	return chart.OptValue(values[len(values)-1], unit, b)
}

func countOn(flags []bool) string {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return lipgloss.NewStyle().Foreground(colorLabel).Render(fmt.Sprintf("%6d", n))
}
