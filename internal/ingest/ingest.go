// Package ingest runs the single-owner ingestion loop: serial chunks are
// framed into lines, parsed into readings, absorbed by the history window,
// checked for alerts and, cooldown permitting, dispatched to the
// notification sink. Nothing in this loop is fatal; it ends only when the
// surrounding context is cancelled.
package ingest

import (
	"context"
	"io"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog"

	"github.com/luki/watchline/internal/alert"
	"github.com/luki/watchline/internal/history"
	"github.com/luki/watchline/internal/link"
	"github.com/luki/watchline/internal/notify"
	"github.com/luki/watchline/internal/telemetry"
)

var (
	linesFramed    = metrics.NewCounter("watchline_lines_framed_total")
	readingsParsed = metrics.NewCounter("watchline_readings_parsed_total")
	rawLines       = metrics.NewCounter("watchline_raw_lines_total")
	alertsRaised   = metrics.NewCounter("watchline_alerts_raised_total")
	dispatchOK     = metrics.NewCounter("watchline_dispatch_success_total")
	dispatchFailed = metrics.NewCounter("watchline_dispatch_failed_total")
	reconnects     = metrics.NewCounter("watchline_reconnects_total")
)

// Link is the slice of link.Manager the loop drives. It exists so tests can
// feed the loop without a device.
type Link interface {
	Connect(ctx context.Context) error
	ReadChunk(buf []byte) (int, error)
	Reconnect(ctx context.Context) error
	Close()
	State() link.State
}

// Context owns every piece of mutable ingestion state: the link, the
// framer's accumulator, the window, the gate and the dispatch log. Exactly
// one goroutine runs it; other goroutines only touch the window and log
// through their own locks.
type Context struct {
	link     Link
	parser   telemetry.Parser
	window   *history.Window
	engine   *alert.Engine
	gate     *alert.Gate
	sink     notify.Sink
	log      *alert.Log
	logger   zerolog.Logger
	cooldown time.Duration

	framer telemetry.LineFramer
	start  time.Time
	now    func() time.Time
}

// Options bundles the collaborators for New.
type Options struct {
	Link     Link
	Parser   telemetry.Parser
	Window   *history.Window
	Engine   *alert.Engine
	Gate     *alert.Gate
	Sink     notify.Sink // nil disables dispatch entirely
	Log      *alert.Log
	Logger   zerolog.Logger
	Cooldown time.Duration
}

// New builds the ingestion context.
func New(o Options) *Context {
	return &Context{
		link:     o.Link,
		parser:   o.Parser,
		window:   o.Window,
		engine:   o.Engine,
		gate:     o.Gate,
		sink:     o.Sink,
		log:      o.Log,
		logger:   o.Logger,
		cooldown: o.Cooldown,
		now:      time.Now,
	}
}

// Run connects and reads until ctx is cancelled, then closes the link
// best-effort and returns nil. Read faults reconnect and drop the partial
// line; dispatch failures log and move on.
func (c *Context) Run(ctx context.Context) error {
	c.start = c.now()

	if err := c.link.Connect(ctx); err != nil {
		return nil
	}
	defer c.link.Close()

	buf := make([]byte, 256)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := c.link.ReadChunk(buf)
		if err != nil {
			reconnects.Inc()
			c.framer.Reset()
			if err := c.link.Reconnect(ctx); err != nil {
				return nil
			}
			continue
		}
		if n == 0 {
			if err := idle(ctx, link.IdleYield); err != nil {
				return nil
			}
			continue
		}

		for _, line := range c.framer.Feed(buf[:n]) {
			c.handleLine(ctx, line)
		}
	}
}

func (c *Context) handleLine(ctx context.Context, line string) {
	linesFramed.Inc()

	elapsed := c.now().Sub(c.start).Seconds()
	reading, ok := c.parser.Parse(line, elapsed)
	if !ok {
		rawLines.Inc()
		c.logger.Debug().Str("line", line).Msg("serial raw")
		return
	}
	readingsParsed.Inc()

	c.window.Append(reading)

	alerts := c.engine.Check(reading)
	if len(alerts) == 0 {
		return
	}
	alertsRaised.Add(len(alerts))

	now := c.now()
	if !c.gate.TryAcquire(now, true) {
		return
	}
	c.dispatch(ctx, now, alerts, reading)
}

// dispatch blocks the loop for up to the sink timeout. That stall is
// accepted: the cooldown keeps dispatches rare, and readings queued in the
// OS serial buffer are picked up afterwards.
func (c *Context) dispatch(ctx context.Context, now time.Time, alerts []alert.Alert, reading telemetry.Reading) {
	subject := notify.Subject(alerts)
	body := notify.Body(now, alerts, reading, c.cooldown)

	sctx, cancel := context.WithTimeout(ctx, notify.SendTimeout)
	err := c.sink.Send(sctx, subject, body)
	cancel()

	if err != nil {
		// The gate stays open; the next alerting reading retries.
		dispatchFailed.Inc()
		c.logger.Error().Err(err).Str("subject", subject).Msg("dispatch failed")
		return
	}

	dispatchOK.Inc()
	c.gate.RecordSuccess(c.now())
	if c.log != nil {
		c.log.Add(alert.Dispatch{At: now, Alerts: alerts, Reading: reading})
	}
	c.logger.Info().Str("subject", subject).Int("alerts", len(alerts)).Msg("notification sent")
}

func idle(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// LinkState exposes the link state for the dashboard.
func (c *Context) LinkState() link.State {
	return c.link.State()
}

// WritePrometheus dumps all ingest counters in Prometheus text format.
func WritePrometheus(w io.Writer) {
	metrics.WritePrometheus(w, true)
}

// InitPush starts pushing all counters to a Prometheus import endpoint
// every interval. No-op when url is empty.
func InitPush(url string, interval time.Duration) error {
	if url == "" {
		return nil
	}
	return metrics.InitPush(url, interval, `job="watchline"`, true)
}
