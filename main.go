// watchline ingests line-delimited telemetry from a sensor controller on a
// serial port, keeps a sliding window of recent readings, raises threshold
// alerts and dispatches rate-limited notifications. By default it shows a
// live dashboard; -headless runs the ingestion loop alone.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/luki/watchline/internal/alert"
	"github.com/luki/watchline/internal/config"
	"github.com/luki/watchline/internal/history"
	"github.com/luki/watchline/internal/ingest"
	"github.com/luki/watchline/internal/link"
	"github.com/luki/watchline/internal/monitor"
	"github.com/luki/watchline/internal/notify"
	"github.com/luki/watchline/internal/telemetry"
)

const metricsPushInterval = 10 * time.Second

func main() {
	if len(os.Args) > 1 && os.Args[1] == "feed" {
		runFeed(os.Args[2:])
		return
	}

	headless := flag.Bool("headless", false, "run without the dashboard")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, closeLog := newLogger(cfg, *headless)
	defer closeLog()

	sink := buildSink(cfg, logger)

	window := history.NewWindow(cfg.WindowSec)
	engine := alert.NewEngine(cfg.AlertThresholds())
	gate := alert.NewGate(cfg.Cooldown(), sink != nil)
	dispatchLog := alert.NewLog(50)
	manager := link.NewManager(link.Config{Device: cfg.Serial.Device, Baud: cfg.Serial.Baud}, logger)

	ing := ingest.New(ingest.Options{
		Link:     manager,
		Parser:   newParser(cfg),
		Window:   window,
		Engine:   engine,
		Gate:     gate,
		Sink:     sink,
		Log:      dispatchLog,
		Logger:   logger,
		Cooldown: cfg.Cooldown(),
	})

	if err := ingest.InitPush(cfg.MetricsPushURL, metricsPushInterval); err != nil {
		logger.Warn().Err(err).Msg("metrics push disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().
		Str("device", cfg.Serial.Device).
		Int("baud", cfg.Serial.Baud).
		Str("format", cfg.Format).
		Dur("cooldown", cfg.Cooldown()).
		Int("window", cfg.WindowSec).
		Msg("starting")

	if *headless {
		_ = ing.Run(ctx)
		ingest.WritePrometheus(os.Stderr)
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ing.Run(ctx)
	}()

	m := monitor.New(window.Snapshot, ing.LinkState, dispatchLog, cfg.AlertThresholds(), cfg.Cooldown())
	if err := monitor.Run(m); err != nil {
		logger.Error().Err(err).Msg("dashboard failed")
	}

	stop()
	<-done
}

func newParser(cfg config.Config) telemetry.Parser {
	return telemetry.NewParser(cfg.Format, cfg.EventPrefix)
}

// buildSink picks the notification channel: MQTT wins when both are
// configured, matching how the deployment migrated off e-mail. A nil
// return silently disables dispatch.
func buildSink(cfg config.Config, logger zerolog.Logger) notify.Sink {
	if cfg.MQTTConfigured() {
		sink, err := notify.NewMQTTSink(cfg.MQTT.Broker, cfg.MQTT.Topic, cfg.MQTT.ClientID)
		if err != nil {
			logger.Error().Err(err).Msg("mqtt sink unavailable; notifications disabled")
			return nil
		}
		logger.Info().Str("broker", cfg.MQTT.Broker).Str("topic", cfg.MQTT.Topic).Msg("mqtt sink ready")
		return sink
	}
	if cfg.SMTPConfigured() {
		to := cfg.SMTP.To
		if to == "" {
			to = cfg.SMTP.From
		}
		logger.Info().Str("from", cfg.SMTP.From).Str("to", to).Msg("smtp sink ready")
		return &notify.SMTPSink{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			From:     cfg.SMTP.From,
			To:       to,
			Password: cfg.SMTP.Password,
		}
	}
	logger.Warn().Msg("no notification sink configured; alerts stay local")
	return nil
}

// newLogger routes logs away from the terminal while the TUI owns it:
// console output in headless mode, a file when configured, else discard.
func newLogger(cfg config.Config, headless bool) (zerolog.Logger, func()) {
	if headless {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		return zerolog.New(w).With().Timestamp().Logger(), func() {}
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			return zerolog.New(f).With().Timestamp().Logger(), func() { f.Close() }
		}
		fmt.Fprintln(os.Stderr, "log file:", err)
	}
	return zerolog.New(io.Discard), func() {}
}
