// Package link owns the physical serial connection: open with unbounded
// retry, timeout-bounded chunk reads, and reconnect after a mid-stream
// fault. No failure here is ever surfaced as fatal; the loop only ends
// with the process.
package link

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// State is the link lifecycle state, owned exclusively by the Manager.
type State int32

const (
	Disconnected State = iota
	Opening
	Connected
	Faulted
)

// String returns the state's display name.
func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Opening:
		return "opening"
	case Connected:
		return "connected"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

const (
	// openRetryDelay separates open attempts. Constant interval, no
	// backoff: the port usually appears the moment the controller is
	// plugged back in, and nothing else is waiting on this loop.
	openRetryDelay = 3 * time.Second

	// reconnectDelay precedes reopening after a mid-stream fault.
	reconnectDelay = 2 * time.Second

	// readTimeout bounds one ReadChunk attempt.
	readTimeout = 1 * time.Second

	// IdleYield is how long callers should sleep after an empty read
	// before trying again.
	IdleYield = 20 * time.Millisecond
)

// Config selects the serial device.
type Config struct {
	Device string
	Baud   int
}

// Manager opens and re-opens the serial port and hands out raw chunks.
// All methods except State must be called from the single ingestion
// goroutine.
type Manager struct {
	cfg   Config
	log   zerolog.Logger
	port  serial.Port
	state atomic.Int32

	open           func(device string, mode *serial.Mode) (serial.Port, error)
	retryDelay     time.Duration
	reconnectDelay time.Duration
}

// NewManager creates a manager for the configured device.
func NewManager(cfg Config, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:            cfg,
		log:            log.With().Str("device", cfg.Device).Logger(),
		open:           serial.Open,
		retryDelay:     openRetryDelay,
		reconnectDelay: reconnectDelay,
	}
}

// State returns the current link state. Safe from any goroutine.
func (m *Manager) State() State {
	return State(m.state.Load())
}

func (m *Manager) setState(s State) {
	m.state.Store(int32(s))
}

// Connect blocks until the port is open, retrying every openRetryDelay.
// It returns an error only when ctx is cancelled.
func (m *Manager) Connect(ctx context.Context) error {
	m.setState(Opening)
	for {
		port, err := m.open(m.cfg.Device, &serial.Mode{BaudRate: m.cfg.Baud})
		if err == nil {
			if err := port.SetReadTimeout(readTimeout); err != nil {
				port.Close()
				return fmt.Errorf("set read timeout: %w", err)
			}
			m.port = port
			m.setState(Connected)
			m.log.Info().Int("baud", m.cfg.Baud).Msg("serial link open")
			return nil
		}

		m.log.Warn().Err(err).Msgf("port not ready; retrying in %s", m.retryDelay)
		if err := sleep(ctx, m.retryDelay); err != nil {
			m.setState(Disconnected)
			return err
		}
	}
}

// ReadChunk reads the next available bytes into buf. n == 0 with a nil
// error means nothing arrived within the read timeout; the caller should
// yield for IdleYield before retrying. A non-nil error is a real I/O fault
// and the caller must go through Reconnect.
func (m *Manager) ReadChunk(buf []byte) (int, error) {
	n, err := m.port.Read(buf)
	if err != nil {
		m.setState(Faulted)
		return 0, err
	}
	return n, nil
}

// Reconnect recovers from a mid-stream fault: close the handle ignoring
// errors, wait reconnectDelay, then open with the usual retry loop. Any
// partial line buffered upstream must be discarded by the caller.
func (m *Manager) Reconnect(ctx context.Context) error {
	m.log.Warn().Msg("lost connection; reopening")
	m.closePort()
	m.setState(Disconnected)
	if err := sleep(ctx, m.reconnectDelay); err != nil {
		return err
	}
	return m.Connect(ctx)
}

// Close shuts the port, best-effort. Used on process shutdown.
func (m *Manager) Close() {
	m.closePort()
	m.setState(Disconnected)
}

func (m *Manager) closePort() {
	if m.port != nil {
		if err := m.port.Close(); err != nil {
			m.log.Debug().Err(err).Msg("close failed")
		}
		m.port = nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
