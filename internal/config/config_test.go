package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	require.Equal(t, 115200, cfg.Serial.Baud)
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, "EVT", cfg.EventPrefix)
	require.Equal(t, 60, cfg.CooldownSec)
	require.Equal(t, 300, cfg.WindowSec)

	th := cfg.AlertThresholds()
	require.Equal(t, 300.0, th.Gas)
	require.Equal(t, 500.0, th.Sound)
	require.Equal(t, 300.0, th.Water)
	require.Equal(t, 35.0, th.TempHigh)
	require.Equal(t, 10.0, th.TempLow)
	require.Equal(t, 80.0, th.HumidityHigh)
	require.Equal(t, 20.0, th.HumidityLow)

	require.False(t, cfg.SMTPConfigured())
	require.False(t, cfg.MQTTConfigured())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WATCHLINE_SERIAL_DEVICE", "/dev/cu.usbserial-110")
	t.Setenv("WATCHLINE_SERIAL_BAUD", "9600")
	t.Setenv("WATCHLINE_FORMAT", "event")
	t.Setenv("WATCHLINE_COOLDOWN_SEC", "120")
	t.Setenv("WATCHLINE_THRESHOLDS_GAS", "450")
	t.Setenv("WATCHLINE_SMTP_FROM", "alerts@example.com")
	t.Setenv("WATCHLINE_SMTP_PASSWORD", "hunter2")
	t.Setenv("WATCHLINE_MQTT_BROKER", "tcp://localhost:1883")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "/dev/cu.usbserial-110", cfg.Serial.Device)
	require.Equal(t, 9600, cfg.Serial.Baud)
	require.Equal(t, "event", cfg.Format)
	require.Equal(t, 120, cfg.CooldownSec)
	require.Equal(t, 450.0, cfg.AlertThresholds().Gas)
	require.Equal(t, float64(120), cfg.Cooldown().Seconds())

	require.True(t, cfg.SMTPConfigured())
	require.True(t, cfg.MQTTConfigured())
}
