// Package config loads all runtime settings from the environment.
// Every key lives under the WATCHLINE_ prefix with defaults matching the
// stock deployment; nested keys use underscores (WATCHLINE_SMTP_HOST).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/luki/watchline/internal/alert"
)

// Config is the full runtime configuration.
type Config struct {
	Serial struct {
		Device string `mapstructure:"device"`
		Baud   int    `mapstructure:"baud"`
	} `mapstructure:"serial"`

	// Format selects the wire format: "json" or "event".
	Format      string `mapstructure:"format"`
	EventPrefix string `mapstructure:"event_prefix"`

	CooldownSec int `mapstructure:"cooldown_sec"`
	WindowSec   int `mapstructure:"window_sec"`

	Thresholds struct {
		Gas          float64 `mapstructure:"gas"`
		Sound        float64 `mapstructure:"sound"`
		Water        float64 `mapstructure:"water"`
		TempHigh     float64 `mapstructure:"temp_high"`
		TempLow      float64 `mapstructure:"temp_low"`
		HumidityHigh float64 `mapstructure:"humidity_high"`
		HumidityLow  float64 `mapstructure:"humidity_low"`
	} `mapstructure:"thresholds"`

	SMTP struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		From     string `mapstructure:"from"`
		To       string `mapstructure:"to"`
		Password string `mapstructure:"password"`
	} `mapstructure:"smtp"`

	MQTT struct {
		Broker   string `mapstructure:"broker"`
		Topic    string `mapstructure:"topic"`
		ClientID string `mapstructure:"client_id"`
	} `mapstructure:"mqtt"`

	MetricsPushURL string `mapstructure:"metrics_push_url"`
	LogFile        string `mapstructure:"log_file"`
}

// Load reads the environment and returns the effective configuration.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WATCHLINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.device", "/dev/ttyUSB0")
	v.SetDefault("serial.baud", 115200)

	v.SetDefault("format", "json")
	v.SetDefault("event_prefix", "EVT")

	v.SetDefault("cooldown_sec", 60)
	v.SetDefault("window_sec", 300)

	t := alert.DefaultThresholds()
	v.SetDefault("thresholds.gas", t.Gas)
	v.SetDefault("thresholds.sound", t.Sound)
	v.SetDefault("thresholds.water", t.Water)
	v.SetDefault("thresholds.temp_high", t.TempHigh)
	v.SetDefault("thresholds.temp_low", t.TempLow)
	v.SetDefault("thresholds.humidity_high", t.HumidityHigh)
	v.SetDefault("thresholds.humidity_low", t.HumidityLow)

	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.to", "")
	v.SetDefault("smtp.password", "")

	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.topic", "watchline/alerts")
	v.SetDefault("mqtt.client_id", "")

	v.SetDefault("metrics_push_url", "")
	v.SetDefault("log_file", "")
}

// Cooldown returns the cooldown as a duration.
func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSec) * time.Second
}

// AlertThresholds maps the configured levels into the engine's type.
func (c Config) AlertThresholds() alert.Thresholds {
	return alert.Thresholds{
		Gas:          c.Thresholds.Gas,
		Sound:        c.Thresholds.Sound,
		Water:        c.Thresholds.Water,
		TempHigh:     c.Thresholds.TempHigh,
		TempLow:      c.Thresholds.TempLow,
		HumidityHigh: c.Thresholds.HumidityHigh,
		HumidityLow:  c.Thresholds.HumidityLow,
	}
}

// SMTPConfigured reports whether the e-mail sink has enough to send.
// Matching the controller scripts: sender plus app password is the gate,
// and an empty To falls back to From.
func (c Config) SMTPConfigured() bool {
	return c.SMTP.From != "" && c.SMTP.Password != ""
}

// MQTTConfigured reports whether the MQTT sink is enabled.
func (c Config) MQTTConfigured() bool {
	return c.MQTT.Broker != ""
}
