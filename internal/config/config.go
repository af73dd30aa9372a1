// Package config loads the organd runtime configuration from TOML.
// Every field has a default; file values only override what the file
// actually defines.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/organctl/internal/kernel"
	"github.com/danmuck/organctl/internal/telemetry"
)

// EnvTelemetryBackend overrides the telemetry backend selector at
// process start; it is not reconfigurable at runtime.
const EnvTelemetryBackend = "ORGAND_TELEMETRY"

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr  string
	CorsOrigins []string

	PollInterval      time.Duration
	HeartbeatInterval time.Duration
	StatusInterval    time.Duration
	AIInterval        time.Duration
	SimInterval       time.Duration

	TelemetryMode telemetry.Mode
	SimLevel      telemetry.SimLevel
	LogFilter     kernel.LogFilter

	StatePath string
}

// DefaultConfig matches the documented daemon cadences.
func DefaultConfig() Config {
	return Config{
		ListenAddr:        ":8090",
		PollInterval:      50 * time.Millisecond,
		HeartbeatInterval: 1 * time.Second,
		StatusInterval:    5 * time.Second,
		AIInterval:        2 * time.Second,
		SimInterval:       2500 * time.Millisecond,
		TelemetryMode:     telemetry.ModeSimulated,
		SimLevel:          telemetry.SimLow,
		LogFilter:         kernel.LogCommandsOnly,
		StatePath:         "organd_state.txt",
	}
}

type fileConfig struct {
	ListenAddr        string   `toml:"listen_addr"`
	CorsOrigins       []string `toml:"cors_origins"`
	PollInterval      string   `toml:"poll_interval"`
	HeartbeatInterval string   `toml:"heartbeat_interval"`
	StatusInterval    string   `toml:"status_interval"`
	AIInterval        string   `toml:"ai_interval"`
	SimInterval       string   `toml:"sim_interval"`
	TelemetryBackend  string   `toml:"telemetry_backend"`
	SimLevel          string   `toml:"sim_level"`
	LogFilter         string   `toml:"log_filter"`
	StatePath         string   `toml:"state_path"`
}

// Load reads path onto the defaults. A missing file is an error; use
// DefaultConfig directly when no file is configured.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("listen_addr") {
		if addr := strings.TrimSpace(raw.ListenAddr); addr != "" {
			cfg.ListenAddr = addr
		}
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = raw.CorsOrigins
	}
	if meta.IsDefined("state_path") {
		if p := strings.TrimSpace(raw.StatePath); p != "" {
			cfg.StatePath = p
		}
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"heartbeat_interval", raw.HeartbeatInterval, &cfg.HeartbeatInterval},
		{"status_interval", raw.StatusInterval, &cfg.StatusInterval},
		{"ai_interval", raw.AIInterval, &cfg.AIInterval},
		{"sim_interval", raw.SimInterval, &cfg.SimInterval},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", d.key, err)
		}
		if parsed <= 0 {
			return Config{}, fmt.Errorf("parse %s: must be positive", d.key)
		}
		*d.dst = parsed
	}

	if meta.IsDefined("telemetry_backend") {
		cfg.TelemetryMode = telemetry.ParseMode(raw.TelemetryBackend)
	}
	if meta.IsDefined("sim_level") {
		level, ok := telemetry.ParseSimLevel(raw.SimLevel)
		if !ok {
			return Config{}, fmt.Errorf("parse sim_level: unknown level %q", raw.SimLevel)
		}
		cfg.SimLevel = level
	}
	if meta.IsDefined("log_filter") {
		filter, ok := kernel.ParseLogFilter(raw.LogFilter)
		if !ok {
			return Config{}, fmt.Errorf("parse log_filter: unknown filter %q", raw.LogFilter)
		}
		cfg.LogFilter = filter
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies the boot-time environment overrides.
func (c *Config) ApplyEnv() {
	if raw := strings.TrimSpace(os.Getenv(EnvTelemetryBackend)); raw != "" {
		c.TelemetryMode = telemetry.ParseMode(raw)
	}
}
