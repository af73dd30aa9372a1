package observability

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "ORGAND_LOG_LEVEL"
	EnvLogTimestamp = "ORGAND_LOG_TIMESTAMP"
	EnvLogNoColor   = "ORGAND_LOG_NOCOLOR"
)

var initOnce sync.Once

// InitLogger configures the process-wide console logger, tagged with
// the app name. Environment variables override the defaults.
func InitLogger(app string) zerolog.Logger {
	initOnce.Do(func() {
		output := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
			NoColor:    envBool(EnvLogNoColor),
		}
		if ts, ok := envBoolOK(EnvLogTimestamp); ok && !ts {
			output.TimeFormat = ""
		}
		logger := zerolog.New(output).With().Timestamp().Str("app", app).Logger()
		if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
			logger = logger.Level(lvl)
		}
		log.Logger = logger
	})
	return log.Logger
}

// InitTestLogger drops timestamps and raises verbosity for tests.
func InitTestLogger() zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: true,
	}).Level(zerolog.DebugLevel)
	log.Logger = logger
	return logger
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func envBool(key string) bool {
	v, _ := envBoolOK(key)
	return v
}

func envBoolOK(key string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
