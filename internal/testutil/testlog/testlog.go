package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/organctl/internal/observability"
)

// Start configures test logging and tags the log with the test name.
func Start(t *testing.T) {
	t.Helper()
	observability.InitTestLogger()
	log.Debug().Str("test", t.Name()).Msg("test_start")
}
