package kernel

import (
	"bufio"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
)

// ReadCommands pumps trimmed, non-empty lines from r into the
// returned channel on a dedicated goroutine. The channel is closed on
// EOF or read error; the producer never touches shared state.
func ReadCommands(r io.Reader) <-chan string {
	// Buffered so slow scheduler ticks do not stall the reader.
	out := make(chan string, 64)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			out <- line
		}
		if err := scanner.Err(); err != nil {
			log.Warn().Err(err).Msg("command_input_failed")
		}
	}()
	return out
}
