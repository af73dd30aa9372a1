package kernel

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/organctl/internal/observability"
	"github.com/danmuck/organctl/internal/telemetry"
)

// PulseKind categorizes bus traffic.
type PulseKind int

const (
	PulseHeartbeat PulseKind = iota
	PulseStatus
	PulseCommand
	PulseAI
	PulseSim
)

func (k PulseKind) String() string {
	switch k {
	case PulseHeartbeat:
		return "heartbeat"
	case PulseStatus:
		return "status"
	case PulseCommand:
		return "command"
	case PulseAI:
		return "ai"
	case PulseSim:
		return "sim"
	default:
		return "unknown"
	}
}

// LogFilter selects which pulse kinds reach the console.
type LogFilter int

const (
	LogAll LogFilter = iota
	LogCommandsOnly
	LogSilent
)

func (f LogFilter) String() string {
	switch f {
	case LogAll:
		return "all"
	case LogSilent:
		return "silent"
	default:
		return "commands"
	}
}

// ParseLogFilter resolves a filter from shell or config input;
// "off" aliases silent.
func ParseLogFilter(raw string) (LogFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "all":
		return LogAll, true
	case "commands":
		return LogCommandsOnly, true
	case "silent", "off":
		return LogSilent, true
	default:
		return LogCommandsOnly, false
	}
}

// Bus is the process-wide pulse channel and the shared scalar state
// daemons coordinate through. Only the scheduler goroutine touches
// it, at tick granularity, so it carries no lock; if concurrent
// publishers ever appear, access must be serialized first.
type Bus struct {
	seq uint64

	Filter    LogFilter
	SimLevel  telemetry.SimLevel
	Mode      telemetry.Mode
	Awareness float64
}

// NewBus starts fully aware with the clean-console default filter.
func NewBus(mode telemetry.Mode, level telemetry.SimLevel, filter LogFilter) *Bus {
	return &Bus{
		Filter:    filter,
		SimLevel:  level,
		Mode:      mode,
		Awareness: 1.0,
	}
}

// Seq reports the last pulse sequence number. Strictly increasing.
func (b *Bus) Seq() uint64 {
	return b.seq
}

// Emit publishes one human-readable pulse. The filter gates console
// output only; every pulse is still counted.
func (b *Bus) Emit(kind PulseKind, source, message string) {
	b.seq++
	observability.RecordPulse(kind.String())

	switch b.Filter {
	case LogSilent:
		return
	case LogCommandsOnly:
		if kind != PulseCommand {
			return
		}
	}

	log.Info().
		Str("kind", kind.String()).
		Uint64("pulse", b.seq).
		Str("source", source).
		Msg(message)
}
