package kernel

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/organctl/internal/observability"
)

// Scheduler drives every daemon from one goroutine: a fixed-period
// polling loop invoking each Tick in registration order. The poll
// period is coarse granularity only; daemons gate their own cadence.
type Scheduler struct {
	poll    time.Duration
	bus     *Bus
	daemons []Daemon
}

// NewScheduler builds an empty scheduler around the shared bus.
func NewScheduler(poll time.Duration, bus *Bus) *Scheduler {
	return &Scheduler{poll: poll, bus: bus}
}

// Register appends a daemon; registration order is tick order.
func (s *Scheduler) Register(d Daemon) {
	s.daemons = append(s.daemons, d)
}

// Bus exposes the shared bus for wiring.
func (s *Scheduler) Bus() *Bus {
	return s.bus
}

// Run blocks until ctx is cancelled, ticking every daemon once per
// poll period. A panicking tick is contained and reported; the loop
// itself never dies on a bad tick.
func (s *Scheduler) Run(ctx context.Context) {
	log.Info().
		Dur("poll", s.poll).
		Int("daemons", len(s.daemons)).
		Msg("scheduler_started")

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("scheduler_stopped")
			return
		case now := <-ticker.C:
			for _, d := range s.daemons {
				s.safeTick(d, now)
			}
		}
	}
}

func (s *Scheduler) safeTick(d Daemon, now time.Time) {
	start := time.Now()
	defer func() {
		observability.RecordTick(d.Name(), time.Since(start))
		if r := recover(); r != nil {
			observability.RecordTickPanic(d.Name())
			log.Error().
				Str("daemon", d.Name()).
				Interface("panic", r).
				Msg("daemon_tick_recovered")
		}
	}()
	d.Tick(now, s.bus)
}
