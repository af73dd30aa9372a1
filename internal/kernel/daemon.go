package kernel

import (
	"fmt"
	"time"
)

// Daemon is one long-running kernel task. Tick is invoked on every
// scheduler pass; each daemon gates its own cadence against its
// interval. Tick must never block indefinitely.
type Daemon interface {
	Name() string
	Tick(now time.Time, bus *Bus)
}

// HeartbeatDaemon emits a liveness pulse at a fixed interval.
type HeartbeatDaemon struct {
	lastRun  time.Time
	interval time.Duration
	counter  uint64
}

// NewHeartbeatDaemon builds a heartbeat at the given interval.
func NewHeartbeatDaemon(interval time.Duration) *HeartbeatDaemon {
	return &HeartbeatDaemon{lastRun: time.Now(), interval: interval}
}

func (d *HeartbeatDaemon) Name() string { return "heartbeat" }

func (d *HeartbeatDaemon) Tick(now time.Time, bus *Bus) {
	if now.Sub(d.lastRun) < d.interval {
		return
	}
	d.counter++
	d.lastRun = now
	bus.Emit(PulseHeartbeat, d.Name(), fmt.Sprintf("beat #%d", d.counter))
}
