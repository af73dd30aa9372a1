package kernel

import (
	"fmt"
	"time"

	"github.com/danmuck/organctl/internal/memory"
	"github.com/danmuck/organctl/internal/telemetry"
)

// Awareness-band policy recommendations, from most to least capacity.
const (
	PolicyPushCapacity   = "push_capacity"
	PolicyMaintainLoad   = "maintain_load"
	PolicyReduceLoad     = "reduce_load"
	PolicyProtectCore    = "protect_core"
	PolicyRecoverOffline = "recover_offline"
)

// PolicyFor maps an awareness score to a coarse action recommendation
// using the same bands as the awareness labels.
func PolicyFor(awareness float64) string {
	switch {
	case awareness >= 0.85:
		return PolicyPushCapacity
	case awareness >= 0.60:
		return PolicyMaintainLoad
	case awareness >= 0.35:
		return PolicyReduceLoad
	case awareness > 0.0:
		return PolicyProtectCore
	default:
		return PolicyRecoverOffline
	}
}

// AIDaemon derives a policy from the current awareness score. In the
// critical band it forces simulation intensity off as a protective
// reflex; it is the only daemon allowed to override sim intensity
// automatically. It never mutates organ health.
type AIDaemon struct {
	lastRun  time.Time
	interval time.Duration
	cycle    uint64

	mem *memory.Store
}

// NewAIDaemon wires the policy loop to working memory.
func NewAIDaemon(interval time.Duration, mem *memory.Store) *AIDaemon {
	return &AIDaemon{lastRun: time.Now(), interval: interval, mem: mem}
}

func (d *AIDaemon) Name() string { return "ai-cortex" }

func (d *AIDaemon) Tick(now time.Time, bus *Bus) {
	if now.Sub(d.lastRun) < d.interval {
		return
	}
	d.cycle++
	d.lastRun = now

	awareness := bus.Awareness
	policy := PolicyFor(awareness)

	reflex := ""
	if policy == PolicyProtectCore && bus.SimLevel != telemetry.SimOff {
		bus.SimLevel = telemetry.SimOff
		reflex = " :: reflex: simulation forced off"
	}

	d.mem.SetText(memory.Global(), "cortex.policy", policy)
	d.mem.SetNumber(memory.Global(), "cortex.awareness", awareness)

	bus.Emit(PulseAI, d.Name(), fmt.Sprintf(
		"cortex cycle #%d :: awareness %.2f :: policy %s%s",
		d.cycle, awareness, policy, reflex))
}
