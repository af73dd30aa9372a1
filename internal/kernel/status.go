package kernel

import (
	"fmt"
	"time"

	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/telemetry"
)

// StatusDaemon pulls one telemetry snapshot per tick, blends it into
// the three telemetry-coupled organ roles, recomputes awareness, and
// publishes both the snapshot and a status pulse. The remaining organ
// roles have no telemetry coupling and are left untouched.
type StatusDaemon struct {
	lastRun  time.Time
	interval time.Duration
	counter  uint64

	provider  telemetry.Provider
	store     *organism.Store
	snapshots *telemetry.SnapshotStore
}

// NewStatusDaemon wires the telemetry provider to the topology store.
func NewStatusDaemon(interval time.Duration, provider telemetry.Provider, store *organism.Store, snapshots *telemetry.SnapshotStore) *StatusDaemon {
	return &StatusDaemon{
		lastRun:   time.Now(),
		interval:  interval,
		provider:  provider,
		store:     store,
		snapshots: snapshots,
	}
}

func (d *StatusDaemon) Name() string { return "status" }

func (d *StatusDaemon) Tick(now time.Time, bus *Bus) {
	if now.Sub(d.lastRun) < d.interval {
		return
	}
	d.counter++
	d.lastRun = now

	snap := telemetry.Read(d.provider)
	d.snapshots.Publish(snap)

	var (
		brief     string
		minHealth float64
		awareness float64
	)
	err := d.store.Update(func(t *organism.SystemTopology) {
		blendRole(t, organism.Cortex, telemetry.CortexTarget(snap.CPU))
		blendRole(t, organism.Memory, telemetry.MemoryTarget(snap.Memory))
		blendRole(t, organism.IoBridge, telemetry.IOBridgeTarget(snap.IO))

		brief = organism.FormatBrief(t)
		minHealth = organism.OverallHealth(t)
		awareness = organism.Awareness(t)
	})
	if err != nil {
		bus.Emit(PulseStatus, d.Name(), fmt.Sprintf("status tick #%d skipped: %v", d.counter, err))
		return
	}

	bus.Awareness = awareness
	bus.Emit(PulseStatus, d.Name(), fmt.Sprintf(
		"status tick #%d :: %s :: health %.2f (%s) :: awareness %.2f",
		d.counter, brief, minHealth, organism.ClassifyHealth(minHealth), awareness))
}

func blendRole(t *organism.SystemTopology, kind organism.OrganKind, target float64) {
	for _, organ := range t.OrgansOfKind(kind) {
		organ.SetHealth(telemetry.Blend(organ.Health, target))
	}
}
