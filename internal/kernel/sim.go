package kernel

import (
	"fmt"
	"time"

	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/telemetry"
)

// Synthetic wear/repair pressure per intensity. Deterministic on the
// tick counter so runs replay exactly.
const (
	simLowWear      = -0.01
	simLowRecover   = 0.02
	simLowRecoverN  = 5
	simHighWear     = -0.04
	simHighRecover  = 0.03
	simHighRecoverN = 3
)

// SimDaemon perturbs organ health independently of telemetry,
// round-robin over the organ list. No-ops while intensity is off.
type SimDaemon struct {
	lastRun  time.Time
	interval time.Duration
	counter  uint64

	store *organism.Store
}

// NewSimDaemon wires the perturbation loop to the topology store.
func NewSimDaemon(interval time.Duration, store *organism.Store) *SimDaemon {
	return &SimDaemon{lastRun: time.Now(), interval: interval, store: store}
}

func (d *SimDaemon) Name() string { return "sim" }

func (d *SimDaemon) Tick(now time.Time, bus *Bus) {
	if now.Sub(d.lastRun) < d.interval {
		return
	}
	d.lastRun = now

	if bus.SimLevel == telemetry.SimOff {
		return
	}
	d.counter++

	delta := simLowWear
	switch bus.SimLevel {
	case telemetry.SimLow:
		if d.counter%simLowRecoverN == 0 {
			delta = simLowRecover
		}
	case telemetry.SimHigh:
		delta = simHighWear
		if d.counter%simHighRecoverN == 0 {
			delta = simHighRecover
		}
	}

	var (
		kind      organism.OrganKind
		newHealth float64
		applied   bool
	)
	err := d.store.Update(func(t *organism.SystemTopology) {
		if len(t.Organs) == 0 {
			return
		}
		organ := &t.Organs[int(d.counter)%len(t.Organs)]
		kind = organ.Kind
		newHealth = organ.AdjustHealth(delta)
		applied = true
	})
	if err != nil {
		bus.Emit(PulseSim, d.Name(), fmt.Sprintf("sim tick skipped: %v", err))
		return
	}
	if !applied {
		return
	}

	bus.Emit(PulseSim, d.Name(), fmt.Sprintf(
		"sim %s :: %s %+0.2f -> health %.2f",
		bus.SimLevel, kind, delta, newHealth))
}
