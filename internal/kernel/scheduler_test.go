package kernel

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/danmuck/organctl/internal/telemetry"
	"github.com/danmuck/organctl/internal/testutil/testlog"
)

type countingDaemon struct {
	name    string
	ticks   atomic.Uint64
	explode bool
}

func (d *countingDaemon) Name() string { return d.name }

func (d *countingDaemon) Tick(_ time.Time, _ *Bus) {
	d.ticks.Add(1)
	if d.explode {
		panic("tick blew up")
	}
}

func TestSchedulerTicksUntilCancelled(t *testing.T) {
	testlog.Start(t)
	bus := silentBus(telemetry.SimOff)
	sched := NewScheduler(time.Millisecond, bus)
	d := &countingDaemon{name: "counter"}
	sched.Register(d)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sched.Run(ctx)

	if d.ticks.Load() == 0 {
		t.Fatalf("daemon never ticked")
	}
}

// One panicking daemon must not stop the loop or its neighbors.
func TestSchedulerContainsPanickingDaemon(t *testing.T) {
	testlog.Start(t)
	bus := silentBus(telemetry.SimOff)
	sched := NewScheduler(time.Millisecond, bus)
	bad := &countingDaemon{name: "bad", explode: true}
	good := &countingDaemon{name: "good"}
	sched.Register(bad)
	sched.Register(good)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	sched.Run(ctx)

	if bad.ticks.Load() < 2 {
		t.Fatalf("panicking daemon was not re-ticked, ticks = %d", bad.ticks.Load())
	}
	if good.ticks.Load() == 0 {
		t.Fatalf("healthy daemon starved by panicking neighbor")
	}
}

func TestReadCommandsTrimsAndSkipsBlankLines(t *testing.T) {
	testlog.Start(t)
	in := "  help  \n\n   \nstatus\n"
	ch := ReadCommands(strings.NewReader(in))

	var got []string
	for line := range ch {
		got = append(got, line)
	}
	if len(got) != 2 || got[0] != "help" || got[1] != "status" {
		t.Fatalf("read commands = %v, want [help status]", got)
	}
}
