package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/organctl/internal/capability"
	"github.com/danmuck/organctl/internal/memory"
	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/telemetry"
)

const helpText = "commands: help, status, topology, nodes, organs, peripherals, health, " +
	"awareness, alerts, mode, metrics, caps, damage <organ> <amount>, heal <organ> <amount>, " +
	"save state, load state, sim status, sim level <off|low|high>, " +
	"logs <all|commands|silent|off>, mem, mem ls, mem get <key>, mem set <key> <value...>, quit"

// CommandDaemon drains queued shell commands each tick and applies
// them against the shared topology and bus. Each command is applied
// independently; there is no internal state machine. Keywords are
// case-sensitive, organ kind names are not.
type CommandDaemon struct {
	in        <-chan string
	store     *organism.Store
	snapshots *telemetry.SnapshotStore
	mem       *memory.Store
	caps      *capability.Registry
	statePath string
	shutdown  func()
	closed    bool
}

// NewCommandDaemon wires the shell to its collaborators. shutdown is
// invoked by `quit` and must stop the scheduler and listener.
func NewCommandDaemon(in <-chan string, store *organism.Store, snapshots *telemetry.SnapshotStore,
	mem *memory.Store, caps *capability.Registry, statePath string, shutdown func()) *CommandDaemon {
	return &CommandDaemon{
		in:        in,
		store:     store,
		snapshots: snapshots,
		mem:       mem,
		caps:      caps,
		statePath: statePath,
		shutdown:  shutdown,
	}
}

func (d *CommandDaemon) Name() string { return "command" }

// Tick drains every currently queued command without blocking. A
// closed input source is reported once; draining stops for the rest
// of the run.
func (d *CommandDaemon) Tick(_ time.Time, bus *Bus) {
	if d.closed {
		return
	}
	for {
		select {
		case cmd, ok := <-d.in:
			if !ok {
				d.closed = true
				bus.Emit(PulseCommand, d.Name(), "command input channel closed")
				return
			}
			trimmed := strings.TrimSpace(cmd)
			if trimmed == "" {
				continue
			}
			d.handle(trimmed, bus)
		default:
			return
		}
	}
}

func (d *CommandDaemon) handle(line string, bus *Bus) {
	fields := strings.Fields(line)

	switch fields[0] {
	case "help":
		d.reply(bus, helpText)
	case "status":
		d.reportStatus(bus)
	case "topology":
		d.reportTopology(bus)
	case "nodes":
		d.reportNodes(bus)
	case "organs":
		d.reportOrgans(bus)
	case "peripherals":
		d.reportPeripherals(bus)
	case "health":
		d.reportHealth(bus)
	case "awareness":
		d.reportAwareness(bus)
	case "alerts":
		d.reportAlerts(bus)
	case "mode":
		d.reply(bus, fmt.Sprintf("telemetry mode: %s", bus.Mode))
	case "metrics":
		d.reportMetrics(bus)
	case "caps":
		d.reply(bus, d.caps.DescribeAll())
	case "damage":
		d.adjust(bus, fields[1:], false)
	case "heal":
		d.adjust(bus, fields[1:], true)
	case "save":
		if line == "save state" {
			d.saveState(bus)
			return
		}
		d.unknown(bus, line)
	case "load":
		if line == "load state" {
			d.loadState(bus)
			return
		}
		d.unknown(bus, line)
	case "sim":
		d.simCommand(bus, fields[1:])
	case "logs":
		d.logsCommand(bus, fields[1:])
	case "mem":
		d.memCommand(bus, fields[1:])
	case "quit":
		d.reply(bus, "shutting down kernel")
		d.shutdown()
	default:
		d.unknown(bus, line)
	}
}

func (d *CommandDaemon) reply(bus *Bus, msg string) {
	bus.Emit(PulseCommand, d.Name(), msg)
}

func (d *CommandDaemon) unknown(bus *Bus, line string) {
	d.reply(bus, fmt.Sprintf("unknown command: %q", line))
}

func (d *CommandDaemon) reportStatus(bus *Bus) {
	var (
		brief     string
		minHealth float64
		awareness float64
	)
	if err := d.store.View(func(t *organism.SystemTopology) {
		brief = organism.FormatBrief(t)
		minHealth = organism.OverallHealth(t)
		awareness = organism.Awareness(t)
	}); err != nil {
		d.reply(bus, fmt.Sprintf("status unavailable: %v", err))
		return
	}
	bus.Awareness = awareness
	d.reply(bus, fmt.Sprintf("manual status :: %s :: health %.2f (%s) :: awareness %.2f",
		brief, minHealth, organism.ClassifyHealth(minHealth), awareness))
}

func (d *CommandDaemon) reportTopology(bus *Bus) {
	var b strings.Builder
	b.WriteString("Topology detail:\n")
	d.store.View(func(t *organism.SystemTopology) {
		for _, n := range t.Nodes {
			fmt.Fprintf(&b, " - Node %d [%s]: %s\n", n.ID, n.Label, n.Role)
		}
		for i := range t.Organs {
			o := &t.Organs[i]
			fmt.Fprintf(&b, "   - Organ %s on Node %d (health %.2f)\n", o.Kind, o.Node, o.Health)
		}
	})
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportNodes(bus *Bus) {
	var b strings.Builder
	b.WriteString("Nodes:\n")
	d.store.View(func(t *organism.SystemTopology) {
		for _, n := range t.Nodes {
			fmt.Fprintf(&b, " - Node %d [%s]: %s\n", n.ID, n.Label, n.Role)
		}
	})
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportOrgans(bus *Bus) {
	var b strings.Builder
	b.WriteString("Organs:\n")
	d.store.View(func(t *organism.SystemTopology) {
		for i := range t.Organs {
			o := &t.Organs[i]
			fmt.Fprintf(&b, " - Organ %s on Node %d (health %.2f)\n", o.Kind, o.Node, o.Health)
		}
	})
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportPeripherals(bus *Bus) {
	var b strings.Builder
	b.WriteString("Peripherals by organ:\n")
	any := false
	d.store.View(func(t *organism.SystemTopology) {
		for i := range t.Organs {
			o := &t.Organs[i]
			if len(o.Peripherals) == 0 {
				continue
			}
			any = true
			fmt.Fprintf(&b, " - Organ %s:\n", o.Kind)
			for _, p := range o.Peripherals {
				fmt.Fprintf(&b, "    - %s: %s\n", p.Kind, p.Name)
			}
		}
	})
	if !any {
		b.WriteString(" (no peripherals registered)\n")
	}
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportHealth(bus *Bus) {
	var b strings.Builder
	b.WriteString("Organ health:\n")
	d.store.View(func(t *organism.SystemTopology) {
		for i := range t.Organs {
			o := &t.Organs[i]
			fmt.Fprintf(&b, " - %s: %.2f (%s)\n", o.Kind, o.Health, organism.ClassifyHealth(o.Health))
		}
	})
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportAwareness(bus *Bus) {
	var score float64
	if err := d.store.View(func(t *organism.SystemTopology) {
		score = organism.Awareness(t)
	}); err != nil {
		d.reply(bus, fmt.Sprintf("awareness unavailable: %v", err))
		return
	}
	bus.Awareness = score
	d.reply(bus, fmt.Sprintf("awareness index: %.2f :: %s", score, organism.DescribeAwareness(score)))
}

func (d *CommandDaemon) reportAlerts(bus *Bus) {
	var b strings.Builder
	b.WriteString("Alerts:\n")
	worst := 0
	any := false
	d.store.View(func(t *organism.SystemTopology) {
		for i := range t.Organs {
			o := &t.Organs[i]
			sev := organism.HealthSeverity(o.Health)
			if sev == 0 {
				continue
			}
			any = true
			if sev > worst {
				worst = sev
			}
			fmt.Fprintf(&b, " - %s: %.2f [%s]\n", o.Kind, o.Health, organism.ClassifyHealth(o.Health))
		}
	})
	if !any {
		b.WriteString(" (no active alerts; all organs healthy)\n")
	} else {
		labels := []string{"ok", "degraded", "impaired", "critical", "failed"}
		fmt.Fprintf(&b, "overall: %s\n", labels[worst])
	}
	d.reply(bus, b.String())
}

func (d *CommandDaemon) reportMetrics(bus *Bus) {
	snap, ok := d.snapshots.Latest()
	if !ok {
		d.reply(bus, "no telemetry snapshot yet")
		return
	}
	d.reply(bus, fmt.Sprintf(
		"metrics :: cpu load %.2f temp %.1fC throttles %d gpu %.2f/%.2f :: "+
			"ram %.2f swap %.2f faults %.1f disk %.1fms :: "+
			"loss %.3f latency %.1fms queue %.2f errors %.3f",
		snap.CPU.CPULoad, snap.CPU.CPUTempC, snap.CPU.ThrottlingEvents,
		snap.CPU.GPULoad, snap.CPU.GPUMemUtil,
		snap.Memory.RAMUsedRatio, snap.Memory.SwapUsedRatio,
		snap.Memory.MajorPageFaults, snap.Memory.DiskLatencyMS,
		snap.IO.NetPacketLoss, snap.IO.NetLatencyMS,
		snap.IO.IOQueueDepth, snap.IO.IOErrorRate))
}

func (d *CommandDaemon) adjust(bus *Bus, args []string, heal bool) {
	verb := "damage"
	if heal {
		verb = "heal"
	}
	if len(args) != 2 {
		d.reply(bus, fmt.Sprintf("usage: %s <organ> <amount>", verb))
		return
	}
	kind, ok := organism.ParseOrganKind(args[0])
	if !ok {
		d.reply(bus, fmt.Sprintf("unknown organ %q", args[0]))
		return
	}
	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		d.reply(bus, fmt.Sprintf("invalid amount %q", args[1]))
		return
	}
	delta := amount
	if delta < 0 {
		delta = -delta
	}
	if !heal {
		delta = -delta
	}

	var (
		newHealth float64
		found     bool
		awareness float64
	)
	if err := d.store.Update(func(t *organism.SystemTopology) {
		for _, organ := range t.OrgansOfKind(kind) {
			newHealth = organ.AdjustHealth(delta)
			found = true
		}
		awareness = organism.Awareness(t)
	}); err != nil {
		d.reply(bus, fmt.Sprintf("%s failed: %v", verb, err))
		return
	}
	if !found {
		d.reply(bus, fmt.Sprintf("organ %s not found in topology", kind))
		return
	}

	bus.Awareness = awareness
	past := "damaged"
	if heal {
		past = "healed"
	}
	d.reply(bus, fmt.Sprintf("%s %s by %.2f, new health %.2f (awareness %.2f)",
		past, kind, abs(amount), newHealth, awareness))
}

func (d *CommandDaemon) saveState(bus *Bus) {
	var saveErr error
	d.store.View(func(t *organism.SystemTopology) {
		saveErr = SaveState(t, d.statePath)
	})
	if saveErr != nil {
		d.reply(bus, fmt.Sprintf("save failed: %v", saveErr))
		return
	}
	d.reply(bus, fmt.Sprintf("state saved to %s", d.statePath))
}

func (d *CommandDaemon) loadState(bus *Bus) {
	var (
		applied   int
		loadErr   error
		awareness float64
	)
	d.store.Update(func(t *organism.SystemTopology) {
		applied, loadErr = LoadState(t, d.statePath)
		awareness = organism.Awareness(t)
	})
	if loadErr != nil {
		d.reply(bus, fmt.Sprintf("load failed: %v", loadErr))
		return
	}
	bus.Awareness = awareness
	d.reply(bus, fmt.Sprintf("state loaded from %s (%d organ(s), awareness %.2f)",
		d.statePath, applied, awareness))
}

func (d *CommandDaemon) simCommand(bus *Bus, args []string) {
	switch {
	case len(args) == 1 && args[0] == "status":
		d.reply(bus, fmt.Sprintf("simulation level: %s", bus.SimLevel))
	case len(args) == 2 && args[0] == "level":
		level, ok := telemetry.ParseSimLevel(args[1])
		if !ok {
			d.reply(bus, "usage: sim level <off|low|high>")
			return
		}
		bus.SimLevel = level
		d.reply(bus, fmt.Sprintf("simulation level set to %s", level))
	default:
		d.reply(bus, "usage: sim status | sim level <off|low|high>")
	}
}

func (d *CommandDaemon) logsCommand(bus *Bus, args []string) {
	if len(args) != 1 {
		d.reply(bus, "usage: logs <all|commands|silent|off>")
		return
	}
	filter, ok := ParseLogFilter(args[0])
	if !ok {
		d.reply(bus, "usage: logs <all|commands|silent|off>")
		return
	}
	bus.Filter = filter
	d.reply(bus, fmt.Sprintf("logging: %s", filter))
}

func (d *CommandDaemon) memCommand(bus *Bus, args []string) {
	switch {
	case len(args) == 0:
		d.reply(bus, d.mem.Dump())
	case args[0] == "ls":
		keys := d.mem.Keys()
		if len(keys) == 0 {
			d.reply(bus, "working memory is empty")
			return
		}
		d.reply(bus, "keys: "+strings.Join(keys, ", "))
	case args[0] == "get" && len(args) == 2:
		value, ok := d.mem.Get(memory.Global(), args[1])
		if !ok {
			d.reply(bus, fmt.Sprintf("no value for %q", args[1]))
			return
		}
		d.reply(bus, fmt.Sprintf("%s = %s", args[1], value))
	case args[0] == "set" && len(args) >= 3:
		d.mem.SetText(memory.Global(), args[1], strings.Join(args[2:], " "))
		d.reply(bus, fmt.Sprintf("stored %q", args[1]))
	default:
		d.reply(bus, "usage: mem | mem ls | mem get <key> | mem set <key> <value...>")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
