// Package capability is the capability-tag registry: bookkeeping for
// what each organ can do, surfaced by the `caps` shell command. It
// holds no algorithmic content; planning over capabilities is a later
// concern.
package capability

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/danmuck/organctl/internal/organism"
)

// Kind is a high-level capability verb.
type Kind int

const (
	CortexCompute Kind = iota
	StorageIo
	MemoryAccess
	NetworkIo
	SensorInput
	MotorControl
	GpuWorkload
	Orchestration
	Other
)

var kindNames = map[Kind]string{
	CortexCompute: "cortex_compute",
	StorageIo:     "storage_io",
	MemoryAccess:  "memory_access",
	NetworkIo:     "network_io",
	SensorInput:   "sensor_input",
	MotorControl:  "motor_control",
	GpuWorkload:   "gpu_workload",
	Orchestration: "orchestration",
	Other:         "other",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "other"
}

// Capability is one registered capability instance on an organ.
type Capability struct {
	ID          uint64
	OrganID     organism.OrganID
	Kind        Kind
	Label       string
	Description string
	Enabled     bool
	Priority    float64
}

// Registry indexes capabilities by id and by organ. Guarded because
// the shell reads it while future daemons may toggle entries.
type Registry struct {
	mu      sync.RWMutex
	byID    map[uint64]Capability
	byOrgan map[organism.OrganID][]uint64
	nextID  uint64
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[uint64]Capability),
		byOrgan: make(map[organism.OrganID][]uint64),
	}
}

// Register adds a capability for an organ and returns its id.
// Priority is clamped to [0,1].
func (r *Registry) Register(organID organism.OrganID, kind Kind, label, description string, priority float64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.byID[id] = Capability{
		ID:          id,
		OrganID:     organID,
		Kind:        kind,
		Label:       label,
		Description: description,
		Enabled:     true,
		Priority:    organism.Clamp01(priority),
	}
	r.byOrgan[organID] = append(r.byOrgan[organID], id)
	return id
}

// Get returns one capability by id.
func (r *Registry) Get(id uint64) (Capability, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byID[id]
	return c, ok
}

// ForOrgan lists capabilities registered on an organ.
func (r *Registry) ForOrgan(organID organism.OrganID) []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byOrgan[organID]
	out := make([]Capability, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}

// ByKind lists capabilities matching one kind.
func (r *Registry) ByKind(kind Kind) []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Capability
	for _, c := range r.byID {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetEnabled toggles one capability.
func (r *Registry) SetEnabled(id uint64, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return false
	}
	c.Enabled = enabled
	r.byID[id] = c
	return true
}

// DescribeAll renders the registry as text for the shell.
func (r *Registry) DescribeAll() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint64, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	b.WriteString("Capabilities:\n")
	for _, id := range ids {
		c := r.byID[id]
		state := "enabled"
		if !c.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(&b, " - #%d organ=%d kind=%s [%s] prio=%.2f :: %s\n",
			c.ID, c.OrganID, c.Kind, state, c.Priority, c.Label)
		if c.Description != "" {
			fmt.Fprintf(&b, "   %s\n", c.Description)
		}
	}
	return b.String()
}

var tagKinds = map[organism.Tag]Kind{
	organism.TagCompute:    CortexCompute,
	organism.TagPerception: SensorInput,
	organism.TagActuation:  MotorControl,
	organism.TagStorage:    StorageIo,
	organism.TagNetworking: NetworkIo,
	organism.TagPlanning:   Orchestration,
	organism.TagLearning:   Other,
}

var organPriorities = map[organism.OrganKind]float64{
	organism.Cortex:   0.9,
	organism.Memory:   0.8,
	organism.IoBridge: 0.7,
}

// SeedFromTopology registers one capability per organ tag so the boot
// topology is browsable immediately.
func SeedFromTopology(r *Registry, t *organism.SystemTopology) {
	for i := range t.Organs {
		organ := &t.Organs[i]
		prio, ok := organPriorities[organ.Kind]
		if !ok {
			prio = 0.5
		}
		for _, tag := range organ.Tags {
			kind, ok := tagKinds[tag]
			if !ok {
				kind = Other
			}
			r.Register(organ.ID, kind, tag.String(),
				fmt.Sprintf("%s capability on %s organ", tag, organ.Kind), prio)
		}
	}
}
