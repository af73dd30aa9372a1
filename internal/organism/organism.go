package organism

import "strings"

// NodeID identifies one node in the topology.
type NodeID uint32

// OrganID identifies one organ in the topology.
type OrganID uint32

// OrganKind is the closed set of modeled subsystems.
type OrganKind int

const (
	Cortex OrganKind = iota
	Memory
	IoBridge
	SensorHub
	MotorControl
	Network
	Storage
)

var organKindNames = map[OrganKind]string{
	Cortex:       "Cortex",
	Memory:       "Memory",
	IoBridge:     "IoBridge",
	SensorHub:    "SensorHub",
	MotorControl: "MotorControl",
	Network:      "Network",
	Storage:      "Storage",
}

func (k OrganKind) String() string {
	if name, ok := organKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseOrganKind resolves an organ kind from user or file input.
// Matching is case-insensitive and accepts the io bridge aliases
// used by the command shell.
func ParseOrganKind(name string) (OrganKind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cortex":
		return Cortex, true
	case "memory":
		return Memory, true
	case "io", "io_bridge", "io-bridge", "iobridge":
		return IoBridge, true
	case "sensorhub", "sensor_hub", "sensor-hub":
		return SensorHub, true
	case "motorcontrol", "motor_control", "motor-control":
		return MotorControl, true
	case "network":
		return Network, true
	case "storage":
		return Storage, true
	default:
		return Cortex, false
	}
}

// Tag marks a coarse capability carried by an organ.
type Tag int

const (
	TagCompute Tag = iota
	TagPerception
	TagActuation
	TagStorage
	TagNetworking
	TagPlanning
	TagLearning
)

var tagNames = map[Tag]string{
	TagCompute:    "compute",
	TagPerception: "perception",
	TagActuation:  "actuation",
	TagStorage:    "storage",
	TagNetworking: "networking",
	TagPlanning:   "planning",
	TagLearning:   "learning",
}

func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return "unknown"
}

// PeripheralKind classifies attached hardware.
type PeripheralKind int

const (
	PeripheralCPU PeripheralKind = iota
	PeripheralGPU
	PeripheralNIC
	PeripheralDisk
	PeripheralUSB
	PeripheralSensor
	PeripheralMotor
	PeripheralDisplay
	PeripheralUnknown
)

var peripheralKindNames = map[PeripheralKind]string{
	PeripheralCPU:     "cpu",
	PeripheralGPU:     "gpu",
	PeripheralNIC:     "nic",
	PeripheralDisk:    "disk",
	PeripheralUSB:     "usb",
	PeripheralSensor:  "sensor",
	PeripheralMotor:   "motor",
	PeripheralDisplay: "display",
}

func (k PeripheralKind) String() string {
	if name, ok := peripheralKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Peripheral is an immutable kind+name pair owned by one organ.
type Peripheral struct {
	Kind PeripheralKind
	Name string
}

// Node groups organs under one host/location.
type Node struct {
	ID    NodeID
	Label string
	Role  string
}

// Organ is a modeled subsystem. Health is the only field mutated
// after construction and is always clamped to [0,1].
type Organ struct {
	ID          OrganID
	Node        NodeID
	Kind        OrganKind
	Tags        []Tag
	Health      float64
	Peripherals []Peripheral
}

// SetHealth overwrites organ health, clamped to [0,1].
func (o *Organ) SetHealth(h float64) {
	o.Health = Clamp01(h)
}

// AdjustHealth applies a signed delta and returns the clamped result.
func (o *Organ) AdjustHealth(delta float64) float64 {
	o.Health = Clamp01(o.Health + delta)
	return o.Health
}

// SystemTopology is the shared entity graph: ordered nodes and organs.
type SystemTopology struct {
	Nodes  []Node
	Organs []Organ
}

// OrgansOfKind returns pointers to every organ of the given kind, in
// topology order.
func (t *SystemTopology) OrgansOfKind(kind OrganKind) []*Organ {
	var out []*Organ
	for i := range t.Organs {
		if t.Organs[i].Kind == kind {
			out = append(out, &t.Organs[i])
		}
	}
	return out
}

// OrgansOnNode returns pointers to every organ owned by the node.
func (t *SystemTopology) OrgansOnNode(id NodeID) []*Organ {
	var out []*Organ
	for i := range t.Organs {
		if t.Organs[i].Node == id {
			out = append(out, &t.Organs[i])
		}
	}
	return out
}

// SampleTopology builds the fixed boot topology: a primary brain node
// and a peripheral bridge node carrying the three core organs.
func SampleTopology() *SystemTopology {
	return &SystemTopology{
		Nodes: []Node{
			{ID: 1, Label: "core-0", Role: "primary brain"},
			{ID: 2, Label: "io-0", Role: "peripheral bridge"},
		},
		Organs: []Organ{
			{
				ID:     1,
				Node:   1,
				Kind:   Cortex,
				Tags:   []Tag{TagCompute, TagPlanning, TagLearning},
				Health: 0.98,
				Peripherals: []Peripheral{
					{Kind: PeripheralCPU, Name: "Sim-CPU-0"},
					{Kind: PeripheralGPU, Name: "Sim-GPU-0"},
				},
			},
			{
				ID:     2,
				Node:   1,
				Kind:   Memory,
				Tags:   []Tag{TagStorage},
				Health: 0.99,
				Peripherals: []Peripheral{
					{Kind: PeripheralDisk, Name: "Sim-NVMe-0"},
				},
			},
			{
				ID:     3,
				Node:   2,
				Kind:   IoBridge,
				Tags:   []Tag{TagPerception, TagActuation, TagNetworking},
				Health: 0.97,
				Peripherals: []Peripheral{
					{Kind: PeripheralNIC, Name: "Sim-10G-NIC-0"},
					{Kind: PeripheralUSB, Name: "Sim-USB-Hub-0"},
					{Kind: PeripheralDisplay, Name: "Sim-Display-0"},
				},
			},
		},
	}
}
