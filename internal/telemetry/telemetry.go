// Package telemetry owns raw metric collection and the
// metrics-to-health math.
//
// Ownership boundary:
// - metric group shapes (compute/accelerator, memory, io)
//
// - the Provider contract and its simulated/host implementations
//
// - per-role health targets and the blend step
//
// - the guarded last-snapshot store read by the HTTP listener
//
// Telemetry never touches the topology; the status daemon applies
// the blend under the topology guard.
package telemetry

import "strings"

// CPUMetrics groups compute/accelerator readings.
type CPUMetrics struct {
	CPULoad          float64 `json:"cpu_load"`
	CPUTempC         float64 `json:"cpu_temp_c"`
	ThrottlingEvents uint32  `json:"throttling_events"`
	GPULoad          float64 `json:"gpu_load"`
	GPUMemUtil       float64 `json:"gpu_mem_util"`
}

// MemoryMetrics groups memory/storage readings.
type MemoryMetrics struct {
	RAMUsedRatio    float64 `json:"ram_used_ratio"`
	SwapUsedRatio   float64 `json:"swap_used_ratio"`
	MajorPageFaults float64 `json:"major_page_faults"`
	DiskLatencyMS   float64 `json:"disk_latency_ms"`
}

// IOMetrics groups io/network readings.
type IOMetrics struct {
	NetPacketLoss float64 `json:"net_packet_loss"`
	NetLatencyMS  float64 `json:"net_latency_ms"`
	IOQueueDepth  float64 `json:"io_queue_depth"`
	IOErrorRate   float64 `json:"io_error_rate"`
}

// Snapshot is one immutable reading across all three metric groups.
type Snapshot struct {
	CPU    CPUMetrics    `json:"cpu"`
	Memory MemoryMetrics `json:"memory"`
	IO     IOMetrics     `json:"io"`
}

// Provider supplies raw metrics. Implementations are pure
// request/response and must not block.
type Provider interface {
	ReadCPUMetrics() CPUMetrics
	ReadMemoryMetrics() MemoryMetrics
	ReadIOMetrics() IOMetrics
}

// Read pulls one full snapshot from a provider.
func Read(p Provider) Snapshot {
	return Snapshot{
		CPU:    p.ReadCPUMetrics(),
		Memory: p.ReadMemoryMetrics(),
		IO:     p.ReadIOMetrics(),
	}
}

// Mode selects the telemetry backend, fixed at process start.
type Mode int

const (
	ModeSimulated Mode = iota
	ModeReal
)

func (m Mode) String() string {
	if m == ModeReal {
		return "real"
	}
	return "simulated"
}

// ParseMode resolves the backend selector; anything other than
// "real" falls back to the simulated default.
func ParseMode(raw string) Mode {
	if strings.EqualFold(strings.TrimSpace(raw), "real") {
		return ModeReal
	}
	return ModeSimulated
}
