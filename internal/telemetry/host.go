package telemetry

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	gnet "github.com/shirou/gopsutil/v3/net"
)

// Fallback readings when the host refuses a probe. Chosen to map to
// fully-healthy targets so a flaky sensor cannot damage organs.
const (
	fallbackCPULoad  = 0.30
	fallbackCPUTempC = 50.0
	fallbackLatency  = 5.0
)

// Host reads metrics from the local machine via gopsutil. Probes that
// fail fall back to neutral constants; a telemetry read must never
// stall or fail a status tick.
type Host struct{}

// NewHost builds the host-backed provider.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) ReadCPUMetrics() CPUMetrics {
	out := CPUMetrics{
		CPULoad:  fallbackCPULoad,
		CPUTempC: fallbackCPUTempC,
	}

	if loads, err := cpu.Percent(0, false); err == nil && len(loads) > 0 {
		out.CPULoad = clamp01(loads[0] / 100.0)
	} else if err != nil {
		log.Debug().Err(err).Msg("host_cpu_probe_failed")
	}

	if temps, err := host.SensorsTemperatures(); err == nil {
		if t, ok := cpuTemperature(temps); ok {
			out.CPUTempC = t
		}
	}

	return out
}

func (h *Host) ReadMemoryMetrics() MemoryMetrics {
	out := MemoryMetrics{DiskLatencyMS: fallbackLatency}

	if vm, err := mem.VirtualMemory(); err == nil {
		out.RAMUsedRatio = clamp01(vm.UsedPercent / 100.0)
	} else {
		log.Debug().Err(err).Msg("host_mem_probe_failed")
	}
	if swap, err := mem.SwapMemory(); err == nil {
		out.SwapUsedRatio = clamp01(swap.UsedPercent / 100.0)
	}

	return out
}

func (h *Host) ReadIOMetrics() IOMetrics {
	out := IOMetrics{
		NetLatencyMS: fallbackLatency,
		IOQueueDepth: 0.1,
	}

	counters, err := gnet.IOCounters(false)
	if err != nil || len(counters) == 0 {
		if err != nil {
			log.Debug().Err(err).Msg("host_net_probe_failed")
		}
		return out
	}

	c := counters[0]
	packets := float64(c.PacketsSent + c.PacketsRecv)
	if packets > 0 {
		dropped := float64(c.Dropin + c.Dropout)
		out.NetPacketLoss = clamp01(dropped / packets)
		out.IOErrorRate = clamp01(float64(c.Errin+c.Errout) / packets)
	}
	return out
}

func cpuTemperature(temps []host.TemperatureStat) (float64, bool) {
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if strings.Contains(key, "coretemp") || strings.Contains(key, "cpu") {
			if t.Temperature > 0 {
				return t.Temperature, true
			}
		}
	}
	return 0, false
}
