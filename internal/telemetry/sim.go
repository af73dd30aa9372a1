package telemetry

// Simulated is the default provider: a deterministic waveform over a
// 60-tick phase, shaped by the configured intensity. Determinism
// keeps the blend and daemon tests reproducible.
type Simulated struct {
	tick  uint64
	level SimLevel
}

// NewSimulated builds a simulated provider at the given intensity.
func NewSimulated(level SimLevel) *Simulated {
	return &Simulated{level: level}
}

func (s *Simulated) nextPhase() float64 {
	s.tick++
	return float64(s.tick%60) / 60.0
}

func (s *Simulated) ReadCPUMetrics() CPUMetrics {
	p := s.nextPhase()
	switch s.level {
	case SimLow:
		return CPUMetrics{
			CPULoad:  0.2 + 0.25*abs(p-0.5),
			CPUTempC: 45.0 + p*10.0,
			GPULoad:  0.15 + 0.2*p,
			GPUMemUtil: 0.10 + 0.15*(1.0-p),
		}
	case SimHigh:
		temp := 55.0 + p*25.0
		var throttles uint32
		if temp > 75.0 {
			throttles = 1
		}
		return CPUMetrics{
			CPULoad:          0.4 + 0.5*p,
			CPUTempC:         temp,
			ThrottlingEvents: throttles,
			GPULoad:          0.5 + 0.45*(1.0-p),
			GPUMemUtil:       0.4 + 0.4*p,
		}
	default:
		return CPUMetrics{
			CPULoad:    0.15,
			CPUTempC:   45.0,
			GPULoad:    0.10,
			GPUMemUtil: 0.08,
		}
	}
}

func (s *Simulated) ReadMemoryMetrics() MemoryMetrics {
	p := s.nextPhase()
	switch s.level {
	case SimLow:
		return MemoryMetrics{
			RAMUsedRatio:    0.35 + 0.15*p,
			MajorPageFaults: 0.5,
			DiskLatencyMS:   3.0 + 2.0*p,
		}
	case SimHigh:
		return MemoryMetrics{
			RAMUsedRatio:    0.6 + 0.35*p,
			MajorPageFaults: 2.0 + 5.0*p,
			DiskLatencyMS:   5.0 + 12.0*p,
		}
	default:
		return MemoryMetrics{
			RAMUsedRatio:  0.3,
			DiskLatencyMS: 2.0,
		}
	}
}

func (s *Simulated) ReadIOMetrics() IOMetrics {
	return IOMetrics{
		NetLatencyMS: 5.0,
		IOQueueDepth: 0.1,
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
