package telemetry

// BlendAlpha is the exponential moving blend smoothing factor. One
// step moves a quarter of the way to target; convergence within a few
// ticks without single-reading discontinuities.
const BlendAlpha = 0.25

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// CortexTarget derives the cortex health target from CPU temperature.
// The penalty ramps from 60C and saturates at 0.6 by 100C.
func CortexTarget(m CPUMetrics) float64 {
	penalty := (m.CPUTempC - 60.0) / 40.0
	if penalty < 0 {
		penalty = 0
	}
	if penalty > 0.6 {
		penalty = 0.6
	}
	return clamp01(1.0 - penalty)
}

// MemoryTarget derives the memory health target from RAM pressure.
// The penalty starts above 75% utilization and saturates at 0.3.
func MemoryTarget(m MemoryMetrics) float64 {
	penalty := m.RAMUsedRatio - 0.75
	if penalty < 0 {
		penalty = 0
	}
	if penalty > 0.3 {
		penalty = 0.3
	}
	return clamp01(1.0 - penalty)
}

// IOBridgeTarget derives the io bridge health target from packet
// loss. The penalty saturates at 0.4 (10% loss).
func IOBridgeTarget(m IOMetrics) float64 {
	penalty := m.NetPacketLoss * 4.0
	if penalty > 0.4 {
		penalty = 0.4
	}
	return clamp01(1.0 - penalty)
}

// Blend moves current health one step toward target with the fixed
// smoothing factor, clamped to [0,1]. Idempotent at the fixed point.
func Blend(current, target float64) float64 {
	return clamp01((1.0-BlendAlpha)*current + BlendAlpha*target)
}
