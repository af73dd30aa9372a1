package organism

import (
	"fmt"
	"strings"
)

// Awareness weighting across the three core organ roles. An absent
// role counts as fully healthy so a minimal topology is not penalized.
const (
	cortexWeight   = 0.5
	memoryWeight   = 0.3
	ioBridgeWeight = 0.2
)

// Clamp01 bounds a scalar to [0,1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// OverallHealth is the minimum health across all organs; an empty
// organ set reports 1.0. The system is only as healthy as its weakest
// organ, so no averaging masks a failing part.
func OverallHealth(t *SystemTopology) float64 {
	min := 1.0
	for i := range t.Organs {
		if t.Organs[i].Health < min {
			min = t.Organs[i].Health
		}
	}
	return min
}

// Awareness is the weighted aggregate of the core organ healths,
// clamped to [0,1]. It is monotonic in each input.
func Awareness(t *SystemTopology) float64 {
	score := cortexWeight*roleHealth(t, Cortex) +
		memoryWeight*roleHealth(t, Memory) +
		ioBridgeWeight*roleHealth(t, IoBridge)
	return Clamp01(score)
}

func roleHealth(t *SystemTopology, kind OrganKind) float64 {
	for i := range t.Organs {
		if t.Organs[i].Kind == kind {
			return t.Organs[i].Health
		}
	}
	return 1.0
}

// ClassifyHealth maps a health score onto the five-band label scale.
// Band lower bounds are inclusive.
func ClassifyHealth(score float64) string {
	switch {
	case score >= 0.85:
		return "ok"
	case score >= 0.60:
		return "degraded"
	case score >= 0.35:
		return "impaired"
	case score > 0.0:
		return "critical"
	default:
		return "failed"
	}
}

// DescribeAwareness maps an awareness score onto the five-band
// awareness scale, using the same breakpoints as ClassifyHealth.
func DescribeAwareness(score float64) string {
	switch {
	case score >= 0.85:
		return "optimal"
	case score >= 0.60:
		return "stable"
	case score >= 0.35:
		return "impaired"
	case score > 0.0:
		return "critical"
	default:
		return "unconscious"
	}
}

// HealthSeverity orders the health bands for alert aggregation:
// 0 ok through 4 failed.
func HealthSeverity(score float64) int {
	switch {
	case score >= 0.85:
		return 0
	case score >= 0.60:
		return 1
	case score >= 0.35:
		return 2
	case score > 0.0:
		return 3
	default:
		return 4
	}
}

// FormatBrief is the compact one-line topology summary used in
// status pulses.
func FormatBrief(t *SystemTopology) string {
	labels := make([]string, 0, len(t.Nodes))
	for _, n := range t.Nodes {
		labels = append(labels, fmt.Sprintf("%s (%s)", n.Label, n.Role))
	}
	return fmt.Sprintf("%d node(s), %d organ(s) :: %s",
		len(t.Nodes), len(t.Organs), strings.Join(labels, ", "))
}
