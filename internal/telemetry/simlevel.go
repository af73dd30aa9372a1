package telemetry

import "strings"

// SimLevel is the synthetic stress intensity shared by the simulated
// provider and the simulation daemon.
type SimLevel int

const (
	SimOff SimLevel = iota
	SimLow
	SimHigh
)

func (l SimLevel) String() string {
	switch l {
	case SimLow:
		return "low"
	case SimHigh:
		return "high"
	default:
		return "off"
	}
}

// ParseSimLevel resolves an intensity from shell or config input.
func ParseSimLevel(raw string) (SimLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "off":
		return SimOff, true
	case "low":
		return SimLow, true
	case "high":
		return SimHigh, true
	default:
		return SimOff, false
	}
}
