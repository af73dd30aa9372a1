package organism

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func topologyWithHealth(cortex, memory, ioBridge float64) *SystemTopology {
	t := SampleTopology()
	t.Organs[0].Health = cortex
	t.Organs[1].Health = memory
	t.Organs[2].Health = ioBridge
	return t
}

func TestAwarenessSampleTopology(t *testing.T) {
	topo := SampleTopology()
	score := Awareness(topo)
	if !almostEqual(score, 0.981) {
		t.Fatalf("sample awareness = %v, want 0.981", score)
	}
	if label := DescribeAwareness(score); label != "optimal" {
		t.Fatalf("sample awareness label = %q, want optimal", label)
	}
}

func TestAwarenessBoundedAndMonotonic(t *testing.T) {
	steps := []float64{0.0, 0.25, 0.5, 0.75, 1.0}
	for _, c := range steps {
		for _, m := range steps {
			for _, io := range steps {
				score := Awareness(topologyWithHealth(c, m, io))
				if score < 0 || score > 1 {
					t.Fatalf("awareness(%v,%v,%v) = %v out of bounds", c, m, io, score)
				}

				// Raising any single input must never lower the score.
				const bump = 0.1
				if c+bump <= 1 {
					if up := Awareness(topologyWithHealth(c+bump, m, io)); up < score {
						t.Fatalf("awareness not monotonic in cortex at (%v,%v,%v)", c, m, io)
					}
				}
				if m+bump <= 1 {
					if up := Awareness(topologyWithHealth(c, m+bump, io)); up < score {
						t.Fatalf("awareness not monotonic in memory at (%v,%v,%v)", c, m, io)
					}
				}
				if io+bump <= 1 {
					if up := Awareness(topologyWithHealth(c, m, io+bump)); up < score {
						t.Fatalf("awareness not monotonic in io bridge at (%v,%v,%v)", c, m, io)
					}
				}
			}
		}
	}
}

func TestAwarenessAbsentRolesDefaultHealthy(t *testing.T) {
	empty := &SystemTopology{}
	if score := Awareness(empty); !almostEqual(score, 1.0) {
		t.Fatalf("awareness of empty topology = %v, want 1.0", score)
	}

	onlyCortex := &SystemTopology{
		Organs: []Organ{{ID: 1, Kind: Cortex, Health: 0.5}},
	}
	want := 0.5*0.5 + 0.3 + 0.2
	if score := Awareness(onlyCortex); !almostEqual(score, want) {
		t.Fatalf("awareness with only cortex = %v, want %v", score, want)
	}
}

func TestOverallHealth(t *testing.T) {
	if h := OverallHealth(&SystemTopology{}); !almostEqual(h, 1.0) {
		t.Fatalf("overall health of empty organ set = %v, want 1.0", h)
	}
	topo := topologyWithHealth(0.9, 0.4, 0.7)
	if h := OverallHealth(topo); !almostEqual(h, 0.4) {
		t.Fatalf("overall health = %v, want minimum 0.4", h)
	}
}

func TestClassifyHealthBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "ok"},
		{0.85, "ok"},
		{0.8499, "degraded"},
		{0.60, "degraded"},
		{0.5999, "impaired"},
		{0.35, "impaired"},
		{0.3499, "critical"},
		{0.0001, "critical"},
		{0.0, "failed"},
	}
	for _, tc := range cases {
		if got := ClassifyHealth(tc.score); got != tc.want {
			t.Fatalf("ClassifyHealth(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestDescribeAwarenessBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{1.0, "optimal"},
		{0.85, "optimal"},
		{0.8499, "stable"},
		{0.60, "stable"},
		{0.5999, "impaired"},
		{0.35, "impaired"},
		{0.3499, "critical"},
		{0.0001, "critical"},
		{0.0, "unconscious"},
	}
	for _, tc := range cases {
		if got := DescribeAwareness(tc.score); got != tc.want {
			t.Fatalf("DescribeAwareness(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestOrganHealthClamps(t *testing.T) {
	organ := &Organ{Kind: Cortex, Health: 0.5}
	organ.SetHealth(1.7)
	if organ.Health != 1.0 {
		t.Fatalf("SetHealth above range = %v, want 1.0", organ.Health)
	}
	organ.AdjustHealth(-2.0)
	if organ.Health != 0.0 {
		t.Fatalf("AdjustHealth below range = %v, want 0.0", organ.Health)
	}
}

func TestParseOrganKind(t *testing.T) {
	cases := map[string]OrganKind{
		"cortex":    Cortex,
		"Cortex":    Cortex,
		"MEMORY":    Memory,
		"io":        IoBridge,
		"io_bridge": IoBridge,
		"io-bridge": IoBridge,
		"IoBridge":  IoBridge,
		"storage":   Storage,
	}
	for raw, want := range cases {
		got, ok := ParseOrganKind(raw)
		if !ok || got != want {
			t.Fatalf("ParseOrganKind(%q) = %v, %v; want %v", raw, got, ok, want)
		}
	}
	if _, ok := ParseOrganKind("gizzard"); ok {
		t.Fatalf("ParseOrganKind accepted unknown organ")
	}
}

func TestFormatBrief(t *testing.T) {
	brief := FormatBrief(SampleTopology())
	want := "2 node(s), 3 organ(s) :: core-0 (primary brain), io-0 (peripheral bridge)"
	if brief != want {
		t.Fatalf("brief = %q, want %q", brief, want)
	}
}
