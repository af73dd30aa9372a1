package capability

import (
	"strings"
	"testing"

	"github.com/danmuck/organctl/internal/organism"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	id := r.Register(1, CortexCompute, "compute", "general compute", 0.9)

	c, ok := r.Get(id)
	if !ok {
		t.Fatalf("registered capability not found")
	}
	if c.OrganID != 1 || c.Kind != CortexCompute || c.Label != "compute" {
		t.Fatalf("capability = %+v", c)
	}
	if !c.Enabled {
		t.Fatalf("new capability not enabled by default")
	}

	if _, ok := r.Get(999); ok {
		t.Fatalf("unknown id reported present")
	}
}

func TestRegisterClampsPriority(t *testing.T) {
	r := NewRegistry()
	id := r.Register(1, Other, "x", "", 3.5)
	c, _ := r.Get(id)
	if c.Priority != 1.0 {
		t.Fatalf("priority = %v, want clamped 1.0", c.Priority)
	}
}

func TestForOrganAndByKind(t *testing.T) {
	r := NewRegistry()
	r.Register(1, CortexCompute, "compute", "", 0.9)
	r.Register(1, Orchestration, "planning", "", 0.9)
	r.Register(2, StorageIo, "storage", "", 0.8)

	if got := r.ForOrgan(1); len(got) != 2 {
		t.Fatalf("ForOrgan(1) = %d entries, want 2", len(got))
	}
	if got := r.ForOrgan(3); len(got) != 0 {
		t.Fatalf("ForOrgan(3) = %d entries, want 0", len(got))
	}
	if got := r.ByKind(StorageIo); len(got) != 1 || got[0].OrganID != 2 {
		t.Fatalf("ByKind(StorageIo) = %+v", got)
	}
}

func TestSetEnabled(t *testing.T) {
	r := NewRegistry()
	id := r.Register(1, NetworkIo, "net", "", 0.7)

	if !r.SetEnabled(id, false) {
		t.Fatalf("SetEnabled on known id failed")
	}
	c, _ := r.Get(id)
	if c.Enabled {
		t.Fatalf("capability still enabled after disable")
	}
	if r.SetEnabled(999, true) {
		t.Fatalf("SetEnabled on unknown id succeeded")
	}
}

// The boot topology carries 7 tags across its three organs, one
// capability each.
func TestSeedFromTopology(t *testing.T) {
	r := NewRegistry()
	topo := organism.SampleTopology()
	SeedFromTopology(r, topo)

	total := 0
	for _, organ := range topo.Organs {
		caps := r.ForOrgan(organ.ID)
		if len(caps) != len(organ.Tags) {
			t.Fatalf("organ %s has %d caps, want %d", organ.Kind, len(caps), len(organ.Tags))
		}
		total += len(caps)
	}
	if total != 7 {
		t.Fatalf("seeded %d capabilities, want 7", total)
	}

	cortexCaps := r.ForOrgan(1)
	for _, c := range cortexCaps {
		if c.Priority != 0.9 {
			t.Fatalf("cortex capability priority = %v, want 0.9", c.Priority)
		}
	}
	if got := r.ByKind(Orchestration); len(got) != 1 {
		t.Fatalf("planning tag did not map to orchestration: %+v", got)
	}
}

func TestDescribeAll(t *testing.T) {
	r := NewRegistry()
	SeedFromTopology(r, organism.SampleTopology())

	text := r.DescribeAll()
	if !strings.HasPrefix(text, "Capabilities:\n") {
		t.Fatalf("describe header missing: %q", text)
	}
	for _, want := range []string{"cortex_compute", "storage_io", "network_io", "sensor_input"} {
		if !strings.Contains(text, want) {
			t.Fatalf("describe missing %q:\n%s", want, text)
		}
	}
}
