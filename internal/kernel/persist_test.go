package kernel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/testutil/testlog"
)

func TestSaveStateFormat(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "state.txt")

	if err := SaveState(organism.SampleTopology(), path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	want := "Cortex 0.9800\nMemory 0.9900\nIoBridge 0.9700\n"
	if string(data) != want {
		t.Fatalf("saved state = %q, want %q", data, want)
	}
}

func TestLoadStateRoundTrip(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "state.txt")

	saved := organism.SampleTopology()
	saved.Organs[0].SetHealth(0.1234)
	if err := SaveState(saved, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := organism.SampleTopology()
	applied, err := LoadState(loaded, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if applied != 3 {
		t.Fatalf("applied = %d, want 3", applied)
	}
	if loaded.Organs[0].Health != 0.1234 {
		t.Fatalf("cortex after round trip = %v, want 0.1234", loaded.Organs[0].Health)
	}
}

func TestLoadStateSkipsMalformedLines(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "state.txt")
	content := "Cortex 0.5\n" +
		"Gizzard 0.9\n" + // unknown organ
		"Memory abc\n" + // unparsable health
		"IoBridge 0.25 extra\n" + // wrong field count
		"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	topo := organism.SampleTopology()
	applied, err := LoadState(topo, path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if applied != 1 {
		t.Fatalf("applied = %d, want 1", applied)
	}
	if topo.Organs[0].Health != 0.5 {
		t.Fatalf("cortex = %v, want 0.5", topo.Organs[0].Health)
	}
	if topo.Organs[1].Health != 0.99 || topo.Organs[2].Health != 0.97 {
		t.Fatalf("skipped lines mutated organs: %v %v",
			topo.Organs[1].Health, topo.Organs[2].Health)
	}
}

func TestLoadStateClampsValues(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "state.txt")
	if err := os.WriteFile(path, []byte("Cortex 1.5\nMemory -0.2\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	topo := organism.SampleTopology()
	if _, err := LoadState(topo, path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if topo.Organs[0].Health != 1.0 {
		t.Fatalf("cortex = %v, want clamped 1.0", topo.Organs[0].Health)
	}
	if topo.Organs[1].Health != 0.0 {
		t.Fatalf("memory = %v, want clamped 0.0", topo.Organs[1].Health)
	}
}

func TestLoadStateMissingFile(t *testing.T) {
	testlog.Start(t)
	topo := organism.SampleTopology()
	if _, err := LoadState(topo, filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatalf("load of missing file did not error")
	}
}
