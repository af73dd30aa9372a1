package memory

import (
	"strings"
	"testing"
)

func TestSetAndGetTypedValues(t *testing.T) {
	store := NewStore()
	store.SetText(Global(), "note", "hello")
	store.SetNumber(OrganScope(3), "health", 0.75)
	store.SetFlag(NodeScope(1), "online", true)

	text, ok := store.Get(Global(), "note")
	if !ok || text.Kind != ValueText || text.Text != "hello" {
		t.Fatalf("text value = %+v, %v", text, ok)
	}
	num, ok := store.Get(OrganScope(3), "health")
	if !ok || num.Kind != ValueNumber || num.Number != 0.75 {
		t.Fatalf("number value = %+v, %v", num, ok)
	}
	flag, ok := store.Get(NodeScope(1), "online")
	if !ok || flag.Kind != ValueFlag || !flag.Flag {
		t.Fatalf("flag value = %+v, %v", flag, ok)
	}

	if _, ok := store.Get(Global(), "absent"); ok {
		t.Fatalf("missing key reported present")
	}
}

func TestScopesIsolateKeys(t *testing.T) {
	store := NewStore()
	store.SetText(Global(), "k", "global")
	store.SetText(NodeScope(1), "k", "node")
	store.SetText(OrganScope(1), "k", "organ")

	g, _ := store.Get(Global(), "k")
	n, _ := store.Get(NodeScope(1), "k")
	o, _ := store.Get(OrganScope(1), "k")
	if g.Text != "global" || n.Text != "node" || o.Text != "organ" {
		t.Fatalf("scope collision: %q %q %q", g.Text, n.Text, o.Text)
	}
}

func TestSetOverwrites(t *testing.T) {
	store := NewStore()
	store.SetText(Global(), "k", "first")
	store.SetNumber(Global(), "k", 2.0)
	v, ok := store.Get(Global(), "k")
	if !ok || v.Kind != ValueNumber || v.Number != 2.0 {
		t.Fatalf("overwrite lost: %+v", v)
	}
}

func TestKeysSorted(t *testing.T) {
	store := NewStore()
	store.SetText(Global(), "zeta", "z")
	store.SetText(Global(), "alpha", "a")
	store.SetNumber(NodeScope(2), "beta", 1)

	keys := store.Keys()
	if len(keys) != 3 {
		t.Fatalf("keys = %v, want 3 entries", keys)
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}

func TestDumpFormat(t *testing.T) {
	store := NewStore()
	store.SetText(Global(), "policy", "maintain_load")
	store.SetNumber(Global(), "awareness", 0.98)

	dump := store.Dump()
	if !strings.HasPrefix(dump, "Working memory snapshot:\n") {
		t.Fatalf("dump header missing: %q", dump)
	}
	if !strings.Contains(dump, ` - global / policy = "maintain_load"`) {
		t.Fatalf("dump missing text entry: %q", dump)
	}
	if !strings.Contains(dump, " - global / awareness = 0.98") {
		t.Fatalf("dump missing number entry: %q", dump)
	}
}

func TestScopeString(t *testing.T) {
	cases := map[Scope]string{
		Global():      "global",
		NodeScope(4):  "node/4",
		OrganScope(2): "organ/2",
		TaskScope(7):  "task/7",
	}
	for scope, want := range cases {
		if scope.String() != want {
			t.Fatalf("Scope%+v.String() = %q, want %q", scope, scope.String(), want)
		}
	}
}
