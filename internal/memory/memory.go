// Package memory is the working-memory collaborator: a small typed
// key/value store used for side-channel debugging output (the `mem`
// shell commands and the /mem endpoint). It carries no kernel logic.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ScopeKind partitions the store.
type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeNode
	ScopeOrgan
	ScopeTask
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeNode:
		return "node"
	case ScopeOrgan:
		return "organ"
	case ScopeTask:
		return "task"
	default:
		return "global"
	}
}

// Scope is a comparable (kind, ref) pair; Ref is zero for global.
type Scope struct {
	Kind ScopeKind
	Ref  uint64
}

// Global is the scope used by the shell pass-through commands.
func Global() Scope { return Scope{Kind: ScopeGlobal} }

// NodeScope addresses one node's entries.
func NodeScope(id uint64) Scope { return Scope{Kind: ScopeNode, Ref: id} }

// OrganScope addresses one organ's entries.
func OrganScope(id uint64) Scope { return Scope{Kind: ScopeOrgan, Ref: id} }

// TaskScope addresses one task's entries.
func TaskScope(id uint64) Scope { return Scope{Kind: ScopeTask, Ref: id} }

func (s Scope) String() string {
	if s.Kind == ScopeGlobal {
		return "global"
	}
	return fmt.Sprintf("%s/%d", s.Kind, s.Ref)
}

// ValueKind tags the stored type.
type ValueKind int

const (
	ValueText ValueKind = iota
	ValueNumber
	ValueFlag
)

// Value is a small typed payload; kept non-generic so it stays
// trivially serializable.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
	Flag   bool
}

func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return fmt.Sprintf("%g", v.Number)
	case ValueFlag:
		return fmt.Sprintf("%t", v.Flag)
	default:
		return fmt.Sprintf("%q", v.Text)
	}
}

type entryKey struct {
	scope Scope
	key   string
}

// Store is the guarded working-memory map. Readers and writers come
// from the scheduler thread and the HTTP listener concurrently.
type Store struct {
	mu   sync.RWMutex
	data map[entryKey]Value
}

// NewStore builds an empty working memory.
func NewStore() *Store {
	return &Store{data: make(map[entryKey]Value)}
}

// SetText stores a text value.
func (s *Store) SetText(scope Scope, key, value string) {
	s.set(scope, key, Value{Kind: ValueText, Text: value})
}

// SetNumber stores a numeric value.
func (s *Store) SetNumber(scope Scope, key string, value float64) {
	s.set(scope, key, Value{Kind: ValueNumber, Number: value})
}

// SetFlag stores a boolean value.
func (s *Store) SetFlag(scope Scope, key string, value bool) {
	s.set(scope, key, Value{Kind: ValueFlag, Flag: value})
}

func (s *Store) set(scope Scope, key string, v Value) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[entryKey{scope: scope, key: key}] = v
}

// Get reads a value back, if present.
func (s *Store) Get(scope Scope, key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[entryKey{scope: scope, key: key}]
	return v, ok
}

// Keys lists every (scope, key) pair, sorted for stable output.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, fmt.Sprintf("%s/%s", k.scope, k.key))
	}
	sort.Strings(out)
	return out
}

// Dump renders the whole store as sorted text for /mem and the shell.
func (s *Store) Dump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, 0, len(s.data))
	for k, v := range s.data {
		lines = append(lines, fmt.Sprintf(" - %s / %s = %s", k.scope, k.key, v))
	}
	sort.Strings(lines)

	var b strings.Builder
	b.WriteString("Working memory snapshot:\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
