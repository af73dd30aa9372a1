package telemetry

import "sync"

// SnapshotStore guards the last published snapshot. It has its own
// lock, independent of the topology guard, so listener reads are not
// serialized behind topology writes.
type SnapshotStore struct {
	mu   sync.RWMutex
	last *Snapshot
}

// NewSnapshotStore starts empty; Latest reports ok=false until the
// first status tick publishes.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish replaces the guarded snapshot.
func (s *SnapshotStore) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &snap
}

// Latest copies out the last snapshot, if any.
func (s *SnapshotStore) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return Snapshot{}, false
	}
	return *s.last, true
}
