package organism

import (
	"fmt"
	"sync"
)

// Store is the single exclusive-access wrapper around the shared
// topology. One writer or reader at a time; tick rates are seconds,
// so serialized access is acceptable and per-organ locking is not
// worth its complexity.
//
// Callers must not retain the *SystemTopology outside the closure and
// must not block inside it.
type Store struct {
	mu   sync.Mutex
	topo *SystemTopology
}

// NewStore takes ownership of the topology.
func NewStore(t *SystemTopology) *Store {
	return &Store{topo: t}
}

// View runs fn with the lock held. fn must treat the topology as
// read-only. A panic inside fn is recovered and returned as an error
// so one bad read never takes down the caller's loop.
func (s *Store) View(fn func(*SystemTopology)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("organism: topology view panicked: %v", r)
		}
	}()
	fn(s.topo)
	return nil
}

// Update runs fn with the lock held; fn may mutate organ health.
// A panic inside fn is recovered and returned as an error; the
// topology stays whatever state fn left it in, which is safe because
// all health writes clamp.
func (s *Store) Update(fn func(*SystemTopology)) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("organism: topology update panicked: %v", r)
		}
	}()
	fn(s.topo)
	return nil
}

// HealthSnapshot copies out overall health and awareness under the
// guard. Used by the HTTP read path so the lock is never held across
// response I/O.
func (s *Store) HealthSnapshot() (health, awareness float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return OverallHealth(s.topo), Awareness(s.topo)
}
