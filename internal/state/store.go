package state

import "sync"

// Store owns the current State. Readers take a snapshot pointer; writers are
// serialised and the snapshot is swapped only when a transition succeeds.
type Store struct {
	mu      sync.RWMutex
	writeMu sync.Mutex
	current *State
}

func NewStore(initial *State) *Store {
	if initial == nil {
		initial = New(nil, nil, nil)
	}
	return &Store{current: initial}
}

// Snapshot returns the current State. It must be treated as read-only.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update applies fn to the current State. fn may perform side effects such as
// persisting the change; if it returns an error the State is left unchanged.
func (s *Store) Update(fn func(cur *State) (*State, error)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, err := fn(s.Snapshot())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}
