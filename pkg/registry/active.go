package registry

import (
	"sync"

	"deltaml/delta/pkg/model"
)

// ActiveSlot is the single shared cell holding the model that serves
// inference. One writer (activation) and many concurrent readers
// synchronize on a short-held lock; Snapshot copies the value out so the
// lock is released before any routing or engine work begins.
type ActiveSlot struct {
	mu      sync.RWMutex
	current model.Version
	set     bool
}

// NewActiveSlot returns an empty slot.
func NewActiveSlot() *ActiveSlot {
	return &ActiveSlot{}
}

// Activate replaces the slot's referent. Subsequent Snapshot calls observe
// the new model; in-flight calls keep the snapshot they already took.
func (s *ActiveSlot) Activate(v model.Version) {
	stored := v.Clone()
	s.mu.Lock()
	s.current = stored
	s.set = true
	s.mu.Unlock()
}

// Snapshot returns a copy of the active model. The second return is false
// when no model has been activated yet.
func (s *ActiveSlot) Snapshot() (model.Version, bool) {
	s.mu.RLock()
	v, ok := s.current, s.set
	s.mu.RUnlock()
	if !ok {
		return model.Version{}, false
	}
	return v.Clone(), true
}
