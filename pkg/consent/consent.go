package consent

import (
	"context"
	"sync"
)

// Store is the consent capability checked before routing. Implementations
// must be safe for concurrent use.
//
// The boolean is the consent answer; the error reports an infrastructure
// failure only (store unreachable, file unreadable), never a denial.
type Store interface {
	IsGranted(ctx context.Context, purposeID, subjectID string) (bool, error)
}

// AllowAll grants every (purpose, subject) pair. This is the default store
// for deployments that handle consent upstream.
type AllowAll struct{}

// IsGranted always returns true.
func (AllowAll) IsGranted(ctx context.Context, purposeID, subjectID string) (bool, error) {
	return true, nil
}

// grantKey identifies one consent rule. The wildcard "*" matches any value
// in either position.
type grantKey struct {
	purpose string
	subject string
}

// StaticStore is an in-memory consent store with explicit grants and a
// configurable default answer.
type StaticStore struct {
	mu           sync.RWMutex
	grants       map[grantKey]bool
	defaultAllow bool
}

// NewStaticStore returns a store whose answer for unknown pairs is
// defaultAllow.
func NewStaticStore(defaultAllow bool) *StaticStore {
	return &StaticStore{
		grants:       make(map[grantKey]bool),
		defaultAllow: defaultAllow,
	}
}

// Set records an explicit answer for a (purpose, subject) pair. Either
// position may be the wildcard "*".
func (s *StaticStore) Set(purposeID, subjectID string, granted bool) {
	s.mu.Lock()
	s.grants[grantKey{purpose: purposeID, subject: subjectID}] = granted
	s.mu.Unlock()
}

// IsGranted answers from the most specific matching rule: exact pair, then
// purpose wildcard, then subject wildcard, then the default.
func (s *StaticStore) IsGranted(ctx context.Context, purposeID, subjectID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(purposeID, subjectID), nil
}

func (s *StaticStore) lookupLocked(purposeID, subjectID string) bool {
	for _, key := range []grantKey{
		{purpose: purposeID, subject: subjectID},
		{purpose: purposeID, subject: "*"},
		{purpose: "*", subject: subjectID},
	} {
		if granted, ok := s.grants[key]; ok {
			return granted
		}
	}
	return s.defaultAllow
}
