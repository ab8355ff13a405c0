// Package authority holds the administrator identity set. Administrative
// transitions (forum init/close, deletions, report resolution) are gated on
// membership, checked through the Authority capability rather than literal
// comparison against a hard-coded list.
package authority

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Authority answers whether an identity may perform admin transitions.
type Authority interface {
	IsAdmin(id uuid.UUID) bool
}

// Set is an updatable admin allow-list. The zero value is empty and denies
// everyone.
type Set struct {
	mu      sync.RWMutex
	members map[uuid.UUID]struct{}
}

// NewSet builds a Set from a comma-separated list of user UUIDs, the format
// of the ADMIN_USER_IDS environment variable. Entries that do not parse are
// skipped.
func NewSet(csv string) *Set {
	s := &Set{members: make(map[uuid.UUID]struct{})}
	for _, part := range strings.Split(csv, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if id, err := uuid.Parse(part); err == nil {
			s.members[id] = struct{}{}
		}
	}
	return s
}

func (s *Set) IsAdmin(id uuid.UUID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.members[id]
	return ok
}

// Add grants admin rights to an identity.
func (s *Set) Add(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.members == nil {
		s.members = make(map[uuid.UUID]struct{})
	}
	s.members[id] = struct{}{}
}

// Remove revokes admin rights from an identity.
func (s *Set) Remove(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members, id)
}

// Members returns a snapshot of the current admin identities.
func (s *Set) Members() []uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(s.members))
	for id := range s.members {
		out = append(out, id)
	}
	return out
}
