package testutil

import (
	"sync"

	"github.com/google/uuid"
)

// SequenceUUIDs returns predictable UUIDs for golden output.
//
// The n-th call (starting at 1) yields 00000000-0000-4000-8000-<n as 12 hex digits>,
// which is a syntactically valid version 4, RFC 4122 variant UUID.
//
// Thread-safety: SequenceUUIDs is safe for concurrent use via internal mutex.
type SequenceUUIDs struct {
	mu sync.Mutex
	n  uint64
}

// NewSequenceUUIDs creates a sequence whose first UUID ends in ...000000000001.
func NewSequenceUUIDs() *SequenceUUIDs {
	return &SequenceUUIDs{}
}

// New returns the next UUID in the sequence.
func (s *SequenceUUIDs) New() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++

	var id uuid.UUID
	id[6] = 0x40 // version 4
	id[8] = 0x80 // RFC 4122 variant
	v := s.n
	for i := 15; i >= 10; i-- {
		id[i] = byte(v)
		v >>= 8
	}
	return id
}
