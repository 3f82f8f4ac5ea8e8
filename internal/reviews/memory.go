package reviews

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL bounds how long a suspended workflow waits for feedback.
const DefaultTTL = 24 * time.Hour

// MemoryStore is an in-process Store. Suitable for single-instance
// deployments; records do not survive a restart. Expired records are
// evicted lazily on access and swept on save.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*PendingRecord
	ttl     time.Duration
}

// NewMemoryStore creates a MemoryStore. A non-positive ttl falls back to
// DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		records: make(map[uuid.UUID]*PendingRecord),
		ttl:     ttl,
	}
}

// Save stores the record, stamping CreatedAt and ExpiresAt, and sweeps
// any records past their expiry.
func (s *MemoryStore) Save(_ context.Context, record *PendingRecord) error {
	now := time.Now()
	record.CreatedAt = now
	record.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, existing := range s.records {
		if existing.Expired(now) {
			delete(s.records, id)
		}
	}

	s.records[record.ID] = record
	return nil
}

// Load returns the record for id. An expired record is evicted and
// reported as ErrExpired.
func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (*PendingRecord, error) {
	s.mu.RLock()
	record, ok := s.records[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}

	if record.Expired(time.Now()) {
		s.mu.Lock()
		delete(s.records, id)
		s.mu.Unlock()
		return nil, ErrExpired
	}

	return record, nil
}

// Delete removes the record for id. Missing records are not an error.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}
