package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type windowKey struct {
	tenantID    uuid.UUID
	windowStart int64 // unix seconds
}

// MemoryWindowStore is an in-process WindowStore. It is used by tests and
// as a fallback when the server runs without a database; counters do not
// survive restarts and are not shared across instances.
type MemoryWindowStore struct {
	mu      sync.Mutex
	windows map[windowKey]int64
}

// NewMemoryWindowStore creates an empty in-memory window store
func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		windows: make(map[windowKey]int64),
	}
}

// IncrementAndGet implements WindowStore. The mutex makes the
// insert-or-increment atomic under concurrent callers.
func (s *MemoryWindowStore) IncrementAndGet(_ context.Context, tenantID uuid.UUID, windowStart time.Time) (int64, error) {
	key := windowKey{tenantID: tenantID, windowStart: windowStart.Unix()}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.windows[key]++
	return s.windows[key], nil
}

// Count returns the current counter for a window without incrementing it
func (s *MemoryWindowStore) Count(tenantID uuid.UUID, windowStart time.Time) int64 {
	key := windowKey{tenantID: tenantID, windowStart: windowStart.Unix()}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.windows[key]
}
