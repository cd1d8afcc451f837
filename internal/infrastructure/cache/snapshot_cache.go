package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/mesafacil/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// NewSnapshotCache builds the tenant snapshot cache from configuration:
// redis-backed when redis is enabled, in-memory otherwise.
func NewSnapshotCache(cfg config.RedisConfig) policy.SnapshotCache {
	if !cfg.Enabled {
		return NewMemorySnapshotCache()
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewRedisSnapshotCache(client)
}

type memoryEntry struct {
	snapshot  policy.TenantSnapshot
	expiresAt time.Time
}

// MemorySnapshotCache is an in-process snapshot cache with per-entry TTL.
// Expired entries are evicted lazily on read.
type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
}

// NewMemorySnapshotCache creates an empty in-memory snapshot cache
func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{
		entries: make(map[uuid.UUID]memoryEntry),
	}
}

// Get implements policy.SnapshotCache
func (c *MemorySnapshotCache) Get(_ context.Context, tenantID uuid.UUID) (policy.TenantSnapshot, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[tenantID]
	c.mu.RUnlock()

	if !ok {
		return policy.TenantSnapshot{}, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, tenantID)
		c.mu.Unlock()
		return policy.TenantSnapshot{}, false, nil
	}
	return entry.snapshot, true, nil
}

// Set implements policy.SnapshotCache
func (c *MemorySnapshotCache) Set(_ context.Context, tenantID uuid.UUID, snapshot policy.TenantSnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[tenantID] = memoryEntry{
		snapshot:  snapshot,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Delete implements policy.SnapshotCache
func (c *MemorySnapshotCache) Delete(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, tenantID)
	return nil
}
