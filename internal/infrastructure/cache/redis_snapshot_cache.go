package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "policy:snapshot:"

// RedisSnapshotCache stores tenant snapshots in Redis so all server
// instances share one view of a tenant's tier and status.
type RedisSnapshotCache struct {
	client *redis.Client
}

// NewRedisSnapshotCache creates a redis-backed snapshot cache
func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func snapshotKey(tenantID uuid.UUID) string {
	return snapshotKeyPrefix + tenantID.String()
}

// Get implements policy.SnapshotCache
func (c *RedisSnapshotCache) Get(ctx context.Context, tenantID uuid.UUID) (policy.TenantSnapshot, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey(tenantID)).Bytes()
	if err == redis.Nil {
		return policy.TenantSnapshot{}, false, nil
	}
	if err != nil {
		return policy.TenantSnapshot{}, false, err
	}

	var snapshot policy.TenantSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return policy.TenantSnapshot{}, false, err
	}
	return snapshot, true, nil
}

// Set implements policy.SnapshotCache
func (c *RedisSnapshotCache) Set(ctx context.Context, tenantID uuid.UUID, snapshot policy.TenantSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, snapshotKey(tenantID), data, ttl).Err()
}

// Delete implements policy.SnapshotCache
func (c *RedisSnapshotCache) Delete(ctx context.Context, tenantID uuid.UUID) error {
	return c.client.Del(ctx, snapshotKey(tenantID)).Err()
}
