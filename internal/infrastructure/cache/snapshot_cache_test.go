package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnapshotCache_RoundTrip(t *testing.T) {
	cache := NewMemorySnapshotCache()
	tenantID := uuid.New()
	snapshot := policy.TenantSnapshot{
		Tier:   identity.TierPlus,
		Status: identity.SubscriptionActive,
	}

	_, found, err := cache.Get(context.Background(), tenantID)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, cache.Set(context.Background(), tenantID, snapshot, time.Minute))

	got, found, err := cache.Get(context.Background(), tenantID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, snapshot, got)
}

func TestMemorySnapshotCache_Expiry(t *testing.T) {
	cache := NewMemorySnapshotCache()
	tenantID := uuid.New()

	require.NoError(t, cache.Set(context.Background(), tenantID, policy.TenantSnapshot{
		Tier:   identity.TierLight,
		Status: identity.SubscriptionActive,
	}, -time.Second))

	_, found, err := cache.Get(context.Background(), tenantID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemorySnapshotCache_Delete(t *testing.T) {
	cache := NewMemorySnapshotCache()
	tenantID := uuid.New()

	require.NoError(t, cache.Set(context.Background(), tenantID, policy.TenantSnapshot{
		Tier:   identity.TierPro,
		Status: identity.SubscriptionTrial,
	}, time.Minute))
	require.NoError(t, cache.Delete(context.Background(), tenantID))

	_, found, err := cache.Get(context.Background(), tenantID)
	require.NoError(t, err)
	assert.False(t, found)
}
