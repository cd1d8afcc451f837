package policy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTenantRepo struct {
	tenants map[uuid.UUID]*identity.Tenant
	err     error
	calls   int
}

func (r *stubTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.Tenant, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.tenants[id], nil
}

func (r *stubTenantRepo) FindByCode(context.Context, string) (*identity.Tenant, error) {
	return nil, nil
}

func (r *stubTenantRepo) Save(context.Context, *identity.Tenant) error   { return nil }
func (r *stubTenantRepo) Update(context.Context, *identity.Tenant) error { return nil }

type stubMenuRepo struct {
	menu.Repository
	rows []menu.ItemWithOverrides
	err  error
}

func (r *stubMenuRepo) GetMenuWithOverrides(context.Context, uuid.UUID, *uuid.UUID) ([]menu.ItemWithOverrides, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows, nil
}

type mapCache struct {
	entries map[uuid.UUID]TenantSnapshot
	getErr  error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[uuid.UUID]TenantSnapshot)}
}

func (c *mapCache) Get(_ context.Context, id uuid.UUID) (TenantSnapshot, bool, error) {
	if c.getErr != nil {
		return TenantSnapshot{}, false, c.getErr
	}
	snapshot, ok := c.entries[id]
	return snapshot, ok, nil
}

func (c *mapCache) Set(_ context.Context, id uuid.UUID, snapshot TenantSnapshot, _ time.Duration) error {
	c.entries[id] = snapshot
	return nil
}

func (c *mapCache) Delete(_ context.Context, id uuid.UUID) error {
	delete(c.entries, id)
	return nil
}

func newTestService(t *testing.T, tenants *stubTenantRepo, menuRepo *stubMenuRepo, cfg ServiceConfig) *Service {
	t.Helper()
	limiter := ratelimit.NewLimiter(ratelimit.NewMemoryWindowStore(), zap.NewNop())
	return NewService(tenants, menuRepo, limiter, cfg)
}

func seedTenant(tier identity.ProductTier, status identity.SubscriptionStatus) (*stubTenantRepo, uuid.UUID) {
	tenant := &identity.Tenant{
		BaseEntity:         shared.NewBaseEntity(),
		Code:               "casa-pepe",
		Name:               "Casa Pepe",
		Tier:               tier,
		SubscriptionStatus: status,
	}
	repo := &stubTenantRepo{tenants: map[uuid.UUID]*identity.Tenant{tenant.ID: tenant}}
	return repo, tenant.ID
}

func TestService_Admit(t *testing.T) {
	tenants, tenantID := seedTenant(identity.TierLight, identity.SubscriptionActive)
	svc := newTestService(t, tenants, &stubMenuRepo{}, ServiceConfig{})

	decision, err := svc.Admit(context.Background(), tenantID, time.Now())

	require.NoError(t, err)
	assert.True(t, decision.Allowed)
	assert.Equal(t, ratelimit.QuotaLight, decision.Limit)
	assert.Equal(t, ratelimit.QuotaLight-1, decision.Remaining)
}

func TestService_Admit_UnknownTenant(t *testing.T) {
	svc := newTestService(t, &stubTenantRepo{tenants: map[uuid.UUID]*identity.Tenant{}}, &stubMenuRepo{}, ServiceConfig{})

	_, err := svc.Admit(context.Background(), uuid.New(), time.Now())

	assert.ErrorIs(t, err, shared.ErrTenantNotFound)
}

func TestService_Admit_DeniesOverQuota(t *testing.T) {
	tenants, tenantID := seedTenant(identity.TierLight, identity.SubscriptionActive)
	svc := newTestService(t, tenants, &stubMenuRepo{}, ServiceConfig{})
	now := time.Now()

	for i := int64(0); i < ratelimit.QuotaLight; i++ {
		decision, err := svc.Admit(context.Background(), tenantID, now)
		require.NoError(t, err)
		require.True(t, decision.Allowed)
	}

	decision, err := svc.Admit(context.Background(), tenantID, now)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, int64(0), decision.Remaining)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))
}

func TestService_CheckFeature(t *testing.T) {
	tests := []struct {
		name         string
		tier         identity.ProductTier
		status       identity.SubscriptionStatus
		feature      identity.FeatureKey
		wantAllowed  bool
		wantRequired identity.ProductTier
		wantReason   string
	}{
		{
			name:        "allowed feature",
			tier:        identity.TierPro,
			status:      identity.SubscriptionActive,
			feature:     identity.FeatureTableManagement,
			wantAllowed: true,
		},
		{
			name:         "light tenant needs pro for table management",
			tier:         identity.TierLight,
			status:       identity.SubscriptionActive,
			feature:      identity.FeatureTableManagement,
			wantAllowed:  false,
			wantRequired: identity.TierPro,
		},
		{
			name:        "expired subscription denies everything",
			tier:        identity.TierPro,
			status:      identity.SubscriptionExpired,
			feature:     identity.FeatureDigitalMenu,
			wantAllowed: false,
			wantReason:  "subscription inactive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenants, tenantID := seedTenant(tt.tier, tt.status)
			svc := newTestService(t, tenants, &stubMenuRepo{}, ServiceConfig{})

			decision, err := svc.CheckFeature(context.Background(), tenantID, tt.feature)

			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, decision.Allowed)
			assert.Equal(t, tt.tier, decision.CurrentTier)
			assert.Equal(t, tt.wantRequired, decision.RequiredTier)
			if tt.wantReason != "" {
				assert.Equal(t, tt.wantReason, decision.Reason)
			}
		})
	}
}

func TestService_CheckFeature_StorageErrorPropagates(t *testing.T) {
	storageErr := errors.New("connection reset")
	svc := newTestService(t, &stubTenantRepo{err: storageErr}, &stubMenuRepo{}, ServiceConfig{})

	_, err := svc.CheckFeature(context.Background(), uuid.New(), identity.FeatureDigitalMenu)

	// Feature checks never fail open.
	assert.ErrorIs(t, err, storageErr)
}

func TestService_ResolveMenuProjection(t *testing.T) {
	tenants, tenantID := seedTenant(identity.TierPro, identity.SubscriptionActive)

	falseVal := false
	overridePrice := decimal.RequireFromString("12.50")
	item, err := menu.NewMenuItem(tenantID, "Tacos al Pastor", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	group, err := menu.NewVariantGroupTemplate("Size", 0)
	require.NoError(t, err)
	option, err := menu.NewVariantOptionTemplate(group.ID, "Large", decimal.RequireFromString("2.00"))
	require.NoError(t, err)

	menuRepo := &stubMenuRepo{rows: []menu.ItemWithOverrides{
		{
			Item: *item,
			Location: &menu.LocationOverride{
				PriceOverride:  &overridePrice,
				ActiveOverride: &falseVal,
			},
			Groups: []menu.GroupWithOptions{
				{
					Template: *group,
					Link:     menu.ItemVariantGroupLink{ItemID: item.ID, GroupTemplateID: group.ID},
					Options: []menu.OptionWithOverride{
						{Template: *option},
					},
				},
			},
		},
	}}

	svc := newTestService(t, tenants, menuRepo, ServiceConfig{})

	entries, err := svc.ResolveMenuProjection(context.Background(), tenantID, nil)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, item.ID, entry.ItemID)
	assert.True(t, entry.EffectivePrice.Equal(overridePrice))
	assert.False(t, entry.EffectiveActive)

	require.Len(t, entry.Variants, 1)
	assert.True(t, entry.Variants[0].EffectiveActive)
	require.Len(t, entry.Variants[0].Options, 1)
	assert.True(t, entry.Variants[0].Options[0].EffectivePriceDelta.Equal(decimal.RequireFromString("2.00")))
}

func TestService_ResolveMenuProjection_UnknownTenant(t *testing.T) {
	svc := newTestService(t, &stubTenantRepo{tenants: map[uuid.UUID]*identity.Tenant{}}, &stubMenuRepo{}, ServiceConfig{})

	_, err := svc.ResolveMenuProjection(context.Background(), uuid.New(), nil)

	assert.ErrorIs(t, err, shared.ErrTenantNotFound)
}

func TestService_SnapshotCache(t *testing.T) {
	tenants, tenantID := seedTenant(identity.TierPlus, identity.SubscriptionActive)
	cache := newMapCache()
	svc := newTestService(t, tenants, &stubMenuRepo{}, ServiceConfig{Cache: cache})

	_, err := svc.CheckFeature(context.Background(), tenantID, identity.FeatureOrderManagement)
	require.NoError(t, err)
	_, err = svc.CheckFeature(context.Background(), tenantID, identity.FeatureOrderManagement)
	require.NoError(t, err)

	// The second check is served from the cache.
	assert.Equal(t, 1, tenants.calls)

	svc.InvalidateTenant(context.Background(), tenantID)
	_, err = svc.CheckFeature(context.Background(), tenantID, identity.FeatureOrderManagement)
	require.NoError(t, err)
	assert.Equal(t, 2, tenants.calls)
}

func TestService_SnapshotCache_ReadFailureFallsThrough(t *testing.T) {
	tenants, tenantID := seedTenant(identity.TierPlus, identity.SubscriptionActive)
	cache := newMapCache()
	cache.getErr = errors.New("redis down")
	svc := newTestService(t, tenants, &stubMenuRepo{}, ServiceConfig{Cache: cache})

	decision, err := svc.CheckFeature(context.Background(), tenantID, identity.FeatureOrderManagement)

	// A broken cache degrades to repository reads, never to an error.
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}
