package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	domain "github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTenantRepo struct {
	byID   map[uuid.UUID]*domain.Tenant
	byCode map[string]*domain.Tenant
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byID:   make(map[uuid.UUID]*domain.Tenant),
		byCode: make(map[string]*domain.Tenant),
	}
}

func (r *fakeTenantRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return r.byID[id], nil
}

func (r *fakeTenantRepo) FindByCode(_ context.Context, code string) (*domain.Tenant, error) {
	return r.byCode[code], nil
}

func (r *fakeTenantRepo) Save(_ context.Context, t *domain.Tenant) error {
	r.byID[t.ID] = t
	r.byCode[t.Code] = t
	return nil
}

func (r *fakeTenantRepo) Update(_ context.Context, t *domain.Tenant) error {
	r.byID[t.ID] = t
	r.byCode[t.Code] = t
	return nil
}

func TestTenantService_RegisterTenant(t *testing.T) {
	svc := NewTenantService(newFakeTenantRepo(), zap.NewNop())

	tenant, err := svc.RegisterTenant(context.Background(), RegisterTenantInput{
		Code: "Casa-Pepe",
		Name: "Casa Pepe",
	})

	require.NoError(t, err)
	// New tenants always start on light/active.
	assert.Equal(t, domain.TierLight, tenant.Tier)
	assert.Equal(t, domain.SubscriptionActive, tenant.SubscriptionStatus)
	assert.Equal(t, "casa-pepe", tenant.Code)
}

func TestTenantService_RegisterTenant_DuplicateCode(t *testing.T) {
	svc := NewTenantService(newFakeTenantRepo(), zap.NewNop())

	_, err := svc.RegisterTenant(context.Background(), RegisterTenantInput{Code: "casa-pepe", Name: "Casa Pepe"})
	require.NoError(t, err)

	_, err = svc.RegisterTenant(context.Background(), RegisterTenantInput{Code: "casa-pepe", Name: "Other"})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestTenantService_GetTenant_NotFound(t *testing.T) {
	svc := NewTenantService(newFakeTenantRepo(), zap.NewNop())

	_, err := svc.GetTenant(context.Background(), uuid.New())

	assert.ErrorIs(t, err, shared.ErrTenantNotFound)
}

func TestTenantService_GetTenant_NormalizesLegacyRows(t *testing.T) {
	repo := newFakeTenantRepo()
	legacy := &domain.Tenant{BaseEntity: shared.NewBaseEntity(), Code: "legacy", Name: "Legacy"}
	require.NoError(t, repo.Save(context.Background(), legacy))
	svc := NewTenantService(repo, zap.NewNop())

	tenant, err := svc.GetTenant(context.Background(), legacy.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.TierLight, tenant.Tier)
	assert.Equal(t, domain.SubscriptionActive, tenant.SubscriptionStatus)
}

func TestTenantService_UpdateSubscription(t *testing.T) {
	repo := newFakeTenantRepo()
	svc := NewTenantService(repo, zap.NewNop())

	tenant, err := svc.RegisterTenant(context.Background(), RegisterTenantInput{Code: "casa-pepe", Name: "Casa Pepe"})
	require.NoError(t, err)

	updated, err := svc.UpdateSubscription(context.Background(), UpdateSubscriptionInput{
		TenantID: tenant.ID,
		Tier:     domain.TierPro,
		Status:   domain.SubscriptionTrial,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.TierPro, updated.Tier)
	assert.Equal(t, domain.SubscriptionTrial, updated.SubscriptionStatus)
}

func TestTenantService_UpdateSubscription_InvalidTier(t *testing.T) {
	repo := newFakeTenantRepo()
	svc := NewTenantService(repo, zap.NewNop())

	tenant, err := svc.RegisterTenant(context.Background(), RegisterTenantInput{Code: "casa-pepe", Name: "Casa Pepe"})
	require.NoError(t, err)

	_, err = svc.UpdateSubscription(context.Background(), UpdateSubscriptionInput{
		TenantID: tenant.ID,
		Tier:     domain.ProductTier("enterprise"),
		Status:   domain.SubscriptionActive,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TIER", domainErr.Code)
}
