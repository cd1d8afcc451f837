package policy

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
	"github.com/mesafacil/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantSnapshot is the slice of tenant state the policy engine needs per
// request. It is small enough to cache aggressively.
type TenantSnapshot struct {
	Tier   identity.ProductTier        `json:"tier"`
	Status identity.SubscriptionStatus `json:"status"`
}

// SnapshotCache caches tenant snapshots between requests. Implementations
// live in infrastructure/cache; a nil cache disables caching entirely.
type SnapshotCache interface {
	// Get returns the cached snapshot and whether one was found
	Get(ctx context.Context, tenantID uuid.UUID) (TenantSnapshot, bool, error)
	// Set stores a snapshot with the given TTL
	Set(ctx context.Context, tenantID uuid.UUID, snapshot TenantSnapshot, ttl time.Duration) error
	// Delete evicts a tenant's snapshot, e.g. after a subscription change
	Delete(ctx context.Context, tenantID uuid.UUID) error
}

// ServiceConfig holds optional collaborators for the policy service
type ServiceConfig struct {
	Cache    SnapshotCache
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// Service is the single entry point the HTTP layer calls for policy
// decisions: request admission, feature gating and menu projection.
type Service struct {
	tenants  identity.TenantRepository
	menuRepo menu.Repository
	limiter  *ratelimit.Limiter
	cache    SnapshotCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewService creates the policy facade
func NewService(tenants identity.TenantRepository, menuRepo menu.Repository, limiter *ratelimit.Limiter, cfg ServiceConfig) *Service {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Service{
		tenants:  tenants,
		menuRepo: menuRepo,
		limiter:  limiter,
		cache:    cfg.Cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Admit counts one request against the tenant's hourly quota and decides
// whether to serve it. Unknown tenants are surfaced as an error; a
// failing window store is not (the limiter fails open).
func (s *Service) Admit(ctx context.Context, tenantID uuid.UUID, now time.Time) (ratelimit.Decision, error) {
	snapshot, err := s.tenantSnapshot(ctx, tenantID)
	if err != nil {
		return ratelimit.Decision{}, err
	}
	return s.limiter.Admit(ctx, tenantID, snapshot.Tier, now), nil
}

// CheckFeature decides whether the tenant's subscription permits a
// feature. Storage errors propagate: silently allowing a gated feature is
// worse than rejecting the request.
func (s *Service) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature identity.FeatureKey) (identity.AccessDecision, error) {
	snapshot, err := s.tenantSnapshot(ctx, tenantID)
	if err != nil {
		return identity.AccessDecision{}, err
	}
	tenant := &identity.Tenant{
		Tier:               snapshot.Tier,
		SubscriptionStatus: snapshot.Status,
	}
	return identity.CheckAccess(tenant, feature), nil
}

// ResolveMenuProjection returns the tenant's full menu with every item,
// variant group and option carrying its effective price and visibility
// for the given location. Callers render or filter on EffectiveActive.
func (s *Service) ResolveMenuProjection(ctx context.Context, tenantID uuid.UUID, locationID *uuid.UUID) ([]MenuEntry, error) {
	if _, err := s.tenantSnapshot(ctx, tenantID); err != nil {
		return nil, err
	}

	rows, err := s.menuRepo.GetMenuWithOverrides(ctx, tenantID, locationID)
	if err != nil {
		return nil, err
	}

	entries := make([]MenuEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, projectItem(&rows[i]))
	}
	return entries, nil
}

// InvalidateTenant evicts the tenant's cached snapshot. Called after
// subscription changes so tier updates take effect immediately.
func (s *Service) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tenantID); err != nil {
		s.logger.Warn("failed to evict tenant snapshot",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}

// tenantSnapshot loads the tenant's tier and status, consulting the cache
// first. Cache failures are logged and bypassed; a missing tenant is
// always an error.
func (s *Service) tenantSnapshot(ctx context.Context, tenantID uuid.UUID) (TenantSnapshot, error) {
	if s.cache != nil {
		snapshot, found, err := s.cache.Get(ctx, tenantID)
		if err != nil {
			s.logger.Warn("snapshot cache read failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		} else if found {
			return snapshot, nil
		}
	}

	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return TenantSnapshot{}, err
	}
	if tenant == nil {
		return TenantSnapshot{}, shared.ErrTenantNotFound
	}
	tenant.Normalize()

	snapshot := TenantSnapshot{Tier: tenant.Tier, Status: tenant.SubscriptionStatus}
	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, snapshot, s.cacheTTL); err != nil {
			s.logger.Warn("snapshot cache write failed",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err),
			)
		}
	}
	return snapshot, nil
}

func projectItem(row *menu.ItemWithOverrides) MenuEntry {
	resolved := menu.ResolveItem(&row.Item, row.Location)

	entry := MenuEntry{
		ItemID:          row.Item.ID,
		Name:            row.Item.Name,
		Description:     row.Item.Description,
		EffectivePrice:  resolved.EffectivePrice,
		EffectiveActive: resolved.EffectiveActive,
		Variants:        make([]VariantGroupView, 0, len(row.Groups)),
	}

	for i := range row.Groups {
		group := &row.Groups[i]
		view := VariantGroupView{
			GroupID:         group.Template.ID,
			Name:            group.Template.Name,
			Required:        group.Template.Required,
			MaxSelect:       group.Template.MaxSelect,
			EffectiveActive: menu.ResolveGroupActive(&group.Template, &group.Link),
			Options:         make([]VariantOptionView, 0, len(group.Options)),
		}
		for j := range group.Options {
			option := &group.Options[j]
			resolvedOption := menu.ResolveOption(&option.Template, option.Override)
			view.Options = append(view.Options, VariantOptionView{
				OptionID:            option.Template.ID,
				Name:                option.Template.Name,
				EffectivePriceDelta: resolvedOption.EffectivePriceDelta,
				EffectiveActive:     resolvedOption.EffectiveActive,
			})
		}
		entry.Variants = append(entry.Variants, view)
	}
	return entry
}
