package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/shared"
)

// ProductTier represents the subscription tier of a tenant
type ProductTier string

const (
	TierLight ProductTier = "light"
	TierPlus  ProductTier = "plus"
	TierPro   ProductTier = "pro"
)

// TiersAscending lists all tiers from lowest to highest. Order matters:
// minimum-tier lookups scan this slice front to back.
var TiersAscending = []ProductTier{TierLight, TierPlus, TierPro}

// IsValid reports whether the tier is one of the known tiers
func (t ProductTier) IsValid() bool {
	switch t {
	case TierLight, TierPlus, TierPro:
		return true
	}
	return false
}

// DisplayName returns a human-readable tier name
func (t ProductTier) DisplayName() string {
	switch t {
	case TierLight:
		return "Light"
	case TierPlus:
		return "Plus"
	case TierPro:
		return "Pro"
	default:
		return string(t)
	}
}

// SubscriptionStatus represents the billing state of a tenant's subscription
type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// IsSubscribed reports whether the status grants access to the product.
// Trial tenants are treated the same as active ones.
func (s SubscriptionStatus) IsSubscribed() bool {
	return s == SubscriptionActive || s == SubscriptionTrial
}

// Tenant represents a restaurant account in the multi-tenant system.
// Tier and status always carry a value: unset fields normalize to
// light/active so downstream policy checks never see an empty tier.
type Tenant struct {
	shared.BaseEntity
	Code                 string
	Name                 string
	Tier                 ProductTier
	SubscriptionStatus   SubscriptionStatus
	SubscriptionStartsAt *time.Time
	SubscriptionEndsAt   *time.Time
	ContactEmail         string
	WhatsAppNumber       string
}

// NewTenant creates a new tenant with the default light/active subscription
func NewTenant(code, name string) (*Tenant, error) {
	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_CODE", "Tenant code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name is required")
	}

	return &Tenant{
		BaseEntity:         shared.NewBaseEntity(),
		Code:               code,
		Name:               name,
		Tier:               TierLight,
		SubscriptionStatus: SubscriptionActive,
	}, nil
}

// Normalize fills in defaults for tenants persisted before the tier
// columns existed
func (t *Tenant) Normalize() {
	if t.Tier == "" {
		t.Tier = TierLight
	}
	if t.SubscriptionStatus == "" {
		t.SubscriptionStatus = SubscriptionActive
	}
}

// ChangeSubscription updates the tier and status together
func (t *Tenant) ChangeSubscription(tier ProductTier, status SubscriptionStatus, startsAt, endsAt *time.Time) error {
	if !tier.IsValid() {
		return shared.NewDomainError("INVALID_TIER", "Unknown product tier: "+string(tier))
	}
	switch status {
	case SubscriptionActive, SubscriptionTrial, SubscriptionInactive, SubscriptionExpired:
	default:
		return shared.NewDomainError("INVALID_SUBSCRIPTION_STATUS", "Unknown subscription status: "+string(status))
	}

	t.Tier = tier
	t.SubscriptionStatus = status
	t.SubscriptionStartsAt = startsAt
	t.SubscriptionEndsAt = endsAt
	t.Touch()
	return nil
}

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID. Returns nil without error when
	// the tenant does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByCode finds a tenant by its unique code
	FindByCode(ctx context.Context, code string) (*Tenant, error)

	// Save persists a new tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Update persists changes to an existing tenant
	Update(ctx context.Context, tenant *Tenant) error
}
