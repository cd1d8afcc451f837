package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	domain "github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TenantService handles tenant provisioning and subscription updates.
// Authentication and session issuance live in an external collaborator;
// this service only manages the tenant record the policy engine reads.
type TenantService struct {
	repo   domain.TenantRepository
	logger *zap.Logger
}

// NewTenantService creates a tenant service
func NewTenantService(repo domain.TenantRepository, logger *zap.Logger) *TenantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TenantService{repo: repo, logger: logger}
}

// RegisterTenantInput contains input for registering a tenant
type RegisterTenantInput struct {
	Code           string
	Name           string
	ContactEmail   string
	WhatsAppNumber string
}

// RegisterTenant creates a new tenant on the light tier with an active
// subscription, the defaults every new restaurant starts with.
func (s *TenantService) RegisterTenant(ctx context.Context, input RegisterTenantInput) (*domain.Tenant, error) {
	existing, err := s.repo.FindByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, shared.ErrAlreadyExists
	}

	tenant, err := domain.NewTenant(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	tenant.ContactEmail = input.ContactEmail
	tenant.WhatsAppNumber = input.WhatsAppNumber

	if err := s.repo.Save(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant registered",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code),
	)
	return tenant, nil
}

// GetTenant returns a tenant by ID, normalized so tier and status always
// carry a value.
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.ErrTenantNotFound
	}
	tenant.Normalize()
	return tenant, nil
}

// UpdateSubscriptionInput contains input for a subscription change
type UpdateSubscriptionInput struct {
	TenantID uuid.UUID
	Tier     domain.ProductTier
	Status   domain.SubscriptionStatus
	StartsAt *time.Time
	EndsAt   *time.Time
}

// UpdateSubscription changes a tenant's tier and subscription status.
// Callers holding a policy snapshot cache must invalidate the tenant
// afterwards.
func (s *TenantService) UpdateSubscription(ctx context.Context, input UpdateSubscriptionInput) (*domain.Tenant, error) {
	tenant, err := s.GetTenant(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	if err := tenant.ChangeSubscription(input.Tier, input.Status, input.StartsAt, input.EndsAt); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.logger.Info("tenant subscription updated",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("tier", string(tenant.Tier)),
		zap.String("status", string(tenant.SubscriptionStatus)),
	)
	return tenant, nil
}
