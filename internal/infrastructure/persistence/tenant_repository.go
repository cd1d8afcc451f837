package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// TenantRepository implements the identity.TenantRepository interface
type TenantRepository struct {
	db *gorm.DB
}

// NewTenantRepository creates a new tenant repository
func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// FindByID retrieves a tenant by its ID. Returns nil without error when
// the tenant does not exist.
func (r *TenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode retrieves a tenant by its unique code. Returns nil without
// error when the tenant does not exist.
func (r *TenantRepository) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists a new tenant
func (r *TenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing tenant
func (r *TenantRepository) Update(ctx context.Context, tenant *identity.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}
