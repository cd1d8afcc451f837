package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// TenantModelBase provides common persistence fields for tenant-scoped models
type TenantModelBase struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// ToDomain converts TenantModelBase to domain TenantEntity
func (m *TenantModelBase) ToDomain() shared.TenantEntity {
	return shared.TenantEntity{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
	}
}

// FromDomainTenantEntity populates TenantModelBase from domain TenantEntity
func (m *TenantModelBase) FromDomainTenantEntity(e shared.TenantEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.TenantID = e.TenantID
}

// All returns every model registered for schema migration
func All() []interface{} {
	return []interface{}{
		&TenantModel{},
		&MenuItemModel{},
		&MenuItemLocationModel{},
		&VariantGroupTemplateModel{},
		&VariantOptionTemplateModel{},
		&ItemVariantGroupModel{},
		&ItemVariantOptionModel{},
		&RateWindowModel{},
	}
}
