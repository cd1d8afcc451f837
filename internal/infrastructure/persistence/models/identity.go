package models

import (
	"time"

	"github.com/mesafacil/backend/internal/domain/identity"
)

// TenantModel is the GORM model for tenants
type TenantModel struct {
	BaseModel
	Code                 string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                 string     `gorm:"type:varchar(255);not null"`
	Tier                 string     `gorm:"type:varchar(20);not null;default:'light'"`
	SubscriptionStatus   string     `gorm:"type:varchar(20);not null;default:'active'"`
	SubscriptionStartsAt *time.Time
	SubscriptionEndsAt   *time.Time
	ContactEmail         string `gorm:"type:varchar(255)"`
	WhatsAppNumber       string `gorm:"type:varchar(30)"`
}

// TableName returns the table name for the model
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the model to a domain entity
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseEntity:           m.BaseModel.ToDomain(),
		Code:                 m.Code,
		Name:                 m.Name,
		Tier:                 identity.ProductTier(m.Tier),
		SubscriptionStatus:   identity.SubscriptionStatus(m.SubscriptionStatus),
		SubscriptionStartsAt: m.SubscriptionStartsAt,
		SubscriptionEndsAt:   m.SubscriptionEndsAt,
		ContactEmail:         m.ContactEmail,
		WhatsAppNumber:       m.WhatsAppNumber,
	}
}

// TenantModelFromDomain creates a model from a domain entity
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{
		Code:                 t.Code,
		Name:                 t.Name,
		Tier:                 string(t.Tier),
		SubscriptionStatus:   string(t.SubscriptionStatus),
		SubscriptionStartsAt: t.SubscriptionStartsAt,
		SubscriptionEndsAt:   t.SubscriptionEndsAt,
		ContactEmail:         t.ContactEmail,
		WhatsAppNumber:       t.WhatsAppNumber,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}
