package models

import (
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/menu"
	"github.com/shopspring/decimal"
)

// MenuItemModel is the GORM model for menu items
type MenuItemModel struct {
	TenantModelBase
	CategoryID   *uuid.UUID      `gorm:"type:uuid;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Description  string          `gorm:"type:text"`
	BasePrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ActiveGlobal bool            `gorm:"not null;default:true"`
	SortOrder    int             `gorm:"not null;default:0"`
}

// TableName returns the table name for the model
func (MenuItemModel) TableName() string {
	return "menu_items"
}

// ToDomain converts the model to a domain entity
func (m *MenuItemModel) ToDomain() *menu.MenuItem {
	return &menu.MenuItem{
		TenantEntity: m.TenantModelBase.ToDomain(),
		CategoryID:   m.CategoryID,
		Name:         m.Name,
		Description:  m.Description,
		BasePrice:    m.BasePrice,
		ActiveGlobal: m.ActiveGlobal,
		SortOrder:    m.SortOrder,
	}
}

// MenuItemModelFromDomain creates a model from a domain entity
func MenuItemModelFromDomain(i *menu.MenuItem) *MenuItemModel {
	m := &MenuItemModel{
		CategoryID:   i.CategoryID,
		Name:         i.Name,
		Description:  i.Description,
		BasePrice:    i.BasePrice,
		ActiveGlobal: i.ActiveGlobal,
		SortOrder:    i.SortOrder,
	}
	m.FromDomainTenantEntity(i.TenantEntity)
	return m
}

// MenuItemLocationModel is the GORM model for per-location item overrides.
// At most one row exists per (tenant, item, location).
type MenuItemLocationModel struct {
	BaseModel
	TenantID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_location"`
	ItemID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_location"`
	LocationID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_location"`
	PriceOverride  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	ActiveOverride *bool
}

// TableName returns the table name for the model
func (MenuItemLocationModel) TableName() string {
	return "menu_item_locations"
}

// ToDomain converts the model to a domain value
func (m *MenuItemLocationModel) ToDomain() *menu.LocationOverride {
	return &menu.LocationOverride{
		TenantID:       m.TenantID,
		ItemID:         m.ItemID,
		LocationID:     m.LocationID,
		PriceOverride:  m.PriceOverride,
		ActiveOverride: m.ActiveOverride,
	}
}

// VariantGroupTemplateModel is the GORM model for variant group templates
type VariantGroupTemplateModel struct {
	BaseModel
	Name      string `gorm:"type:varchar(255);not null"`
	Position  int    `gorm:"not null;default:0"`
	Required  bool   `gorm:"not null;default:false"`
	MaxSelect int    `gorm:"not null;default:1"`
	Active    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for the model
func (VariantGroupTemplateModel) TableName() string {
	return "variant_group_templates"
}

// ToDomain converts the model to a domain entity
func (m *VariantGroupTemplateModel) ToDomain() *menu.VariantGroupTemplate {
	return &menu.VariantGroupTemplate{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Position:   m.Position,
		Required:   m.Required,
		MaxSelect:  m.MaxSelect,
		Active:     m.Active,
	}
}

// VariantGroupTemplateModelFromDomain creates a model from a domain entity
func VariantGroupTemplateModelFromDomain(t *menu.VariantGroupTemplate) *VariantGroupTemplateModel {
	m := &VariantGroupTemplateModel{
		Name:      t.Name,
		Position:  t.Position,
		Required:  t.Required,
		MaxSelect: t.MaxSelect,
		Active:    t.Active,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// VariantOptionTemplateModel is the GORM model for variant option templates
type VariantOptionTemplateModel struct {
	BaseModel
	GroupTemplateID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Position        int             `gorm:"not null;default:0"`
	PriceDelta      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Active          bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for the model
func (VariantOptionTemplateModel) TableName() string {
	return "variant_option_templates"
}

// ToDomain converts the model to a domain entity
func (m *VariantOptionTemplateModel) ToDomain() *menu.VariantOptionTemplate {
	return &menu.VariantOptionTemplate{
		BaseEntity:      m.BaseModel.ToDomain(),
		GroupTemplateID: m.GroupTemplateID,
		Name:            m.Name,
		Position:        m.Position,
		PriceDelta:      m.PriceDelta,
		Active:          m.Active,
	}
}

// VariantOptionTemplateModelFromDomain creates a model from a domain entity
func VariantOptionTemplateModelFromDomain(t *menu.VariantOptionTemplate) *VariantOptionTemplateModel {
	m := &VariantOptionTemplateModel{
		GroupTemplateID: t.GroupTemplateID,
		Name:            t.Name,
		Position:        t.Position,
		PriceDelta:      t.PriceDelta,
		Active:          t.Active,
	}
	m.FromDomainBaseEntity(t.BaseEntity)
	return m
}

// ItemVariantGroupModel is the GORM model for item-to-group attachments.
// At most one row exists per (tenant, item, group template).
type ItemVariantGroupModel struct {
	BaseModel
	TenantID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_group"`
	ItemID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_group"`
	GroupTemplateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_item_group"`
	ActiveOverride  *bool
}

// TableName returns the table name for the model
func (ItemVariantGroupModel) TableName() string {
	return "item_variant_groups"
}

// ToDomain converts the model to a domain value
func (m *ItemVariantGroupModel) ToDomain() menu.ItemVariantGroupLink {
	return menu.ItemVariantGroupLink{
		TenantID:        m.TenantID,
		ItemID:          m.ItemID,
		GroupTemplateID: m.GroupTemplateID,
		ActiveOverride:  m.ActiveOverride,
	}
}

// ItemVariantOptionModel is the GORM model for per-item option overrides.
// At most one row exists per (tenant, item, option template).
type ItemVariantOptionModel struct {
	BaseModel
	TenantID           uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_option"`
	ItemID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_option"`
	GroupTemplateID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	OptionTemplateID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_item_option"`
	ActiveOverride     *bool
	PriceDeltaOverride *decimal.Decimal `gorm:"type:decimal(18,4)"`
}

// TableName returns the table name for the model
func (ItemVariantOptionModel) TableName() string {
	return "item_variant_options"
}

// ToDomain converts the model to a domain value
func (m *ItemVariantOptionModel) ToDomain() *menu.ItemVariantOptionOverride {
	return &menu.ItemVariantOptionOverride{
		TenantID:           m.TenantID,
		ItemID:             m.ItemID,
		GroupTemplateID:    m.GroupTemplateID,
		OptionTemplateID:   m.OptionTemplateID,
		ActiveOverride:     m.ActiveOverride,
		PriceDeltaOverride: m.PriceDeltaOverride,
	}
}
