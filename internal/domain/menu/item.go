package menu

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable item on a tenant's menu. BasePrice and
// ActiveGlobal are the tenant-wide defaults; location overrides layer on
// top of them at read time.
type MenuItem struct {
	shared.TenantEntity
	CategoryID   *uuid.UUID
	Name         string
	Description  string
	BasePrice    decimal.Decimal
	ActiveGlobal bool
	SortOrder    int
}

// NewMenuItem creates a new menu item, globally active by default
func NewMenuItem(tenantID uuid.UUID, name string, basePrice decimal.Decimal) (*MenuItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name is required")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Item price cannot be negative")
	}

	return &MenuItem{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		BasePrice:    basePrice,
		ActiveGlobal: true,
	}, nil
}

// LocationOverride narrows or reprices a menu item for one location.
// Both fields are three-valued: nil means "no opinion" and falls through
// to the item's global value. At most one row exists per
// (tenant, item, location); most pairs have none.
type LocationOverride struct {
	TenantID       uuid.UUID
	ItemID         uuid.UUID
	LocationID     uuid.UUID
	PriceOverride  *decimal.Decimal
	ActiveOverride *bool
}

// Repository defines the read and edit interface for menu data. All row
// fetching happens here; resolution itself is pure and lives in
// resolver.go.
type Repository interface {
	// GetMenuWithOverrides returns every item of the tenant joined with
	// its location override (when locationID is set and a row exists)
	// and its variant groups, options and per-item overrides.
	GetMenuWithOverrides(ctx context.Context, tenantID uuid.UUID, locationID *uuid.UUID) ([]ItemWithOverrides, error)

	// FindItemByID returns nil without error when the item does not exist
	FindItemByID(ctx context.Context, tenantID, itemID uuid.UUID) (*MenuItem, error)
	SaveItem(ctx context.Context, item *MenuItem) error
	UpdateItem(ctx context.Context, item *MenuItem) error

	// UpsertLocationOverride creates or replaces the single override row
	// for (tenant, item, location).
	UpsertLocationOverride(ctx context.Context, override *LocationOverride) error

	// UpsertGroupLink attaches a variant group template to an item, or
	// updates the attachment's active override.
	UpsertGroupLink(ctx context.Context, link *ItemVariantGroupLink) error
	DeleteGroupLink(ctx context.Context, tenantID, itemID, groupTemplateID uuid.UUID) error

	// UpsertOptionOverride creates or replaces the per-item override row
	// for one variant option template.
	UpsertOptionOverride(ctx context.Context, override *ItemVariantOptionOverride) error

	FindGroupTemplateByID(ctx context.Context, id uuid.UUID) (*VariantGroupTemplate, error)
	SaveGroupTemplate(ctx context.Context, tpl *VariantGroupTemplate) error
	FindOptionTemplateByID(ctx context.Context, id uuid.UUID) (*VariantOptionTemplate, error)
	SaveOptionTemplate(ctx context.Context, tpl *VariantOptionTemplate) error
}

// ItemWithOverrides is one item row joined with everything resolution
// needs: the location override (if any) and the variant groups attached
// to the item.
type ItemWithOverrides struct {
	Item     MenuItem
	Location *LocationOverride
	Groups   []GroupWithOptions
}

// GroupWithOptions joins a variant group template with the item's link
// row and the group's options.
type GroupWithOptions struct {
	Template VariantGroupTemplate
	Link     ItemVariantGroupLink
	Options  []OptionWithOverride
}

// OptionWithOverride joins a variant option template with the item's
// override row, when one exists.
type OptionWithOverride struct {
	Template VariantOptionTemplate
	Override *ItemVariantOptionOverride
}
