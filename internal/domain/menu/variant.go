package menu

import (
	"strings"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// VariantGroupTemplate is a tenant-independent catalog entry for a
// selectable option group, e.g. "Size".
type VariantGroupTemplate struct {
	shared.BaseEntity
	Name      string
	Position  int
	Required  bool
	MaxSelect int
	Active    bool
}

// NewVariantGroupTemplate creates an active group template
func NewVariantGroupTemplate(name string, position int) (*VariantGroupTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "Variant group name is required")
	}
	return &VariantGroupTemplate{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Position:   position,
		MaxSelect:  1,
		Active:     true,
	}, nil
}

// VariantOptionTemplate is one selectable option within a group template,
// e.g. "Large", carrying the template-level price delta.
type VariantOptionTemplate struct {
	shared.BaseEntity
	GroupTemplateID uuid.UUID
	Name            string
	Position        int
	PriceDelta      decimal.Decimal
	Active          bool
}

// NewVariantOptionTemplate creates an active option template
func NewVariantOptionTemplate(groupTemplateID uuid.UUID, name string, priceDelta decimal.Decimal) (*VariantOptionTemplate, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_OPTION_NAME", "Variant option name is required")
	}
	return &VariantOptionTemplate{
		BaseEntity:      shared.NewBaseEntity(),
		GroupTemplateID: groupTemplateID,
		Name:            name,
		PriceDelta:      priceDelta,
		Active:          true,
	}, nil
}

// ItemVariantGroupLink attaches a group template to a specific item. Its
// ActiveOverride can force the group off for the item; it cannot force
// the group on when the template itself is inactive.
type ItemVariantGroupLink struct {
	TenantID        uuid.UUID
	ItemID          uuid.UUID
	GroupTemplateID uuid.UUID
	ActiveOverride  *bool
}

// ItemVariantOptionOverride reprices or hides one option template for a
// specific item. Nil fields fall through to the template values.
type ItemVariantOptionOverride struct {
	TenantID           uuid.UUID
	ItemID             uuid.UUID
	GroupTemplateID    uuid.UUID
	OptionTemplateID   uuid.UUID
	ActiveOverride     *bool
	PriceDeltaOverride *decimal.Decimal
}
