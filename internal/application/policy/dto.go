package policy

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuEntry is one resolved menu item as returned to embedding callers
type MenuEntry struct {
	ItemID          uuid.UUID          `json:"item_id"`
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	EffectivePrice  decimal.Decimal    `json:"effective_price"`
	EffectiveActive bool               `json:"effective_active"`
	Variants        []VariantGroupView `json:"variants"`
}

// VariantGroupView is one resolved variant group attached to an item
type VariantGroupView struct {
	GroupID         uuid.UUID           `json:"group_id"`
	Name            string              `json:"name"`
	Required        bool                `json:"required"`
	MaxSelect       int                 `json:"max_select"`
	EffectiveActive bool                `json:"effective_active"`
	Options         []VariantOptionView `json:"options"`
}

// VariantOptionView is one resolved variant option within a group
type VariantOptionView struct {
	OptionID            uuid.UUID       `json:"option_id"`
	Name                string          `json:"name"`
	EffectivePriceDelta decimal.Decimal `json:"effective_price_delta"`
	EffectiveActive     bool            `json:"effective_active"`
}
