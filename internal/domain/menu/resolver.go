package menu

import "github.com/shopspring/decimal"

// Override resolution. Every function here is pure: callers fetch the
// rows, these functions layer them. The governing invariant is that an
// override can only narrow visibility, never widen it — an override of
// false always wins, an override of true or an absent override merely
// fails to suppress the base flag.

// ResolvedItem is the effective price and visibility of an item after
// layering the location override onto the tenant-wide defaults.
type ResolvedItem struct {
	EffectivePrice  decimal.Decimal
	EffectiveActive bool
}

// ResolveItem computes the effective price and active flag for an item at
// a location. A nil override (no location context, or no row for this
// location) behaves exactly like a row with both fields absent.
func ResolveItem(item *MenuItem, override *LocationOverride) ResolvedItem {
	resolved := ResolvedItem{
		EffectivePrice:  item.BasePrice,
		EffectiveActive: item.ActiveGlobal,
	}
	if override == nil {
		return resolved
	}
	if override.PriceOverride != nil {
		resolved.EffectivePrice = *override.PriceOverride
	}
	resolved.EffectiveActive = narrow(item.ActiveGlobal, override.ActiveOverride)
	return resolved
}

// ResolveGroupActive computes whether a variant group is selectable for
// an item: the template must be active and the item link must not force
// it off.
func ResolveGroupActive(tpl *VariantGroupTemplate, link *ItemVariantGroupLink) bool {
	if link == nil {
		return tpl.Active
	}
	return narrow(tpl.Active, link.ActiveOverride)
}

// ResolvedOption is the effective price delta and visibility of a variant
// option after layering the per-item override onto the template.
type ResolvedOption struct {
	EffectivePriceDelta decimal.Decimal
	EffectiveActive     bool
}

// ResolveOption computes the effective state of a variant option for an
// item. Price delta and active flag are overridden independently.
func ResolveOption(tpl *VariantOptionTemplate, override *ItemVariantOptionOverride) ResolvedOption {
	resolved := ResolvedOption{
		EffectivePriceDelta: tpl.PriceDelta,
		EffectiveActive:     tpl.Active,
	}
	if override == nil {
		return resolved
	}
	if override.PriceDeltaOverride != nil {
		resolved.EffectivePriceDelta = *override.PriceDeltaOverride
	}
	resolved.EffectiveActive = narrow(tpl.Active, override.ActiveOverride)
	return resolved
}

// narrow applies the three-valued override rule: the result is true only
// when the base flag is true and the override is not an explicit false.
// An absent override has no opinion; it must not be collapsed to false.
func narrow(base bool, override *bool) bool {
	return base && (override == nil || *override)
}
