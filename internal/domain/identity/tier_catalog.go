package identity

// FeatureKey represents a unique identifier for a tier-gated feature
type FeatureKey string

// Predefined feature keys for the system
const (
	// Core features available from the lowest tier
	FeatureDigitalMenu    FeatureKey = "digital_menu"
	FeatureQRCodes        FeatureKey = "qr_codes"
	FeatureWhatsAppButton FeatureKey = "whatsapp_button"
	FeatureBasicBranding  FeatureKey = "basic_branding"
	FeatureMenuManagement FeatureKey = "menu_management"

	// Order handling features
	FeatureOrderManagement FeatureKey = "order_management"
	FeatureBasicReports    FeatureKey = "basic_reports"
	FeatureOrderHistory    FeatureKey = "order_history"
	FeatureStaffAccounts   FeatureKey = "staff_accounts"

	// Full-operation features
	FeatureTableManagement    FeatureKey = "table_management"
	FeatureVariantsManagement FeatureKey = "variants_management"
	FeatureReports            FeatureKey = "reports"
	FeatureAdvancedReports    FeatureKey = "advanced_reports"
	FeatureKitchenDisplay     FeatureKey = "kitchen_display"
	FeatureMultiLocation      FeatureKey = "multi_location"
	FeatureTipsManagement     FeatureKey = "tips_management"
	FeatureShiftClosing       FeatureKey = "shift_closing"
	FeatureBillSplitting      FeatureKey = "bill_splitting"
)

// featureSet is an immutable set of enabled features for a tier
type featureSet map[FeatureKey]struct{}

func newFeatureSet(keys ...FeatureKey) featureSet {
	s := make(featureSet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// extend returns a new set containing everything in s plus the given keys.
// Each tier is built from the previous one, so a feature enabled for a
// lower tier can never be disabled for a higher one.
func (s featureSet) extend(keys ...FeatureKey) featureSet {
	next := make(featureSet, len(s)+len(keys))
	for k := range s {
		next[k] = struct{}{}
	}
	for _, k := range keys {
		next[k] = struct{}{}
	}
	return next
}

var lightFeatures = newFeatureSet(
	FeatureDigitalMenu,
	FeatureQRCodes,
	FeatureWhatsAppButton,
	FeatureBasicBranding,
	FeatureMenuManagement,
)

var plusFeatures = lightFeatures.extend(
	FeatureOrderManagement,
	FeatureBasicReports,
	FeatureOrderHistory,
	FeatureStaffAccounts,
)

var proFeatures = plusFeatures.extend(
	FeatureTableManagement,
	FeatureVariantsManagement,
	FeatureReports,
	FeatureAdvancedReports,
	FeatureKitchenDisplay,
	FeatureMultiLocation,
	FeatureTipsManagement,
	FeatureShiftClosing,
	FeatureBillSplitting,
)

var tierFeatures = map[ProductTier]featureSet{
	TierLight: lightFeatures,
	TierPlus:  plusFeatures,
	TierPro:   proFeatures,
}

// Supports reports whether the given tier enables the given feature.
// Unknown tiers and unknown features are treated as unsupported.
func Supports(tier ProductTier, feature FeatureKey) bool {
	set, ok := tierFeatures[tier]
	if !ok {
		return false
	}
	_, enabled := set[feature]
	return enabled
}

// MinimumTierFor returns the lowest tier that enables the given feature.
// The second return value is false when no tier enables it.
func MinimumTierFor(feature FeatureKey) (ProductTier, bool) {
	for _, tier := range TiersAscending {
		if Supports(tier, feature) {
			return tier, true
		}
	}
	return "", false
}

// IsValidFeatureKey reports whether the key names a feature known to the
// catalog, i.e. enabled for at least one tier.
func IsValidFeatureKey(feature FeatureKey) bool {
	_, ok := MinimumTierFor(feature)
	return ok
}

// AllFeatures returns every feature key the catalog knows about
func AllFeatures() []FeatureKey {
	keys := make([]FeatureKey, 0, len(proFeatures))
	for k := range proFeatures {
		keys = append(keys, k)
	}
	return keys
}
