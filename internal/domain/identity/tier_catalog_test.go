package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupports_TierMonotonicity(t *testing.T) {
	// Every feature enabled for a tier must stay enabled for all higher
	// tiers, for every feature the catalog knows about.
	for _, feature := range AllFeatures() {
		if Supports(TierLight, feature) {
			assert.True(t, Supports(TierPlus, feature),
				"feature %q enabled for light but not plus", feature)
		}
		if Supports(TierPlus, feature) {
			assert.True(t, Supports(TierPro, feature),
				"feature %q enabled for plus but not pro", feature)
		}
	}
}

func TestSupports(t *testing.T) {
	tests := []struct {
		name    string
		tier    ProductTier
		feature FeatureKey
		want    bool
	}{
		{"light has digital menu", TierLight, FeatureDigitalMenu, true},
		{"light can edit its own menu", TierLight, FeatureMenuManagement, true},
		{"light has no order management", TierLight, FeatureOrderManagement, false},
		{"light has no table management", TierLight, FeatureTableManagement, false},
		{"plus has order management", TierPlus, FeatureOrderManagement, true},
		{"plus has staff accounts", TierPlus, FeatureStaffAccounts, true},
		{"plus has no variants management", TierPlus, FeatureVariantsManagement, false},
		{"plus has no kitchen display", TierPlus, FeatureKitchenDisplay, false},
		{"pro has everything light has", TierPro, FeatureQRCodes, true},
		{"pro has table management", TierPro, FeatureTableManagement, true},
		{"pro has bill splitting", TierPro, FeatureBillSplitting, true},
		{"unknown tier supports nothing", ProductTier("enterprise"), FeatureDigitalMenu, false},
		{"unknown feature is unsupported", TierPro, FeatureKey("teleportation"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Supports(tt.tier, tt.feature))
		})
	}
}

func TestMinimumTierFor(t *testing.T) {
	tests := []struct {
		name    string
		feature FeatureKey
		want    ProductTier
		known   bool
	}{
		{"core feature starts at light", FeatureDigitalMenu, TierLight, true},
		{"order management starts at plus", FeatureOrderManagement, TierPlus, true},
		{"table management starts at pro", FeatureTableManagement, TierPro, true},
		{"variants management starts at pro", FeatureVariantsManagement, TierPro, true},
		{"unknown feature has no tier", FeatureKey("teleportation"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, known := MinimumTierFor(tt.feature)
			require.Equal(t, tt.known, known)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestMinimumTierFor_CoversEveryFeature(t *testing.T) {
	// The minimum tier is computed by scanning tiers in ascending order,
	// so any feature added to the catalog automatically gets one.
	for _, feature := range AllFeatures() {
		tier, known := MinimumTierFor(feature)
		require.True(t, known, "feature %q has no minimum tier", feature)
		assert.True(t, Supports(tier, feature))
	}
}

func TestIsValidFeatureKey(t *testing.T) {
	assert.True(t, IsValidFeatureKey(FeatureKitchenDisplay))
	assert.False(t, IsValidFeatureKey(FeatureKey("")))
	assert.False(t, IsValidFeatureKey(FeatureKey("not_a_feature")))
}
