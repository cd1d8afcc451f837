package identity

import "fmt"

// AccessDecision is the result of a feature access check
type AccessDecision struct {
	Allowed      bool
	Reason       string
	CurrentTier  ProductTier
	RequiredTier ProductTier
}

// CheckAccess decides whether a tenant may use a feature. The decision is
// pure: it depends only on the tenant's subscription state and the static
// tier catalog. An inactive or expired subscription denies every feature
// regardless of tier; otherwise the tier catalog decides, and a denial
// carries the lowest tier that would allow the feature.
func CheckAccess(tenant *Tenant, feature FeatureKey) AccessDecision {
	tenant.Normalize()

	if !tenant.SubscriptionStatus.IsSubscribed() {
		return AccessDecision{
			Allowed:     false,
			Reason:      "subscription inactive",
			CurrentTier: tenant.Tier,
		}
	}

	if !Supports(tenant.Tier, feature) {
		required, known := MinimumTierFor(feature)
		reason := fmt.Sprintf("Feature %q is not available", feature)
		if known {
			reason = fmt.Sprintf("Feature %q requires the %s plan", feature, required.DisplayName())
		}
		return AccessDecision{
			Allowed:      false,
			Reason:       reason,
			CurrentTier:  tenant.Tier,
			RequiredTier: required,
		}
	}

	return AccessDecision{
		Allowed:     true,
		CurrentTier: tenant.Tier,
	}
}
