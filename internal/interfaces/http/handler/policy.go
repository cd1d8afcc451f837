package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/interfaces/http/middleware"
)

// PolicyHandler exposes plan/feature introspection endpoints
type PolicyHandler struct {
	BaseHandler
	checker middleware.FeatureChecker
}

// NewPolicyHandler creates a new policy handler
func NewPolicyHandler(checker middleware.FeatureChecker) *PolicyHandler {
	return &PolicyHandler{checker: checker}
}

// RegisterRoutes registers policy routes on a tenant-scoped group
func (h *PolicyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/policy/features/:feature", h.CheckFeature)
}

// FeatureDecisionResponse is the API representation of an access decision
type FeatureDecisionResponse struct {
	Feature      string `json:"feature"`
	Allowed      bool   `json:"allowed"`
	Reason       string `json:"reason,omitempty"`
	CurrentTier  string `json:"current_tier"`
	RequiredTier string `json:"required_tier,omitempty"`
}

// CheckFeature reports whether the tenant's plan includes a feature.
// This is an introspection endpoint: a denial is a 200 with allowed=false,
// not a 403.
func (h *PolicyHandler) CheckFeature(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	feature := identity.FeatureKey(c.Param("feature"))
	if !identity.IsValidFeatureKey(feature) {
		h.BadRequest(c, "Unknown feature key: "+string(feature))
		return
	}

	decision, err := h.checker.CheckFeature(c.Request.Context(), tenantID, feature)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, FeatureDecisionResponse{
		Feature:      string(feature),
		Allowed:      decision.Allowed,
		Reason:       decision.Reason,
		CurrentTier:  string(decision.CurrentTier),
		RequiredTier: string(decision.RequiredTier),
	})
}
