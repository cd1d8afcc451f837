package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/mesafacil/backend/internal/interfaces/http/dto"
)

// FeatureChecker decides whether a tenant's plan includes a feature
type FeatureChecker interface {
	CheckFeature(ctx context.Context, tenantID uuid.UUID, feature identity.FeatureKey) (identity.AccessDecision, error)
}

// RequireFeature guards a route group behind one plan feature. Tenants
// whose tier or subscription status does not grant the feature get 403
// with the denial reason; routes behind this middleware must run after
// the tenant middleware.
func RequireFeature(checker FeatureChecker, feature identity.FeatureKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantUUID(c)
		if tenantID == uuid.Nil {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		decision, err := checker.CheckFeature(c.Request.Context(), tenantID, feature)
		if err != nil {
			if errors.Is(err, shared.ErrTenantNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Tenant not found", GetRequestID(c)))
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeStorageUnavailable, "Feature check failed", GetRequestID(c)))
			return
		}

		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeFeatureDenied, decision.Reason, GetRequestID(c)))
			return
		}

		c.Next()
	}
}
