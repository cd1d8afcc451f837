package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/interfaces/http/dto"
)

// Context and header keys for tenant identification
const (
	TenantIDKey     = "tenant_id"
	TenantHeaderKey = "X-Tenant-ID"
)

// TenantConfig holds configuration for the tenant middleware
type TenantConfig struct {
	// SkipPaths are paths that don't require tenant context
	SkipPaths []string
	// Required determines if tenant context is mandatory
	Required bool
}

// DefaultTenantConfig returns the default tenant middleware configuration
func DefaultTenantConfig() TenantConfig {
	return TenantConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready"},
		Required:  true,
	}
}

// Tenant extracts the tenant ID from the X-Tenant-ID header or the
// tenant_id query parameter and stores it in the gin context. Requests
// without a valid tenant are rejected when the config requires one.
func Tenant() gin.HandlerFunc {
	return TenantWithConfig(DefaultTenantConfig())
}

// TenantWithConfig returns tenant middleware with custom configuration
func TenantWithConfig(cfg TenantConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		tenantID := c.GetHeader(TenantHeaderKey)
		if tenantID == "" {
			tenantID = c.Query("tenant_id")
		}

		if tenantID == "" {
			if cfg.Required {
				respondUnauthorized(c, "Tenant identification required")
				return
			}
			c.Next()
			return
		}

		if _, err := uuid.Parse(tenantID); err != nil {
			respondUnauthorized(c, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Next()
	}
}

// GetTenantUUID retrieves the tenant ID as UUID from gin.Context.
// Returns uuid.Nil when the middleware did not identify a tenant.
func GetTenantUUID(c *gin.Context) uuid.UUID {
	tenantID := c.GetString(TenantIDKey)
	if tenantID == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}
