package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/mesafacil/backend/internal/interfaces/http/dto"
)

// Admitter decides whether a tenant's request is within its hourly quota
type Admitter interface {
	Admit(ctx context.Context, tenantID uuid.UUID, now time.Time) (ratelimit.Decision, error)
}

// RateLimit counts the request against the tenant's hourly window and
// rejects it with 429 once the quota is exhausted. Every response carries
// the X-RateLimit-* headers; denials additionally carry Retry-After.
func RateLimit(admitter Admitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantUUID(c)
		if tenantID == uuid.Nil {
			// Paths without tenant context are not quota-counted.
			c.Next()
			return
		}

		decision, err := admitter.Admit(c.Request.Context(), tenantID, time.Now())
		if err != nil {
			if errors.Is(err, shared.ErrTenantNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound,
					dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Tenant not found", GetRequestID(c)))
				return
			}
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeStorageUnavailable, "Quota check failed", GetRequestID(c)))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(decision.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			if retryAfter < 0 {
				retryAfter = 0
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeRateLimited,
					"Hourly request quota exceeded. Please retry after the window resets.", GetRequestID(c)))
			return
		}

		c.Next()
	}
}
