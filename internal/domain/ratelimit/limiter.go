package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
	"go.uber.org/zap"
)

// WindowStore persists per-tenant hourly counters. IncrementAndGet must be
// atomic: concurrent callers for the same (tenant, window) may never lose
// an increment, so a naive read-then-write implementation is not valid.
type WindowStore interface {
	// IncrementAndGet creates the window row with count 1 if it does not
	// exist, otherwise increments it by 1, and returns the post-increment
	// count.
	IncrementAndGet(ctx context.Context, tenantID uuid.UUID, windowStart time.Time) (int64, error)
}

// Limiter enforces per-tenant hourly request quotas over fixed,
// non-sliding windows.
type Limiter struct {
	store  WindowStore
	logger *zap.Logger
}

// NewLimiter creates a rate limiter backed by the given window store
func NewLimiter(store WindowStore, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{store: store, logger: logger}
}

// Admit counts the request against the tenant's current hourly window and
// decides whether it is within quota. The request that brings the counter
// exactly to the limit is still admitted; the next one is denied.
//
// A store failure admits the request (fail-open): an unhealthy quota store
// must not take the product down, so the error is logged and swallowed.
func (l *Limiter) Admit(ctx context.Context, tenantID uuid.UUID, tier identity.ProductTier, now time.Time) Decision {
	limit := QuotaFor(tier)
	windowStart := WindowStart(now)
	resetAt := windowStart.Add(time.Hour)

	count, err := l.store.IncrementAndGet(ctx, tenantID, windowStart)
	if err != nil {
		l.logger.Warn("rate window increment failed, admitting request",
			zap.String("tenant_id", tenantID.String()),
			zap.Time("window_start", windowStart),
			zap.Error(err),
		)
		return Decision{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetAt:   resetAt,
		}
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}

	decision := Decision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
	if !decision.Allowed {
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		decision.RetryAfter = retryAfter
	}
	return decision
}
