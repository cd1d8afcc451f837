package ratelimit

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/identity"
)

// Per-tier hourly request quotas. Pro uses a large sentinel instead of a
// dedicated unlimited branch so every tier runs the same arithmetic and
// the reported limit stays meaningful for clients.
const (
	QuotaLight int64 = 100
	QuotaPlus  int64 = 500
	QuotaPro   int64 = 1_000_000
)

// QuotaFor returns the hourly request quota for a tier. Unknown tiers
// fall back to the light quota.
func QuotaFor(tier identity.ProductTier) int64 {
	switch tier {
	case identity.TierPlus:
		return QuotaPlus
	case identity.TierPro:
		return QuotaPro
	default:
		return QuotaLight
	}
}

// WindowStart truncates a timestamp to the start of its clock hour.
// All counting for a tenant within that hour lands on one window row.
func WindowStart(now time.Time) time.Time {
	return now.Truncate(time.Hour)
}

// RateWindow is one hourly counting row for a tenant. Rows are created on
// the first request of the hour and incremented in place afterwards; they
// are never deleted here (retention is an external concern).
type RateWindow struct {
	TenantID     uuid.UUID
	WindowStart  time.Time
	RequestCount int64
	UpdatedAt    time.Time
}

// Decision is the outcome of an admission check
type Decision struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}
