package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
	"github.com/mesafacil/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// rateWindowUpsertSQL inserts the first request of an hour or bumps the
// existing counter, in a single statement. The database serializes
// concurrent upserts on the (tenant_id, window_start) unique index, so no
// increment is ever lost. Works on PostgreSQL and on SQLite >= 3.35.
const rateWindowUpsertSQL = `
INSERT INTO rate_windows (id, tenant_id, window_start, request_count, created_at, updated_at)
VALUES (?, ?, ?, 1, ?, ?)
ON CONFLICT (tenant_id, window_start)
DO UPDATE SET request_count = rate_windows.request_count + 1, updated_at = excluded.updated_at
RETURNING request_count`

// RateWindowRepository implements the ratelimit.WindowStore interface
type RateWindowRepository struct {
	db *gorm.DB
}

// NewRateWindowRepository creates a new rate window repository
func NewRateWindowRepository(db *gorm.DB) *RateWindowRepository {
	return &RateWindowRepository{db: db}
}

// IncrementAndGet creates the window row with count 1 if it does not
// exist, otherwise increments it by 1, and returns the post-increment
// count.
func (r *RateWindowRepository) IncrementAndGet(ctx context.Context, tenantID uuid.UUID, windowStart time.Time) (int64, error) {
	var count int64
	now := time.Now()
	err := r.db.WithContext(ctx).
		Raw(rateWindowUpsertSQL, uuid.New(), tenantID, windowStart, now, now).
		Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// FindWindow retrieves the counting row for a tenant's hour. Returns nil
// without error when no request has landed in that window yet.
func (r *RateWindowRepository) FindWindow(ctx context.Context, tenantID uuid.UUID, windowStart time.Time) (*ratelimit.RateWindow, error) {
	var model models.RateWindowModel
	err := r.db.WithContext(ctx).
		First(&model, "tenant_id = ? AND window_start = ?", tenantID, windowStart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
