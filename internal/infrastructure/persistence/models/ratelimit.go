package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/ratelimit"
)

// RateWindowModel is the GORM model for hourly rate windows. The
// (tenant_id, window_start) unique index is what makes the upsert
// increment atomic.
type RateWindowModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TenantID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tenant_window"`
	WindowStart  time.Time `gorm:"not null;uniqueIndex:idx_tenant_window"`
	RequestCount int64     `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the model
func (RateWindowModel) TableName() string {
	return "rate_windows"
}

// ToDomain converts the model to a domain value
func (m *RateWindowModel) ToDomain() *ratelimit.RateWindow {
	return &ratelimit.RateWindow{
		TenantID:     m.TenantID,
		WindowStart:  m.WindowStart,
		RequestCount: m.RequestCount,
		UpdatedAt:    m.UpdatedAt,
	}
}
