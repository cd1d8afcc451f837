package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/application/identity"
	domain "github.com/mesafacil/backend/internal/domain/identity"
)

// TenantProvisioner manages tenant records and their subscriptions
type TenantProvisioner interface {
	RegisterTenant(ctx context.Context, input identity.RegisterTenantInput) (*domain.Tenant, error)
	GetTenant(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	UpdateSubscription(ctx context.Context, input identity.UpdateSubscriptionInput) (*domain.Tenant, error)
}

// SnapshotInvalidator drops a tenant's cached policy snapshot
type SnapshotInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID uuid.UUID)
}

// TenantHandler handles tenant provisioning endpoints
type TenantHandler struct {
	BaseHandler
	tenants   TenantProvisioner
	snapshots SnapshotInvalidator
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenants TenantProvisioner, snapshots SnapshotInvalidator) *TenantHandler {
	return &TenantHandler{tenants: tenants, snapshots: snapshots}
}

// RegisterRoutes registers tenant routes. These are platform endpoints:
// they identify the tenant by path, not by the X-Tenant-ID header.
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.Register)
		tenants.GET("/:id", h.Get)
		tenants.PUT("/:id/subscription", h.UpdateSubscription)
	}
}

// RegisterTenantRequest is the request body for tenant registration
type RegisterTenantRequest struct {
	Code           string `json:"code" binding:"required"`
	Name           string `json:"name" binding:"required"`
	ContactEmail   string `json:"contact_email" binding:"omitempty,email"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

// UpdateSubscriptionRequest is the request body for a subscription change
type UpdateSubscriptionRequest struct {
	Tier     string     `json:"tier" binding:"required,oneof=light plus pro"`
	Status   string     `json:"status" binding:"required,oneof=active trial inactive expired"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// TenantResponse is the API representation of a tenant
type TenantResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Code                 string     `json:"code"`
	Name                 string     `json:"name"`
	Tier                 string     `json:"tier"`
	SubscriptionStatus   string     `json:"subscription_status"`
	SubscriptionStartsAt *time.Time `json:"subscription_starts_at,omitempty"`
	SubscriptionEndsAt   *time.Time `json:"subscription_ends_at,omitempty"`
	ContactEmail         string     `json:"contact_email,omitempty"`
	WhatsAppNumber       string     `json:"whatsapp_number,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func toTenantResponse(t *domain.Tenant) TenantResponse {
	return TenantResponse{
		ID:                   t.ID,
		Code:                 t.Code,
		Name:                 t.Name,
		Tier:                 string(t.Tier),
		SubscriptionStatus:   string(t.SubscriptionStatus),
		SubscriptionStartsAt: t.SubscriptionStartsAt,
		SubscriptionEndsAt:   t.SubscriptionEndsAt,
		ContactEmail:         t.ContactEmail,
		WhatsAppNumber:       t.WhatsAppNumber,
		CreatedAt:            t.CreatedAt,
	}
}

// Register creates a new tenant on the default light/active plan
func (h *TenantHandler) Register(c *gin.Context) {
	var req RegisterTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenant, err := h.tenants.RegisterTenant(c.Request.Context(), identity.RegisterTenantInput{
		Code:           req.Code,
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
		WhatsAppNumber: req.WhatsAppNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toTenantResponse(tenant))
}

// Get returns a tenant by ID
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tenant, err := h.tenants.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toTenantResponse(tenant))
}

// UpdateSubscription changes the tenant's tier and status. The cached
// policy snapshot is invalidated so the change takes effect immediately.
func (h *TenantHandler) UpdateSubscription(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req UpdateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenant, err := h.tenants.UpdateSubscription(c.Request.Context(), identity.UpdateSubscriptionInput{
		TenantID: id,
		Tier:     domain.ProductTier(req.Tier),
		Status:   domain.SubscriptionStatus(req.Status),
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.snapshots.InvalidateTenant(c.Request.Context(), id)
	h.Success(c, toTenantResponse(tenant))
}
