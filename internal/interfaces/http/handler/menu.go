package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmenu "github.com/mesafacil/backend/internal/application/menu"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/mesafacil/backend/internal/domain/identity"
	domain "github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
)

// MenuEditor manages a tenant's menu items, overrides and variants
type MenuEditor interface {
	CreateItem(ctx context.Context, input appmenu.CreateItemInput) (*domain.MenuItem, error)
	UpdateItem(ctx context.Context, input appmenu.UpdateItemInput) (*domain.MenuItem, error)
	SetLocationOverride(ctx context.Context, input appmenu.SetLocationOverrideInput) (*domain.LocationOverride, error)
	LinkVariantGroup(ctx context.Context, input appmenu.LinkVariantGroupInput) (*domain.ItemVariantGroupLink, error)
	UnlinkVariantGroup(ctx context.Context, tenantID, itemID, groupTemplateID uuid.UUID) error
	SetOptionOverride(ctx context.Context, input appmenu.SetOptionOverrideInput) (*domain.ItemVariantOptionOverride, error)
	CreateGroupTemplate(ctx context.Context, name string, position int, required bool, maxSelect int) (*domain.VariantGroupTemplate, error)
	CreateOptionTemplate(ctx context.Context, groupTemplateID uuid.UUID, name string, priceDelta decimal.Decimal) (*domain.VariantOptionTemplate, error)
}

// MenuProjector resolves the effective menu for a tenant and location
type MenuProjector interface {
	ResolveMenuProjection(ctx context.Context, tenantID uuid.UUID, locationID *uuid.UUID) ([]policy.MenuEntry, error)
}

// MenuHandler handles menu read and edit endpoints
type MenuHandler struct {
	BaseHandler
	editor    MenuEditor
	projector MenuProjector
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(editor MenuEditor, projector MenuProjector) *MenuHandler {
	return &MenuHandler{editor: editor, projector: projector}
}

// RegisterRoutes registers menu routes on a tenant-scoped group. Reading
// the menu is part of every plan; editing is gated on the matching plan
// feature.
func (h *MenuHandler) RegisterRoutes(rg *gin.RouterGroup, checker middleware.FeatureChecker) {
	rg.GET("/menu", h.GetMenu)

	items := rg.Group("/menu/items", middleware.RequireFeature(checker, identity.FeatureMenuManagement))
	{
		items.POST("", h.CreateItem)
		items.PUT("/:id", h.UpdateItem)
		items.PUT("/:id/locations/:locationId",
			middleware.RequireFeature(checker, identity.FeatureMultiLocation), h.SetLocationOverride)

		variants := middleware.RequireFeature(checker, identity.FeatureVariantsManagement)
		items.POST("/:id/variant-groups/:groupId", variants, h.LinkVariantGroup)
		items.DELETE("/:id/variant-groups/:groupId", variants, h.UnlinkVariantGroup)
		items.PUT("/:id/variant-options/:optionId", variants, h.SetOptionOverride)
	}

	groups := rg.Group("/variant-groups", middleware.RequireFeature(checker, identity.FeatureVariantsManagement))
	{
		groups.POST("", h.CreateGroupTemplate)
		groups.POST("/:id/options", h.CreateOptionTemplate)
	}
}

// GetMenu returns the tenant's menu with all overrides resolved. An
// optional location_id query narrows the projection to one location.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var locationID *uuid.UUID
	if raw := c.Query("location_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid location_id")
			return
		}
		locationID = &id
	}

	entries, err := h.projector.ResolveMenuProjection(c.Request.Context(), tenantID, locationID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, entries)
}

// CreateItemRequest is the request body for creating a menu item
type CreateItemRequest struct {
	CategoryID  *uuid.UUID      `json:"category_id"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
}

// UpdateItemRequest is the request body for updating a menu item.
// Absent fields stay untouched.
type UpdateItemRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	BasePrice    *decimal.Decimal `json:"base_price"`
	ActiveGlobal *bool            `json:"active_global"`
}

// ItemResponse is the API representation of a menu item
type ItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	CategoryID   *uuid.UUID      `json:"category_id,omitempty"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	BasePrice    decimal.Decimal `json:"base_price"`
	ActiveGlobal bool            `json:"active_global"`
	SortOrder    int             `json:"sort_order"`
	CreatedAt    time.Time       `json:"created_at"`
}

func toItemResponse(i *domain.MenuItem) ItemResponse {
	return ItemResponse{
		ID:           i.ID,
		CategoryID:   i.CategoryID,
		Name:         i.Name,
		Description:  i.Description,
		BasePrice:    i.BasePrice,
		ActiveGlobal: i.ActiveGlobal,
		SortOrder:    i.SortOrder,
		CreatedAt:    i.CreatedAt,
	}
}

// CreateItem creates a new menu item for the tenant
func (h *MenuHandler) CreateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.editor.CreateItem(c.Request.Context(), appmenu.CreateItemInput{
		TenantID:    tenantID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toItemResponse(item))
}

// UpdateItem updates the tenant-wide fields of an item
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	item, err := h.editor.UpdateItem(c.Request.Context(), appmenu.UpdateItemInput{
		TenantID:     tenantID,
		ItemID:       itemID,
		Name:         req.Name,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		ActiveGlobal: req.ActiveGlobal,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toItemResponse(item))
}

// SetLocationOverrideRequest is the request body for a per-location
// override. Null fields mean "no opinion" and fall through to the item's
// global values.
type SetLocationOverrideRequest struct {
	PriceOverride  *decimal.Decimal `json:"price_override"`
	ActiveOverride *bool            `json:"active_override"`
}

// LocationOverrideResponse is the API representation of a location override
type LocationOverrideResponse struct {
	ItemID         uuid.UUID        `json:"item_id"`
	LocationID     uuid.UUID        `json:"location_id"`
	PriceOverride  *decimal.Decimal `json:"price_override,omitempty"`
	ActiveOverride *bool            `json:"active_override,omitempty"`
}

// SetLocationOverride creates or replaces the override row for the item
// at one location
func (h *MenuHandler) SetLocationOverride(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	var req SetLocationOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	override, err := h.editor.SetLocationOverride(c.Request.Context(), appmenu.SetLocationOverrideInput{
		TenantID:       tenantID,
		ItemID:         itemID,
		LocationID:     locationID,
		PriceOverride:  req.PriceOverride,
		ActiveOverride: req.ActiveOverride,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LocationOverrideResponse{
		ItemID:         override.ItemID,
		LocationID:     override.LocationID,
		PriceOverride:  override.PriceOverride,
		ActiveOverride: override.ActiveOverride,
	})
}

// LinkVariantGroupRequest is the request body for attaching a variant
// group template to an item
type LinkVariantGroupRequest struct {
	ActiveOverride *bool `json:"active_override"`
}

// LinkVariantGroup attaches a variant group template to the item
func (h *MenuHandler) LinkVariantGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		h.BadRequest(c, "Invalid group template ID")
		return
	}

	var req LinkVariantGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	link, err := h.editor.LinkVariantGroup(c.Request.Context(), appmenu.LinkVariantGroupInput{
		TenantID:        tenantID,
		ItemID:          itemID,
		GroupTemplateID: groupID,
		ActiveOverride:  req.ActiveOverride,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"item_id":           link.ItemID,
		"group_template_id": link.GroupTemplateID,
		"active_override":   link.ActiveOverride,
	})
}

// UnlinkVariantGroup detaches a variant group template from the item
func (h *MenuHandler) UnlinkVariantGroup(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	groupID, err := uuid.Parse(c.Param("groupId"))
	if err != nil {
		h.BadRequest(c, "Invalid group template ID")
		return
	}

	if err := h.editor.UnlinkVariantGroup(c.Request.Context(), tenantID, itemID, groupID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SetOptionOverrideRequest is the request body for a per-item variant
// option override
type SetOptionOverrideRequest struct {
	GroupTemplateID    uuid.UUID        `json:"group_template_id" binding:"required"`
	ActiveOverride     *bool            `json:"active_override"`
	PriceDeltaOverride *decimal.Decimal `json:"price_delta_override"`
}

// SetOptionOverride creates or replaces the item's override row for one
// variant option template
func (h *MenuHandler) SetOptionOverride(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}
	optionID, err := uuid.Parse(c.Param("optionId"))
	if err != nil {
		h.BadRequest(c, "Invalid option template ID")
		return
	}

	var req SetOptionOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	override, err := h.editor.SetOptionOverride(c.Request.Context(), appmenu.SetOptionOverrideInput{
		TenantID:           tenantID,
		ItemID:             itemID,
		GroupTemplateID:    req.GroupTemplateID,
		OptionTemplateID:   optionID,
		ActiveOverride:     req.ActiveOverride,
		PriceDeltaOverride: req.PriceDeltaOverride,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"item_id":              override.ItemID,
		"option_template_id":   override.OptionTemplateID,
		"group_template_id":    override.GroupTemplateID,
		"active_override":      override.ActiveOverride,
		"price_delta_override": override.PriceDeltaOverride,
	})
}

// CreateGroupTemplateRequest is the request body for a variant group template
type CreateGroupTemplateRequest struct {
	Name      string `json:"name" binding:"required"`
	Position  int    `json:"position"`
	Required  bool   `json:"required"`
	MaxSelect int    `json:"max_select"`
}

// CreateGroupTemplate creates a variant group template
func (h *MenuHandler) CreateGroupTemplate(c *gin.Context) {
	var req CreateGroupTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tpl, err := h.editor.CreateGroupTemplate(c.Request.Context(), req.Name, req.Position, req.Required, req.MaxSelect)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"id":         tpl.ID,
		"name":       tpl.Name,
		"position":   tpl.Position,
		"required":   tpl.Required,
		"max_select": tpl.MaxSelect,
		"active":     tpl.Active,
	})
}

// CreateOptionTemplateRequest is the request body for a variant option template
type CreateOptionTemplateRequest struct {
	Name       string          `json:"name" binding:"required"`
	PriceDelta decimal.Decimal `json:"price_delta"`
}

// CreateOptionTemplate creates a variant option template inside a group
func (h *MenuHandler) CreateOptionTemplate(c *gin.Context) {
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid group template ID")
		return
	}

	var req CreateOptionTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tpl, err := h.editor.CreateOptionTemplate(c.Request.Context(), groupID, req.Name, req.PriceDelta)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"id":                tpl.ID,
		"group_template_id": tpl.GroupTemplateID,
		"name":              tpl.Name,
		"price_delta":       tpl.PriceDelta,
		"active":            tpl.Active,
	})
}
