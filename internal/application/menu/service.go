package menu

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service implements the backoffice editing operations for menu items and
// their overrides. Override rows are sparse: they are created lazily on
// first edit and updated in place afterwards.
type Service struct {
	repo   domain.Repository
	logger *zap.Logger
}

// NewService creates a menu editing service
func NewService(repo domain.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateItemInput contains input for creating a menu item
type CreateItemInput struct {
	TenantID    uuid.UUID
	CategoryID  *uuid.UUID
	Name        string
	Description string
	BasePrice   decimal.Decimal
}

// CreateItem creates a new, globally active menu item
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*domain.MenuItem, error) {
	item, err := domain.NewMenuItem(input.TenantID, input.Name, input.BasePrice)
	if err != nil {
		return nil, err
	}
	item.CategoryID = input.CategoryID
	item.Description = input.Description

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("menu item created",
		zap.String("tenant_id", input.TenantID.String()),
		zap.String("item_id", item.ID.String()),
	)
	return item, nil
}

// UpdateItemInput contains input for updating a menu item's global fields
type UpdateItemInput struct {
	TenantID     uuid.UUID
	ItemID       uuid.UUID
	Name         *string
	Description  *string
	BasePrice    *decimal.Decimal
	ActiveGlobal *bool
}

// UpdateItem updates the tenant-wide fields of an item. Location-specific
// state is never touched here; that goes through SetLocationOverride.
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.MenuItem, error) {
	item, err := s.repo.FindItemByID(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.BasePrice != nil {
		if input.BasePrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Item price cannot be negative")
		}
		item.BasePrice = *input.BasePrice
	}
	if input.ActiveGlobal != nil {
		item.ActiveGlobal = *input.ActiveGlobal
	}
	item.Touch()

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetLocationOverrideInput contains input for an item's per-location row
type SetLocationOverrideInput struct {
	TenantID       uuid.UUID
	ItemID         uuid.UUID
	LocationID     uuid.UUID
	PriceOverride  *decimal.Decimal
	ActiveOverride *bool
}

// SetLocationOverride creates or replaces the override row for
// (tenant, item, location). Nil fields mean "no opinion", not "false" or
// "zero"; they must round-trip as NULL.
func (s *Service) SetLocationOverride(ctx context.Context, input SetLocationOverrideInput) (*domain.LocationOverride, error) {
	item, err := s.repo.FindItemByID(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}
	if input.PriceOverride != nil && input.PriceOverride.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ITEM_PRICE", "Price override cannot be negative")
	}

	override := &domain.LocationOverride{
		TenantID:       input.TenantID,
		ItemID:         input.ItemID,
		LocationID:     input.LocationID,
		PriceOverride:  input.PriceOverride,
		ActiveOverride: input.ActiveOverride,
	}
	if err := s.repo.UpsertLocationOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// LinkVariantGroupInput contains input for attaching a group to an item
type LinkVariantGroupInput struct {
	TenantID        uuid.UUID
	ItemID          uuid.UUID
	GroupTemplateID uuid.UUID
	ActiveOverride  *bool
}

// LinkVariantGroup attaches a variant group template to an item, or
// updates the attachment's active override when the link already exists.
func (s *Service) LinkVariantGroup(ctx context.Context, input LinkVariantGroupInput) (*domain.ItemVariantGroupLink, error) {
	item, err := s.repo.FindItemByID(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, shared.ErrNotFound
	}

	tpl, err := s.repo.FindGroupTemplateByID(ctx, input.GroupTemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, shared.ErrNotFound
	}

	link := &domain.ItemVariantGroupLink{
		TenantID:        input.TenantID,
		ItemID:          input.ItemID,
		GroupTemplateID: input.GroupTemplateID,
		ActiveOverride:  input.ActiveOverride,
	}
	if err := s.repo.UpsertGroupLink(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// UnlinkVariantGroup detaches a group template from an item
func (s *Service) UnlinkVariantGroup(ctx context.Context, tenantID, itemID, groupTemplateID uuid.UUID) error {
	return s.repo.DeleteGroupLink(ctx, tenantID, itemID, groupTemplateID)
}

// SetOptionOverrideInput contains input for an item's per-option row
type SetOptionOverrideInput struct {
	TenantID           uuid.UUID
	ItemID             uuid.UUID
	GroupTemplateID    uuid.UUID
	OptionTemplateID   uuid.UUID
	ActiveOverride     *bool
	PriceDeltaOverride *decimal.Decimal
}

// SetOptionOverride creates or replaces the override row for one variant
// option of one item.
func (s *Service) SetOptionOverride(ctx context.Context, input SetOptionOverrideInput) (*domain.ItemVariantOptionOverride, error) {
	tpl, err := s.repo.FindOptionTemplateByID(ctx, input.OptionTemplateID)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, shared.ErrNotFound
	}
	if tpl.GroupTemplateID != input.GroupTemplateID {
		return nil, shared.NewDomainError("OPTION_GROUP_MISMATCH", "Option does not belong to the given variant group")
	}

	override := &domain.ItemVariantOptionOverride{
		TenantID:           input.TenantID,
		ItemID:             input.ItemID,
		GroupTemplateID:    input.GroupTemplateID,
		OptionTemplateID:   input.OptionTemplateID,
		ActiveOverride:     input.ActiveOverride,
		PriceDeltaOverride: input.PriceDeltaOverride,
	}
	if err := s.repo.UpsertOptionOverride(ctx, override); err != nil {
		return nil, err
	}
	return override, nil
}

// CreateGroupTemplate creates a new variant group template
func (s *Service) CreateGroupTemplate(ctx context.Context, name string, position int, required bool, maxSelect int) (*domain.VariantGroupTemplate, error) {
	tpl, err := domain.NewVariantGroupTemplate(name, position)
	if err != nil {
		return nil, err
	}
	tpl.Required = required
	if maxSelect > 0 {
		tpl.MaxSelect = maxSelect
	}
	if err := s.repo.SaveGroupTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// CreateOptionTemplate creates a new variant option template within a group
func (s *Service) CreateOptionTemplate(ctx context.Context, groupTemplateID uuid.UUID, name string, priceDelta decimal.Decimal) (*domain.VariantOptionTemplate, error) {
	group, err := s.repo.FindGroupTemplateByID(ctx, groupTemplateID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, shared.ErrNotFound
	}

	tpl, err := domain.NewVariantOptionTemplate(groupTemplateID, name, priceDelta)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveOptionTemplate(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}
