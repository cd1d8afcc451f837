package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuRepository implements the menu.Repository interface
type MenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// GetMenuWithOverrides loads every item of the tenant together with the
// location override rows (when locationID is set), the variant group
// attachments and the per-item option overrides. The join happens in Go
// over a handful of batched queries rather than one wide SQL join.
func (r *MenuRepository) GetMenuWithOverrides(ctx context.Context, tenantID uuid.UUID, locationID *uuid.UUID) ([]menu.ItemWithOverrides, error) {
	var itemModels []models.MenuItemModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("sort_order ASC, name ASC").
		Find(&itemModels).Error
	if err != nil {
		return nil, err
	}
	if len(itemModels) == 0 {
		return []menu.ItemWithOverrides{}, nil
	}

	itemIDs := make([]uuid.UUID, len(itemModels))
	for i, m := range itemModels {
		itemIDs[i] = m.ID
	}

	locationByItem := make(map[uuid.UUID]*menu.LocationOverride)
	if locationID != nil {
		var locModels []models.MenuItemLocationModel
		err = r.db.WithContext(ctx).
			Where("tenant_id = ? AND location_id = ? AND item_id IN ?", tenantID, *locationID, itemIDs).
			Find(&locModels).Error
		if err != nil {
			return nil, err
		}
		for i := range locModels {
			locationByItem[locModels[i].ItemID] = locModels[i].ToDomain()
		}
	}

	var linkModels []models.ItemVariantGroupModel
	err = r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id IN ?", tenantID, itemIDs).
		Find(&linkModels).Error
	if err != nil {
		return nil, err
	}

	linksByItem := make(map[uuid.UUID][]models.ItemVariantGroupModel)
	groupIDSet := make(map[uuid.UUID]struct{})
	for _, l := range linkModels {
		linksByItem[l.ItemID] = append(linksByItem[l.ItemID], l)
		groupIDSet[l.GroupTemplateID] = struct{}{}
	}

	groupsByID := make(map[uuid.UUID]*menu.VariantGroupTemplate)
	optionsByGroup := make(map[uuid.UUID][]*menu.VariantOptionTemplate)
	if len(groupIDSet) > 0 {
		groupIDs := make([]uuid.UUID, 0, len(groupIDSet))
		for id := range groupIDSet {
			groupIDs = append(groupIDs, id)
		}

		var groupModels []models.VariantGroupTemplateModel
		if err = r.db.WithContext(ctx).Where("id IN ?", groupIDs).Find(&groupModels).Error; err != nil {
			return nil, err
		}
		for i := range groupModels {
			groupsByID[groupModels[i].ID] = groupModels[i].ToDomain()
		}

		var optionModels []models.VariantOptionTemplateModel
		err = r.db.WithContext(ctx).
			Where("group_template_id IN ?", groupIDs).
			Order("position ASC, name ASC").
			Find(&optionModels).Error
		if err != nil {
			return nil, err
		}
		for i := range optionModels {
			tpl := optionModels[i].ToDomain()
			optionsByGroup[tpl.GroupTemplateID] = append(optionsByGroup[tpl.GroupTemplateID], tpl)
		}
	}

	optionOverrides := make(map[uuid.UUID]map[uuid.UUID]*menu.ItemVariantOptionOverride)
	var overrideModels []models.ItemVariantOptionModel
	err = r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id IN ?", tenantID, itemIDs).
		Find(&overrideModels).Error
	if err != nil {
		return nil, err
	}
	for i := range overrideModels {
		ov := overrideModels[i].ToDomain()
		byOption := optionOverrides[ov.ItemID]
		if byOption == nil {
			byOption = make(map[uuid.UUID]*menu.ItemVariantOptionOverride)
			optionOverrides[ov.ItemID] = byOption
		}
		byOption[ov.OptionTemplateID] = ov
	}

	result := make([]menu.ItemWithOverrides, 0, len(itemModels))
	for i := range itemModels {
		item := itemModels[i].ToDomain()

		entry := menu.ItemWithOverrides{
			Item:     *item,
			Location: locationByItem[item.ID],
		}

		for _, link := range linksByItem[item.ID] {
			tpl := groupsByID[link.GroupTemplateID]
			if tpl == nil {
				continue
			}

			group := menu.GroupWithOptions{
				Template: *tpl,
				Link:     link.ToDomain(),
			}
			for _, opt := range optionsByGroup[tpl.ID] {
				var override *menu.ItemVariantOptionOverride
				if byOption := optionOverrides[item.ID]; byOption != nil {
					override = byOption[opt.ID]
				}
				group.Options = append(group.Options, menu.OptionWithOverride{
					Template: *opt,
					Override: override,
				})
			}
			entry.Groups = append(entry.Groups, group)
		}

		sort.SliceStable(entry.Groups, func(a, b int) bool {
			ga, gb := entry.Groups[a].Template, entry.Groups[b].Template
			if ga.Position != gb.Position {
				return ga.Position < gb.Position
			}
			return ga.Name < gb.Name
		})

		result = append(result, entry)
	}
	return result, nil
}

// FindItemByID retrieves a tenant's menu item. Returns nil without error
// when the item does not exist.
func (r *MenuRepository) FindItemByID(ctx context.Context, tenantID, itemID uuid.UUID) (*menu.MenuItem, error) {
	var model models.MenuItemModel
	err := r.db.WithContext(ctx).
		First(&model, "tenant_id = ? AND id = ?", tenantID, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveItem persists a new menu item
func (r *MenuRepository) SaveItem(ctx context.Context, item *menu.MenuItem) error {
	model := models.MenuItemModelFromDomain(item)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateItem persists changes to an existing menu item
func (r *MenuRepository) UpdateItem(ctx context.Context, item *menu.MenuItem) error {
	model := models.MenuItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpsertLocationOverride creates or replaces the single override row for
// (tenant, item, location)
func (r *MenuRepository) UpsertLocationOverride(ctx context.Context, override *menu.LocationOverride) error {
	now := time.Now()
	model := &models.MenuItemLocationModel{
		TenantID:       override.TenantID,
		ItemID:         override.ItemID,
		LocationID:     override.LocationID,
		PriceOverride:  override.PriceOverride,
		ActiveOverride: override.ActiveOverride,
	}
	model.ID = uuid.New()
	model.CreatedAt = now
	model.UpdatedAt = now

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "item_id"}, {Name: "location_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"price_override", "active_override", "updated_at"}),
	}).Create(model).Error
}

// UpsertGroupLink attaches a variant group template to an item, or
// updates the attachment's active override
func (r *MenuRepository) UpsertGroupLink(ctx context.Context, link *menu.ItemVariantGroupLink) error {
	now := time.Now()
	model := &models.ItemVariantGroupModel{
		TenantID:        link.TenantID,
		ItemID:          link.ItemID,
		GroupTemplateID: link.GroupTemplateID,
		ActiveOverride:  link.ActiveOverride,
	}
	model.ID = uuid.New()
	model.CreatedAt = now
	model.UpdatedAt = now

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "item_id"}, {Name: "group_template_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"active_override", "updated_at"}),
	}).Create(model).Error
}

// DeleteGroupLink detaches a variant group template from an item
func (r *MenuRepository) DeleteGroupLink(ctx context.Context, tenantID, itemID, groupTemplateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ? AND item_id = ? AND group_template_id = ?", tenantID, itemID, groupTemplateID).
		Delete(&models.ItemVariantGroupModel{}).Error
}

// UpsertOptionOverride creates or replaces the per-item override row for
// one variant option template
func (r *MenuRepository) UpsertOptionOverride(ctx context.Context, override *menu.ItemVariantOptionOverride) error {
	now := time.Now()
	model := &models.ItemVariantOptionModel{
		TenantID:           override.TenantID,
		ItemID:             override.ItemID,
		GroupTemplateID:    override.GroupTemplateID,
		OptionTemplateID:   override.OptionTemplateID,
		ActiveOverride:     override.ActiveOverride,
		PriceDeltaOverride: override.PriceDeltaOverride,
	}
	model.ID = uuid.New()
	model.CreatedAt = now
	model.UpdatedAt = now

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "item_id"}, {Name: "option_template_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"group_template_id", "active_override", "price_delta_override", "updated_at"}),
	}).Create(model).Error
}

// FindGroupTemplateByID retrieves a variant group template. Returns nil
// without error when the template does not exist.
func (r *MenuRepository) FindGroupTemplateByID(ctx context.Context, id uuid.UUID) (*menu.VariantGroupTemplate, error) {
	var model models.VariantGroupTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveGroupTemplate persists a new variant group template
func (r *MenuRepository) SaveGroupTemplate(ctx context.Context, tpl *menu.VariantGroupTemplate) error {
	model := models.VariantGroupTemplateModelFromDomain(tpl)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindOptionTemplateByID retrieves a variant option template. Returns nil
// without error when the template does not exist.
func (r *MenuRepository) FindOptionTemplateByID(ctx context.Context, id uuid.UUID) (*menu.VariantOptionTemplate, error) {
	var model models.VariantOptionTemplateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveOptionTemplate persists a new variant option template
func (r *MenuRepository) SaveOptionTemplate(ctx context.Context, tpl *menu.VariantOptionTemplate) error {
	model := models.VariantOptionTemplateModelFromDomain(tpl)
	return r.db.WithContext(ctx).Create(model).Error
}
