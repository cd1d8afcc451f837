package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appmenu "github.com/mesafacil/backend/internal/application/menu"
	"github.com/mesafacil/backend/internal/application/policy"
	identitydomain "github.com/mesafacil/backend/internal/domain/identity"
	domain "github.com/mesafacil/backend/internal/domain/menu"
	"github.com/mesafacil/backend/internal/domain/shared"
	"github.com/mesafacil/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubMenuEditor struct {
	item         *domain.MenuItem
	override     *domain.LocationOverride
	link         *domain.ItemVariantGroupLink
	optOverride  *domain.ItemVariantOptionOverride
	group        *domain.VariantGroupTemplate
	option       *domain.VariantOptionTemplate
	err          error
	lastLocInput appmenu.SetLocationOverrideInput
}

func (s *stubMenuEditor) CreateItem(ctx context.Context, input appmenu.CreateItemInput) (*domain.MenuItem, error) {
	return s.item, s.err
}

func (s *stubMenuEditor) UpdateItem(ctx context.Context, input appmenu.UpdateItemInput) (*domain.MenuItem, error) {
	return s.item, s.err
}

func (s *stubMenuEditor) SetLocationOverride(ctx context.Context, input appmenu.SetLocationOverrideInput) (*domain.LocationOverride, error) {
	s.lastLocInput = input
	return s.override, s.err
}

func (s *stubMenuEditor) LinkVariantGroup(ctx context.Context, input appmenu.LinkVariantGroupInput) (*domain.ItemVariantGroupLink, error) {
	return s.link, s.err
}

func (s *stubMenuEditor) UnlinkVariantGroup(ctx context.Context, tenantID, itemID, groupTemplateID uuid.UUID) error {
	return s.err
}

func (s *stubMenuEditor) SetOptionOverride(ctx context.Context, input appmenu.SetOptionOverrideInput) (*domain.ItemVariantOptionOverride, error) {
	return s.optOverride, s.err
}

func (s *stubMenuEditor) CreateGroupTemplate(ctx context.Context, name string, position int, required bool, maxSelect int) (*domain.VariantGroupTemplate, error) {
	return s.group, s.err
}

func (s *stubMenuEditor) CreateOptionTemplate(ctx context.Context, groupTemplateID uuid.UUID, name string, priceDelta decimal.Decimal) (*domain.VariantOptionTemplate, error) {
	return s.option, s.err
}

type stubMenuProjector struct {
	entries    []policy.MenuEntry
	err        error
	locationID *uuid.UUID
}

func (s *stubMenuProjector) ResolveMenuProjection(ctx context.Context, tenantID uuid.UUID, locationID *uuid.UUID) ([]policy.MenuEntry, error) {
	s.locationID = locationID
	return s.entries, s.err
}

type allowAllChecker struct{}

func (allowAllChecker) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature identitydomain.FeatureKey) (identitydomain.AccessDecision, error) {
	return identitydomain.AccessDecision{Allowed: true, CurrentTier: identitydomain.TierPro}, nil
}

type denyAllChecker struct{}

func (denyAllChecker) CheckFeature(ctx context.Context, tenantID uuid.UUID, feature identitydomain.FeatureKey) (identitydomain.AccessDecision, error) {
	return identitydomain.AccessDecision{
		Allowed:      false,
		Reason:       `Feature "` + string(feature) + `" requires the Pro plan`,
		CurrentTier:  identitydomain.TierLight,
		RequiredTier: identitydomain.TierPro,
	}, nil
}

func newMenuTestRouter(editor MenuEditor, projector MenuProjector) *gin.Engine {
	return newGatedMenuTestRouter(editor, projector, allowAllChecker{})
}

func newGatedMenuTestRouter(editor MenuEditor, projector MenuProjector, checker middleware.FeatureChecker) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Tenant())
	NewMenuHandler(editor, projector).RegisterRoutes(router.Group("/"), checker)
	return router
}

func menuRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.TenantHeaderKey, uuid.New().String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestMenuHandler_GetMenu(t *testing.T) {
	t.Run("returns the resolved projection", func(t *testing.T) {
		projector := &stubMenuProjector{
			entries: []policy.MenuEntry{
				{ItemID: uuid.New(), Name: "Margherita", EffectivePrice: decimal.RequireFromString("12.50"), EffectiveActive: true},
			},
		}
		router := newMenuTestRouter(&stubMenuEditor{}, projector)

		w := menuRequest(router, http.MethodGet, "/menu", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Margherita")
		assert.Contains(t, w.Body.String(), "12.5")
		assert.Nil(t, projector.locationID)
	})

	t.Run("passes the location through", func(t *testing.T) {
		projector := &stubMenuProjector{entries: []policy.MenuEntry{}}
		router := newMenuTestRouter(&stubMenuEditor{}, projector)
		locationID := uuid.New()

		w := menuRequest(router, http.MethodGet, "/menu?location_id="+locationID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, projector.locationID)
		assert.Equal(t, locationID, *projector.locationID)
	})

	t.Run("rejects malformed location", func(t *testing.T) {
		router := newMenuTestRouter(&stubMenuEditor{}, &stubMenuProjector{})

		w := menuRequest(router, http.MethodGet, "/menu?location_id=nope", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps unknown tenant to 404", func(t *testing.T) {
		router := newMenuTestRouter(&stubMenuEditor{}, &stubMenuProjector{err: shared.ErrTenantNotFound})

		w := menuRequest(router, http.MethodGet, "/menu", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	})
}

func TestMenuHandler_CreateItem(t *testing.T) {
	tenantID := uuid.New()
	item, err := domain.NewMenuItem(tenantID, "Margherita", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	t.Run("creates an item", func(t *testing.T) {
		router := newMenuTestRouter(&stubMenuEditor{item: item}, &stubMenuProjector{})

		w := menuRequest(router, http.MethodPost, "/menu/items", gin.H{
			"name":       "Margherita",
			"base_price": "10.00",
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Margherita")
	})

	t.Run("rejects a body without a name", func(t *testing.T) {
		router := newMenuTestRouter(&stubMenuEditor{item: item}, &stubMenuProjector{})

		w := menuRequest(router, http.MethodPost, "/menu/items", gin.H{"base_price": "10.00"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("maps validation errors to 400", func(t *testing.T) {
		editor := &stubMenuEditor{err: shared.NewDomainError("INVALID_ITEM_PRICE", "Item price cannot be negative")}
		router := newMenuTestRouter(editor, &stubMenuProjector{})

		w := menuRequest(router, http.MethodPost, "/menu/items", gin.H{
			"name":       "Margherita",
			"base_price": "-1.00",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_VALIDATION")
	})
}

func TestMenuHandler_SetLocationOverride(t *testing.T) {
	itemID := uuid.New()
	locationID := uuid.New()

	t.Run("null fields stay nil on the way through", func(t *testing.T) {
		editor := &stubMenuEditor{override: &domain.LocationOverride{ItemID: itemID, LocationID: locationID}}
		router := newMenuTestRouter(editor, &stubMenuProjector{})

		w := menuRequest(router, http.MethodPut,
			"/menu/items/"+itemID.String()+"/locations/"+locationID.String(),
			gin.H{"active_override": false})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, editor.lastLocInput.PriceOverride)
		require.NotNil(t, editor.lastLocInput.ActiveOverride)
		assert.False(t, *editor.lastLocInput.ActiveOverride)
	})

	t.Run("maps missing item to 404", func(t *testing.T) {
		editor := &stubMenuEditor{err: shared.ErrNotFound}
		router := newMenuTestRouter(editor, &stubMenuProjector{})

		w := menuRequest(router, http.MethodPut,
			"/menu/items/"+itemID.String()+"/locations/"+locationID.String(),
			gin.H{"price_override": "12.50"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMenuHandler_FeatureGates(t *testing.T) {
	editor := &stubMenuEditor{}
	router := newGatedMenuTestRouter(editor, &stubMenuProjector{}, denyAllChecker{})

	t.Run("reading the menu is never gated", func(t *testing.T) {
		w := menuRequest(router, http.MethodGet, "/menu", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("editing is gated on the plan", func(t *testing.T) {
		w := menuRequest(router, http.MethodPost, "/menu/items", gin.H{
			"name":       "Margherita",
			"base_price": "10.00",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_FEATURE_DENIED")
	})
}

func TestMenuHandler_OptionOverrideMismatch(t *testing.T) {
	editor := &stubMenuEditor{err: shared.NewDomainError("OPTION_GROUP_MISMATCH", "Option does not belong to the given group")}
	router := newMenuTestRouter(editor, &stubMenuProjector{})

	w := menuRequest(router, http.MethodPut,
		"/menu/items/"+uuid.New().String()+"/variant-options/"+uuid.New().String(),
		gin.H{"group_template_id": uuid.New().String(), "active_override": false})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_BUSINESS_RULE")
}
