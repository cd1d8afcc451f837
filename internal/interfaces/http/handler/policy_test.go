package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mesafacil/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

func newPolicyTestRouter(checker middleware.FeatureChecker) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Tenant())
	NewPolicyHandler(checker).RegisterRoutes(router.Group("/"))
	return router
}

func policyRequest(router *gin.Engine, feature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/policy/features/"+feature, nil)
	req.Header.Set(middleware.TenantHeaderKey, uuid.New().String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPolicyHandler_CheckFeature(t *testing.T) {
	t.Run("reports an allowed feature", func(t *testing.T) {
		router := newPolicyTestRouter(allowAllChecker{})

		w := policyRequest(router, "reports")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":true`)
	})

	t.Run("a denial is a 200 with the reason", func(t *testing.T) {
		router := newPolicyTestRouter(denyAllChecker{})

		w := policyRequest(router, "reports")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":false`)
		assert.Contains(t, w.Body.String(), `"required_tier":"pro"`)
	})

	t.Run("rejects unknown feature keys", func(t *testing.T) {
		router := newPolicyTestRouter(allowAllChecker{})

		w := policyRequest(router, "teleportation")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
