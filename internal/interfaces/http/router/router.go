package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/mesafacil/backend/internal/application/identity"
	appmenu "github.com/mesafacil/backend/internal/application/menu"
	"github.com/mesafacil/backend/internal/application/policy"
	"github.com/mesafacil/backend/internal/interfaces/http/handler"
	"github.com/mesafacil/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies holds the services the HTTP surface is built on
type Dependencies struct {
	Logger  *zap.Logger
	Policy  *policy.Service
	Tenants *appidentity.TenantService
	Menus   *appmenu.Service
}

// New builds the gin engine with all routes and middleware wired.
//
// Two route families exist: platform endpoints under /api/v1/tenants,
// which identify the tenant by path and are not quota-counted, and
// tenant-scoped endpoints, which require the X-Tenant-ID header and pass
// through the rate limit middleware on every request.
func New(deps Dependencies) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(deps.Logger),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	handler.NewTenantHandler(deps.Tenants, deps.Policy).RegisterRoutes(api)

	tenantAPI := api.Group("")
	tenantAPI.Use(middleware.Tenant(), middleware.RateLimit(deps.Policy))

	handler.NewMenuHandler(deps.Menus, deps.Policy).RegisterRoutes(tenantAPI, deps.Policy)
	handler.NewPolicyHandler(deps.Policy).RegisterRoutes(tenantAPI)

	return engine
}
