package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/restobook/restobook/cmd/docs"
	portssvc "github.com/restobook/restobook/internal/core/ports/services"
	"github.com/restobook/restobook/internal/middleware"
	"github.com/restobook/restobook/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", GetHome)

	// Login endpoints are rate limited per client IP.
	loginLimiter := middleware.NewLoginLimiter(limiter.Rate{Period: time.Minute, Limit: 10})
	registerAuthRoutes(r, services, loginLimiter)
	registerGoogleOAuthRoutes(r, services)

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Reporting, billing and staff management are admin
// only; the POS surface (menu reads, orders) is open to any signed-in staff.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerMenuRoutes(v1, services.Menu)
	registerOrderRoutes(v1, services.Order)
	registerInventoryRoutes(v1, services.Inventory)

	admin := v1.Group("", middleware.RequireAdmin())
	registerJournalRoutes(admin, services.Accounting)
	registerReportingRoutes(admin, cfg, services.Accounting)
	registerPartyRoutes(admin, services.Party)
	registerBillingRoutes(admin, cfg, services.Billing)
	registerStaffRoutes(admin, services.Auth)
}

// setupSwaggerRoutes configures the swagger documentation routes.
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
