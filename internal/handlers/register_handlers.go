package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/kelvinbaffour/branchledger/cmd/docs"
	portssvc "github.com/kelvinbaffour/branchledger/internal/core/ports/services"
	"github.com/kelvinbaffour/branchledger/internal/dto"
	"github.com/kelvinbaffour/branchledger/internal/middleware"
	"github.com/kelvinbaffour/branchledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.Use(cors.Default())
	dto.RegisterCustomValidations()

	// Health check and Prometheus scrape endpoints stay outside auth
	r.GET("/healthz", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Callers are the branch back-office services; their JWTs are minted by the
	// platform's auth service.
	rate, _ := limiter.NewRateFromFormatted("300-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	v1 := r.Group("/api/v1", middleware.RateLimit(ipLimiter), middleware.AuthMiddleware(cfg.JWTSecret))

	registerGLAccountRoutes(v1, services.Registry)
	registerMappingRoutes(v1, services.Mapping)
	registerPostingRoutes(v1, services.Posting)
	registerReversalRoutes(v1, services.Reversal)
	registerReconciliationRoutes(v1, services.Reconciliation)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
