package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/casa-moreno/catalog-system/docs"
	"github.com/casa-moreno/catalog-system/internal/api/handler"
	"github.com/casa-moreno/catalog-system/internal/api/middleware"
	"github.com/casa-moreno/catalog-system/internal/core/domain"
	"github.com/casa-moreno/catalog-system/internal/core/service"
	"github.com/casa-moreno/catalog-system/internal/infrastructure/client"
	mongodb "github.com/casa-moreno/catalog-system/internal/infrastructure/db/mongo"
	redisdb "github.com/casa-moreno/catalog-system/internal/infrastructure/db/redis"
	"github.com/casa-moreno/catalog-system/internal/infrastructure/gateway"
	"github.com/casa-moreno/catalog-system/internal/infrastructure/notifier"
	"github.com/casa-moreno/catalog-system/internal/pkg/breaker"
	"github.com/casa-moreno/catalog-system/internal/pkg/config"
)

// NewRouter builds the Echo instance with all dependencies wired and all
// routes registered. baseCtx bounds the lifetime of background sync tasks.
func NewRouter(baseCtx context.Context, cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Infrastructure ---
	accounts := mongodb.NewAccountStore(db)
	products := mongodb.NewProductRepository(db)
	throttle := redisdb.NewResetThrottle(rdb, 0)
	mailer := notifier.NewPostmarkNotifier(cfg.Postmark.ServerToken, cfg.Postmark.From, cfg.Postmark.ResetBaseURL, log)

	breakers := breaker.NewRegistry(breaker.Settings{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		RecoveryTimeout:  cfg.Breaker.RecoveryTimeout,
	})
	scraperClient := client.NewScraperClient(cfg.Scraper.URL, cfg.Scraper.Timeout)
	scraperGateway := gateway.NewScraperGateway(scraperClient, breakers, log)

	// --- Services ---
	coordinator := service.NewSyncCoordinator(baseCtx, log)
	authService := service.NewAuthService(accounts, mailer, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := service.NewUserService(accounts, mailer, throttle, log)
	productService := service.NewProductService(products, scraperGateway, coordinator, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)

	authRequired := middleware.Auth(cfg.JWTSecret)
	adminOnly := middleware.RequireProfile(domain.ProfileAdmin)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/oauth/complete", authHandler.CompleteOAuth)

	// --- Users ---
	e.POST("/users", userHandler.Create)
	e.POST("/users/forgot-password", userHandler.ForgotPassword)
	e.POST("/users/reset-password", userHandler.ResetPassword)
	e.GET("/users", userHandler.List, authRequired, adminOnly)
	e.GET("/users/username/:username", userHandler.GetByUsername, authRequired)
	e.PUT("/users", userHandler.Update, authRequired)
	e.DELETE("/users/:id", userHandler.Delete, authRequired)

	// --- Products ---
	e.GET("/products/find-by-category", productHandler.FindByCategory)
	e.GET("/products/categories", productHandler.ListCategories)
	e.GET("/products/promotional", productHandler.ListPromotional)
	e.GET("/products/list-all", productHandler.ListAll, authRequired, adminOnly)
	e.POST("/products", productHandler.Create, authRequired, adminOnly)
	e.POST("/products/sync", productHandler.StartSync, authRequired, adminOnly)
	e.GET("/products/sync/:taskId", productHandler.SyncStatus, authRequired, adminOnly)
	e.GET("/products/:id", productHandler.GetByID)
	e.PUT("/products/:id", productHandler.Update, authRequired, adminOnly)
	e.DELETE("/products/:id", productHandler.Delete, authRequired, adminOnly)
	e.PATCH("/products/:id/promotional", productHandler.SetPromotional, authRequired, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
