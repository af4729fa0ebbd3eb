package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sktech/account-gateway/internal/api/handler"
	"github.com/sktech/account-gateway/internal/api/middleware"
	"github.com/sktech/account-gateway/internal/core/domain"
	"github.com/sktech/account-gateway/internal/core/service"
	mongodb "github.com/sktech/account-gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/sktech/account-gateway/internal/infrastructure/db/redis"
	"github.com/sktech/account-gateway/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	audit handler.AuditDispatcher,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("account_gateway"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)

	signer := service.NewHMACRedirectSigner(cfg.SecretKey)
	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, 24*time.Hour)
	dispatchService := service.NewDispatchService(companyRepo, signer, cfg.WebappURL, log)
	accountService := service.NewAccountService(accountRepo, companyRepo, log)
	companyService := service.NewCompanyService(companyRepo, accountRepo, log)
	throttle := redisdb.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window)

	connectionHandler := handler.NewConnectionHandler(authService, dispatchService, throttle, audit, log)
	accountHandler := handler.NewAccountHandler(accountService)
	companyHandler := handler.NewCompanyHandler(companyService)

	authMiddleware := middleware.Auth(cfg.JWTSecret)
	adminRole := string(domain.RoleAdministrator)

	// --- Login dispatcher ---
	e.POST("/auth/login", connectionHandler.Login)

	// --- Admin surface ---
	v1 := e.Group("/v1", authMiddleware)
	v1.POST("/accounts", accountHandler.Create, middleware.StaffOnly())
	v1.GET("/accounts", accountHandler.List, middleware.StaffOrRoles(adminRole))
	v1.POST("/companies", companyHandler.Create, middleware.StaffOrRoles(adminRole))
	v1.GET("/companies", companyHandler.List, middleware.StaffOrRoles(adminRole))
	v1.GET("/companies/:id", companyHandler.Get, middleware.StaffOrRoles(adminRole))
	v1.PUT("/companies/:id", companyHandler.Update, middleware.StaffOrRoles(adminRole))
	v1.DELETE("/companies/:id", companyHandler.Delete, middleware.StaffOrRoles(adminRole))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
