package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cryptodata/crypto-data-api/internal/api/handler"
	"github.com/cryptodata/crypto-data-api/internal/api/middleware"
	"github.com/cryptodata/crypto-data-api/internal/core/domain"
	"github.com/cryptodata/crypto-data-api/internal/core/guard"
	"github.com/cryptodata/crypto-data-api/internal/core/ports"
	"github.com/cryptodata/crypto-data-api/internal/core/service"
	"github.com/cryptodata/crypto-data-api/internal/infrastructure/config"
	mongodb "github.com/cryptodata/crypto-data-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cryptodata/crypto-data-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, tokens ports.TokenService, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	marketRepo := mongodb.NewMarketRepository(db)

	// --- Services ---
	authService := service.NewAuthService(userRepo, tokens, service.RegistrationConfig{
		Enabled:     cfg.Registration.Enabled,
		Secret:      cfg.Registration.Secret,
		AdminSecret: cfg.Registration.AdminSecret,
	})
	userService := service.NewUserService(userRepo)
	auditService := service.NewAuditService(auditRepo, userRepo)
	marketService := service.NewMarketService(marketRepo, redisdb.NewSymbolsCache(rdb), log)

	// --- Guard chain and audit tail ---
	chain := guard.NewChain(tokens, userRepo)
	requireUser := middleware.Auth(chain, domain.RoleUser)
	requireAdmin := middleware.Auth(chain, domain.RoleAdmin)
	actors := middleware.NewActorResolver(tokens, userRepo)

	// --- Global middleware ---
	// The audit tail is registered first so it observes the final
	// response of every request, including panics recovered and errors
	// mapped further down the chain.
	e.Use(middleware.Audit(auditService, actors, log))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("cryptoapi"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(userService, auditService)
	marketHandler := handler.NewMarketHandler(marketService)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Login)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/me", authHandler.Me, requireUser)

	// --- Market data routes (active user) ---
	e.GET("/market/symbols", marketHandler.Symbols, requireUser)
	e.GET("/market/data/:symbol", marketHandler.Data, requireUser)

	// --- Admin routes ---
	e.GET("/admin/users", adminHandler.ListUsers, requireAdmin)
	e.GET("/admin/users/:id", adminHandler.GetUser, requireAdmin)
	e.PUT("/admin/users/:id/role", adminHandler.UpdateRole, requireAdmin)
	e.PUT("/admin/users/:id/deactivate", adminHandler.Deactivate, requireAdmin)
	e.GET("/admin/logs", adminHandler.ListLogs, requireAdmin)
	e.GET("/admin/stats", adminHandler.Stats, requireAdmin)
	e.GET("/admin/my-role", adminHandler.MyRole, requireUser)

	// --- Probes and metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)   // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
