package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velora/commerce-system/internal/api/handler"
	"github.com/velora/commerce-system/internal/api/metrics"
	"github.com/velora/commerce-system/internal/api/middleware"
	"github.com/velora/commerce-system/internal/core/ports"
	"github.com/velora/commerce-system/internal/core/service"
	"github.com/velora/commerce-system/internal/infrastructure/config"
	mongodb "github.com/velora/commerce-system/internal/infrastructure/db/mongo"
	redisdb "github.com/velora/commerce-system/internal/infrastructure/db/redis"
	"github.com/velora/commerce-system/internal/infrastructure/storage"
	"github.com/velora/commerce-system/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditEnqueuer, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("commerce"))
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session core ---
	classifier := session.NewClassifier(session.ClassifierConfig{
		UserCookieName:  cfg.Session.UserCookieName,
		AdminCookieName: cfg.Session.AdminCookieName,
		UserOrigin:      cfg.Session.UserOrigin,
		AdminOrigin:     cfg.Session.AdminOrigin,
	})

	sanitizer := session.NewSanitizer(redisdb.NewSessionStore(rdb), log)
	sanitizer.OnHeal(func(ns session.Namespace) {
		metrics.SessionsHealedTotal.WithLabelValues(string(ns)).Inc()
	})

	sessions, err := session.NewManager(sanitizer, log, session.Options{
		User:       session.NamespaceConfig{CookieName: cfg.Session.UserCookieName, Secret: cfg.Session.UserSecret},
		Admin:      session.NamespaceConfig{CookieName: cfg.Session.AdminCookieName, Secret: cfg.Session.AdminSecret},
		MaxAge:     cfg.Session.MaxAge,
		Production: cfg.IsProduction(),
	})
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	sessions.OnCreate(func(ns session.Namespace) {
		metrics.SessionsCreatedTotal.WithLabelValues(string(ns)).Inc()
	})

	e.Use(middleware.Session(classifier, sessions, log))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	orderRepo := mongodb.NewOrderRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)

	uploads, err := storage.NewGridFSStore(db)
	if err != nil {
		return nil, fmt.Errorf("upload storage: %w", err)
	}

	authService := service.NewAuthService(userRepo, log)
	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(orderRepo, productRepo, audit, log)
	analyticsService := service.NewAnalyticsService(analyticsRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService, sessions)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService, auditRepo)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	uploadHandler := handler.NewUploadHandler(uploads)

	requireUser := middleware.RequireUser(authService)
	requireAdmin := middleware.RequireAdmin(authService)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/admin/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me)
	e.GET("/auth/status", authHandler.Status)
	e.GET("/auth/admin/status", authHandler.Status)

	// --- Storefront routes ---
	e.GET("/products", catalogHandler.List)
	e.GET("/products/:id", catalogHandler.Get)
	e.GET("/uploads/:id", uploadHandler.Get)

	e.POST("/orders", orderHandler.Create, requireUser)
	e.GET("/orders", orderHandler.List, requireUser)
	e.GET("/orders/:number", orderHandler.Get, requireUser)
	e.POST("/orders/:number/payment", orderHandler.SubmitPayment, requireUser)
	e.POST("/uploads", uploadHandler.Upload, requireUser)

	// --- Admin routes ---
	admin := e.Group("/admin", requireAdmin)
	admin.GET("/products", catalogHandler.AdminList)
	admin.POST("/products", catalogHandler.Create)
	admin.PUT("/products/:id", catalogHandler.Update)
	admin.DELETE("/products/:id", catalogHandler.Delete)

	admin.GET("/orders", orderHandler.AdminList)
	admin.GET("/orders/:number", orderHandler.AdminGet)
	admin.POST("/orders/:number/verify", orderHandler.Verify)
	admin.POST("/orders/:number/reject", orderHandler.Reject)
	admin.GET("/orders/:number/audit", orderHandler.AuditTrail)

	admin.POST("/uploads", uploadHandler.Upload)
	admin.GET("/analytics/summary", analyticsHandler.Summary)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
