package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/makersmarket/marketplace-api/docs"
	"github.com/makersmarket/marketplace-api/internal/api/handler"
	"github.com/makersmarket/marketplace-api/internal/api/middleware"
	"github.com/makersmarket/marketplace-api/internal/core/domain"
	"github.com/makersmarket/marketplace-api/internal/core/service"
	mongostore "github.com/makersmarket/marketplace-api/internal/infrastructure/db/mongo"
	redisstore "github.com/makersmarket/marketplace-api/internal/infrastructure/db/redis"
	"github.com/makersmarket/marketplace-api/internal/infrastructure/http/handlers"
	"github.com/makersmarket/marketplace-api/internal/pkg/config"
	"github.com/makersmarket/marketplace-api/web"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	productRepo := mongostore.NewProductRepository(db)
	sessions := redisstore.NewSessionStore(rdb, cfg.Session.TTL)

	accountService := service.NewAccountService(userRepo, cfg.JWTSecret, cfg.Session.TTL, log)
	catalogService := service.NewCatalogService(productRepo, log)

	authHandler := handler.NewAuthHandler(accountService, sessions, cfg.Session.TTL)
	accountHandler := handler.NewAccountHandler(accountService, cfg.PublicBaseURL)
	adminHandler := handler.NewAdminHandler(accountService)
	productHandler := handler.NewProductHandler(catalogService)

	sessionRequired := middleware.Session(sessions, userRepo, cfg.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Public surface ---
	e.GET("/", func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, web.Index)
	})
	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)

	// --- Session-protected surface ---
	session := e.Group("/api", sessionRequired)
	session.GET("/logout", authHandler.Logout)
	session.GET("/user", authHandler.Me)
	session.POST("/request_creator", accountHandler.RequestCreator)
	session.GET("/referral", accountHandler.Referral)
	session.GET("/products", productHandler.List)
	session.POST("/products", productHandler.Add)

	admin := session.Group("/admin", adminOnly)
	admin.POST("/approve_creator/:user_id", adminHandler.ApproveCreator)
	admin.GET("/users", adminHandler.ListUsers)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
