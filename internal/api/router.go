package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/openshelf/library-system/internal/api/handler"
	"github.com/openshelf/library-system/internal/api/middleware"
	"github.com/openshelf/library-system/internal/core/domain"
	"github.com/openshelf/library-system/internal/core/service"
	"github.com/openshelf/library-system/internal/infrastructure/config"
	mongorepo "github.com/openshelf/library-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/openshelf/library-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(client *mongodriver.Client, db *mongodriver.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("library"))

	// --- Dependencies ---
	authRepo := mongorepo.NewAuthRepository(db)
	bookRepo := mongorepo.NewBookRepository(db)
	loanRepo := mongorepo.NewLoanRepository(client, db)
	tokenStore := redisinfra.NewTokenStore(rdb)

	authService := service.NewAuthService(authRepo, tokenStore, cfg.JWTSecret, cfg.TokenTTL, log)
	bookService := service.NewBookService(bookRepo, log)
	loanService := service.NewLoanService(loanRepo, bookRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(bookService)
	loanHandler := handler.NewLoanHandler(loanService)

	authMW := middleware.Auth(cfg.JWTSecret, tokenStore)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)

	// --- Catalog ---
	books := e.Group("/v1/books", authMW)
	books.GET("", bookHandler.List)
	books.GET("/search", bookHandler.Search)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Create, adminOnly)

	// --- Loan lifecycle ---
	loans := e.Group("/v1/loans", authMW)
	loans.POST("", loanHandler.Create)
	loans.GET("", loanHandler.List)
	loans.POST("/:id/approve", loanHandler.Approve, adminOnly)
	loans.POST("/:id/return", loanHandler.Return, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
