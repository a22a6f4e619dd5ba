package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountsys/accounts-api/internal/api/handler"
	"github.com/accountsys/accounts-api/internal/api/middleware"
	"github.com/accountsys/accounts-api/internal/core/domain"
	"github.com/accountsys/accounts-api/internal/core/ports"
	"github.com/accountsys/accounts-api/internal/core/service"
	mongostore "github.com/accountsys/accounts-api/internal/infrastructure/db/mongo"
	redisstore "github.com/accountsys/accounts-api/internal/infrastructure/db/redis"
	"github.com/accountsys/accounts-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))

	// --- Dependencies ---
	var users ports.UserRepository = mongostore.NewUserRepository(db)
	users = redisstore.NewUserCache(rdb, users, cfg.CacheTTL, log)

	tokens := service.NewTokenService(cfg.JWTSecret)
	authService := service.NewAuthService(users, tokens)
	userService := service.NewUserService(users)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	authGate := middleware.Auth(tokens, users)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout, authGate)

	// --- User routes (all behind the gate) ---
	user := e.Group("/api/user", authGate)
	user.PUT("/userprofile", userHandler.UpdateProfile)
	user.GET("/users", userHandler.List)
	user.GET("/singleuser/:id", userHandler.GetSingle)
	user.DELETE("/deleteuser/:id", userHandler.Delete)
	user.PUT("/updateuser", userHandler.AdminUpdate, middleware.RequireRole(domain.RoleAdmin))
	user.POST("/add", userHandler.Add, middleware.RequireRole(domain.RoleAdmin))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
