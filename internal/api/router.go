package api

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/itemdesk/item-registry/internal/api/handler"
	"github.com/itemdesk/item-registry/internal/api/middleware"
	"github.com/itemdesk/item-registry/internal/core/ports"
)

// Deps carries everything the router needs; services are constructed in
// cmd/server and injected here so seeding and routing share one wiring.
type Deps struct {
	Logger    zerolog.Logger
	Auth      ports.AuthService
	Items     ports.ItemService
	Users     ports.UserService
	Sessions  ports.SessionStore
	CookieTTL time.Duration
	DB        *pgxpool.Pool
	Redis     *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("item_registry"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.CookieTTL)
	itemHandler := handler.NewItemHandler(d.Items, d.Sessions)
	userHandler := handler.NewUserHandler(d.Users, d.Sessions)

	sessionMW := middleware.Session(d.Auth)
	adminMW := middleware.AdminOnly(d.Sessions)

	// --- Unauthenticated flows ---
	e.GET("/login", authHandler.LoginPage)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.RegisterPage)
	e.POST("/register", authHandler.Register)
	e.GET("/logout", authHandler.Logout)

	// --- Item listing ---
	e.GET("/", itemHandler.List, sessionMW)
	e.POST("/", itemHandler.Mutate, sessionMW)

	// --- User management (admin only) ---
	e.GET("/users", userHandler.List, sessionMW, adminMW)
	e.POST("/users", userHandler.Mutate, sessionMW, adminMW)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
