package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sabaihub/booking-web/internal/api/handler"
	"github.com/sabaihub/booking-web/internal/api/middleware"
	"github.com/sabaihub/booking-web/internal/core/ports"
	"github.com/sabaihub/booking-web/internal/core/service"
	"github.com/sabaihub/booking-web/internal/infrastructure/backend"
	"github.com/sabaihub/booking-web/internal/infrastructure/config"
	"github.com/sabaihub/booking-web/web"
)

// Dependencies carries everything the router needs wired in. Redis may be nil
// when caching is disabled; the caches must then be no-op implementations.
type Dependencies struct {
	Backend      *backend.Client
	Redis        *redis.Client
	SessionCache ports.SessionCache
	CatalogCache ports.CatalogCache
	Config       *config.Config
	Logger       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Renderer = handler.NewRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("bookingweb"))
	e.Use(middleware.EdgeRedirect("/dashboard", "/booking/"))
	e.Use(middleware.SessionResolver(middleware.SessionDeps{
		Auth:    deps.Backend,
		Cache:   deps.SessionCache,
		TTLDays: deps.Config.Session.CookieTTLDays,
		Logger:  deps.Logger,
	}))

	// --- Dependencies ---
	catalogService := service.NewCatalogService(deps.Backend, deps.CatalogCache, deps.Logger)

	pageHandler := handler.NewPageHandler(catalogService, deps.Logger)
	authHandler := handler.NewAuthHandler()
	bookingHandler := handler.NewBookingHandler(catalogService, deps.Backend, deps.Logger)
	dashboardHandler := handler.NewDashboardHandler(deps.Backend, deps.Logger)
	adminHandler := handler.NewAdminHandler(catalogService, deps.Logger)

	// --- Public pages ---
	e.GET("/", pageHandler.Home)
	e.GET("/auth/login", authHandler.LoginPage)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/signup", authHandler.SignupPage)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/logout", authHandler.Logout)

	e.StaticFS("/static", echo.MustSubFS(web.Static, "static"))

	// --- Member pages ---
	booking := e.Group("/booking", middleware.RouteGuard(false))
	booking.GET("/:id", bookingHandler.Show)
	booking.POST("/:id", bookingHandler.Create)

	dashboard := e.Group("/dashboard", middleware.RouteGuard(false))
	dashboard.GET("", dashboardHandler.Dashboard)
	dashboard.POST("/reservations/:id", dashboardHandler.Update)
	dashboard.POST("/reservations/:id/delete", dashboardHandler.Cancel)

	// --- Admin pages ---
	admin := e.Group("/admin", middleware.RouteGuard(true))
	admin.GET("/shops", adminHandler.Shops)
	admin.POST("/shops", adminHandler.Create)
	admin.POST("/shops/:id", adminHandler.Update)
	admin.POST("/shops/:id/delete", adminHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Backend, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
