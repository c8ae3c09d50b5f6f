package api

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/zafiro/crm/internal/api/handler"
	"github.com/zafiro/crm/internal/api/middleware"
	"github.com/zafiro/crm/internal/core/domain"
	"github.com/zafiro/crm/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers and middlewares.
type Deps struct {
	Logger  zerolog.Logger
	Auth    ports.AuthService
	Access  ports.AccessService
	Clients ports.ClientService
	Checks  map[string]handler.Check
	Cookie  handler.CookieConfig

	// Registerer and Gatherer back the HTTP metrics. They default to the
	// global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "crm",
		Registerer: d.Registerer,
		Skipper:    skipProbes,
	}))

	// --- Handlers ---
	healthHandler := handler.NewHealthHandler(d.Checks)
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	pageHandler := handler.NewPageHandler()
	clientHandler := handler.NewClientHandler(d.Clients)
	adminHandler := handler.NewAdminHandler(d.Access)

	gate := middleware.SessionGate(d.Auth, d.Cookie.Name)
	resolve := middleware.ResolveUser(d.Access)
	can := func(r domain.Resource, a domain.Action) echo.MiddlewareFunc {
		return middleware.RequirePermission(d.Access, r, a)
	}

	// --- Probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Session ---
	e.GET(middleware.LoginPath, authHandler.LoginPage)
	e.POST(middleware.LoginPath, authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, gate)

	// --- Redirect destinations ---
	e.GET(middleware.UnauthorizedPath, pageHandler.Unauthorized)
	e.GET(middleware.NotFoundPath, pageHandler.NotFound)

	e.GET("/me", pageHandler.Me, gate, resolve)

	// --- CRM pages ---
	crm := e.Group("/crm", gate, resolve)
	crm.GET("/clients", clientHandler.List, can(domain.ResourceClients, domain.ActionRead))
	crm.POST("/clients", clientHandler.Create, can(domain.ResourceClients, domain.ActionCreate))
	crm.GET("/clients/:id", clientHandler.Get, can(domain.ResourceClients, domain.ActionRead))
	crm.PATCH("/clients/:id", clientHandler.Update, can(domain.ResourceClients, domain.ActionUpdate))
	crm.DELETE("/clients/:id", clientHandler.Delete, can(domain.ResourceClients, domain.ActionDelete))

	// --- Administration ---
	admin := e.Group("/admin", gate, resolve, middleware.RequireRole(d.Access, domain.RoleAdmin))
	admin.PUT("/users/:id/role", adminHandler.UpdateRole)

	return e
}

func skipProbes(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger/")
}
