package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/poskit/pos-gateway/internal/api/http/handlers"
	"github.com/poskit/pos-gateway/internal/auth"
	"github.com/poskit/pos-gateway/internal/domain"
	"github.com/poskit/pos-gateway/internal/session"
)

var proxyMethods = []string{
	fiber.MethodGet,
	fiber.MethodPost,
	fiber.MethodPut,
	fiber.MethodPatch,
	fiber.MethodDelete,
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Proxy        *handlers.ProxyHandler
	Nav          *handlers.NavHandler
	RecentOrders *handlers.RecentOrdersHandler
	Audit        *handlers.AuditHandler
	Pages        *handlers.PageHandler
	Guard        *auth.EdgeGuard
	Verifier     auth.Verifier
	Cookies      *session.Cookies
	WebDir       string
}

// RegisterRoutes wires HTTP routes. The edge guard runs for every request
// and lets public prefixes through untouched.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Handle)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	if cfg.WebDir != "" {
		app.Static("/static", cfg.WebDir)
	}

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Get("/me", cfg.Auth.Me)

	for _, method := range proxyMethods {
		api.Add(method, "/proxy", cfg.Proxy.Forward)
		api.Add(method, "/proxy/*", cfg.Proxy.Forward)
	}

	// nav only shapes the UI; anything keyed on or gated by identity is
	// confirmed with the backend first
	identified := auth.RequireIdentity(cfg.Cookies)
	verified := auth.RequireVerifiedIdentity(cfg.Cookies, cfg.Verifier)
	api.Get("/nav", identified, cfg.Nav.Get)
	api.Get("/recent-orders", verified, cfg.RecentOrders.List)
	api.Post("/recent-orders", verified, cfg.RecentOrders.Add)
	api.Delete("/recent-orders", verified, cfg.RecentOrders.Clear)
	api.Delete("/recent-orders/:id", verified, cfg.RecentOrders.Remove)
	api.Get("/audit", verified, auth.RequireRole(domain.RoleAdmin), cfg.Audit.List)

	app.Get(auth.LoginPath, cfg.Pages.Login)
	app.Get(auth.UnauthorizedPath, cfg.Pages.Unauthorized)
	app.Get("/", cfg.Pages.Root)
	for _, page := range handlers.Pages {
		app.Get(page.Path, cfg.Pages.Screen(page))
	}
}
