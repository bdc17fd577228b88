package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freedalab/ticketflow/internal/api/http/handlers"
	"github.com/freedalab/ticketflow/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Auth           *handlers.AuthHandler
	AuthMiddleware *auth.Middleware
	AuthEnabled    bool
}

// RegisterRoutes wires HTTP routes. The read path is public; mutating
// routes go through the auth middleware when auth is enabled.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.Token)

	app.Get("/tickets", cfg.Tickets.ListTickets)

	protected := app.Group("")
	if cfg.AuthEnabled {
		protected = app.Group("", cfg.AuthMiddleware.Handle)
	}
	protected.Put("/tickets/:id/status", cfg.Tickets.UpdateStatus)
	protected.Post("/refresh", cfg.Tickets.Refresh)
}
