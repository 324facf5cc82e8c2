package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires the catalog surface plus health, metrics, and the
// optional static frontend. Unmatched routes fall through to Dispatch so
// the router renders its own unsupported-route envelope.
func RegisterRoutes(app *fiber.App, h *Handler, staticDir string) {
	app.Use(RequestID())

	app.Get("/health", h.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Options("/*", h.Dispatch)
	app.Post("/products", h.Dispatch)
	app.Get("/products", h.Dispatch)
	app.Get("/products/:id", h.Dispatch)
	app.Put("/products/:id", h.Dispatch)
	app.Delete("/products/:id", h.Dispatch)

	if staticDir != "" {
		app.Static("/", staticDir)
	}

	app.Use(h.Dispatch)
}
