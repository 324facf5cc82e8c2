package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/catalog-lab/catalog-api/internal/router"
	"github.com/catalog-lab/catalog-api/internal/store"
)

// Handler adapts Fiber requests into the transport-neutral router
// envelope and writes the response back verbatim.
type Handler struct {
	router *router.Router
	store  store.Store
	logger *zap.Logger
}

// NewHandler creates a Handler over the router. The store is only used
// for health checks.
func NewHandler(rt *router.Router, st store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{router: rt, store: st, logger: logger}
}

// Dispatch translates the Fiber context into a router.Request and relays
// the envelope. All routing decisions live in the router.
func (h *Handler) Dispatch(c *fiber.Ctx) error {
	req := router.Request{
		Method: c.Method(),
		Path:   c.Path(),
		QueryParameters: map[string]string{
			"limit":  c.Query("limit"),
			"cursor": c.Query("cursor"),
		},
		Body: string(c.Body()),
	}
	if id := c.Params("id"); id != "" {
		req.PathParameters = map[string]string{"id": id}
	}

	resp := h.router.Handle(c.Context(), req)

	for k, v := range resp.Headers {
		c.Set(k, v)
	}
	return c.Status(resp.StatusCode).SendString(resp.Body)
}

// Health reports backend reachability.
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	if err := h.store.HealthCheck(ctx); err != nil {
		h.logger.Warn("api.health.store_unreachable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}
