package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/pkg/response"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    pinger
	redis pinger
}

func NewHealthHandler(db, redis pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

// Handle reports per-dependency status. Redis being down does not fail the
// check since the app serves without it; the database does.
func (h *HealthHandler) Handle(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	status := fiber.StatusOK
	deps := map[string]string{}

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			deps["database"] = "down"
			status = fiber.StatusServiceUnavailable
		} else {
			deps["database"] = "up"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			deps["redis"] = "down"
		} else {
			deps["redis"] = "up"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "degraded", deps)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, deps)
}
