package routes

import (
	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/handler"
	v1 "jobbify/internal/delivery/http/routes/v1"
	"jobbify/internal/ws"
)

type Registry struct {
	Health *handler.HealthHandler
	WS     *ws.Handler
	V1     v1.Deps
}

func (r Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.WS != nil {
		app.Get("/ws/feed", r.WS.HandleFeedWS)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.V1)
}
