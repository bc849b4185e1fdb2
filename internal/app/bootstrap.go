package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/config"
	"jobbify/internal/delivery/http/handler"
	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/delivery/http/routes"
	v1 "jobbify/internal/delivery/http/routes/v1"
	"jobbify/internal/ws"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, mounts middleware and routes, and returns
// the app plus a cleanup closing every owned resource.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	routes.Registry{
		Health: handler.NewHealthHandler(c.DB, c.Redis),
		WS:     ws.NewHandler(c.Hub, logger),
		V1: v1.Deps{
			JWT:    c.JWT,
			Auth:   c.AuthUC,
			Feed:   c.FeedUC,
			Recs:   c.RecsUC,
			Swipes: c.SwipeUC,
			Prefs:  c.PrefsUC,
		},
	}.Register(f)

	if err := c.Janitor.Start(); err != nil {
		_ = c.Close()
		return nil, nil, err
	}

	return &App{Fiber: f, Container: c}, c.Close, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
