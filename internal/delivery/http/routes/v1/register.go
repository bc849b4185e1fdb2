package v1

import (
	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/handler"
	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/pkg/jwt"
	"jobbify/internal/usecase"
)

type Deps struct {
	JWT    jwt.Service
	Auth   usecase.AuthUsecase
	Feed   *usecase.Feed
	Recs   *usecase.Recommendations
	Swipes *usecase.Swipes
	Prefs  *usecase.Preferences
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(d.JWT)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(d.Auth).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	jobsGroup := protected.Group("/jobs")
	handler.NewFeedHandler(d.Feed).RegisterRoutes(jobsGroup)

	recsGroup := protected.Group("/recommendations")
	handler.NewRecommendationHandler(d.Recs).RegisterRoutes(recsGroup)

	swipesGroup := protected.Group("/swipes")
	handler.NewSwipeHandler(d.Swipes).RegisterRoutes(swipesGroup)

	prefsGroup := protected.Group("/preferences")
	handler.NewPreferencesHandler(d.Prefs).RegisterRoutes(prefsGroup)
}
