package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/dto"
	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/pkg/response"
	"jobbify/internal/usecase"
)

type RecommendationHandler struct {
	uc *usecase.Recommendations
}

func NewRecommendationHandler(uc *usecase.Recommendations) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.HandleCompute)
	r.Get("/history", h.HandleHistory)
}

// HandleCompute scores the current feed against the caller's preferences.
// POST because it recomputes and persists, not a cacheable read.
func (h *RecommendationHandler) HandleCompute(c fiber.Ctx) error {
	var req dto.RecommendationsRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		if problems := dto.Validate(req); problems != nil {
			return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", problems, nil)
		}
	}

	res, err := h.uc.GetRecommendations(c.Context(), middleware.UserID(c), usecase.RecommendationOptions{
		Search:   req.Search,
		Limit:    req.Limit,
		MinScore: req.MinScore,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *RecommendationHandler) HandleHistory(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 20)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	items, err := h.uc.History(c.Context(), middleware.UserID(c), limit)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
