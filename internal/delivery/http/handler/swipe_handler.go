package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/dto"
	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/domain/swipe"
	"jobbify/internal/pkg/response"
	"jobbify/internal/usecase"
)

type SwipeHandler struct {
	uc *usecase.Swipes
}

func NewSwipeHandler(uc *usecase.Swipes) *SwipeHandler {
	return &SwipeHandler{uc: uc}
}

func (h *SwipeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.HandleSwipe)
	r.Get("/", h.HandleHistory)
}

func (h *SwipeHandler) HandleSwipe(c fiber.Ctx) error {
	var req dto.SwipeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", problems, nil)
	}

	err := h.uc.Record(c.Context(), middleware.UserID(c), usecase.SwipeInput{
		JobID:       req.JobID,
		Direction:   swipe.Direction(req.Direction),
		JobTitle:    req.JobTitle,
		JobCompany:  req.JobCompany,
		JobLocation: req.JobLocation,
		JobTags:     req.JobTags,
		MatchScore:  req.MatchScore,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SwipeHandler) HandleHistory(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	records, err := h.uc.History(c.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, records)
}
