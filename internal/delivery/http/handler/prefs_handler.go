package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/dto"
	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/domain/prefs"
	"jobbify/internal/pkg/response"
	"jobbify/internal/usecase"
)

type PreferencesHandler struct {
	uc *usecase.Preferences
}

func NewPreferencesHandler(uc *usecase.Preferences) *PreferencesHandler {
	return &PreferencesHandler{uc: uc}
}

func (h *PreferencesHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.HandleGet)
	r.Put("/", h.HandleUpdate)
}

func (h *PreferencesHandler) HandleGet(c fiber.Ctx) error {
	res, err := h.uc.Get(c.Context(), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *PreferencesHandler) HandleUpdate(c fiber.Ctx) error {
	var req dto.PreferencesRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if problems := dto.Validate(req); problems != nil {
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Validation failed", problems, nil)
	}

	err := h.uc.Update(c.Context(), middleware.UserID(c), prefs.Preferences{
		Weights: prefs.Weights{
			Location: req.WeightLocation,
			Salary:   req.WeightSalary,
			Role:     req.WeightRole,
			Company:  req.WeightCompany,
		},
		Locations:           req.Locations,
		Roles:               req.Roles,
		Industries:          req.Industries,
		JobTypes:            req.JobTypes,
		RemotePreference:    prefs.RemotePreference(req.RemotePreference),
		MinSalary:           req.MinSalary,
		MaxSalary:           req.MaxSalary,
		SalaryNegotiable:    req.SalaryNegotiable,
		WillingToRelocate:   req.WillingToRelocate,
		ExperienceLevel:     req.ExperienceLevel,
		AutoLearnFromSwipes: req.AutoLearnFromSwipes,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
