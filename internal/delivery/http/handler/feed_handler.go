package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"jobbify/internal/delivery/http/middleware"
	"jobbify/internal/pkg/response"
	"jobbify/internal/usecase"
)

type FeedHandler struct {
	uc *usecase.Feed
}

func NewFeedHandler(uc *usecase.Feed) *FeedHandler {
	return &FeedHandler{uc: uc}
}

func (h *FeedHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/feed", h.HandleFeed)
}

func (h *FeedHandler) HandleFeed(c fiber.Ctx) error {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	excludeSwiped, err := queryBool(c, "exclude_swiped", true)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.FetchJobsForUser(c.Context(), middleware.UserID(c), usecase.FeedOptions{
		Search:        c.Query("search"),
		Limit:         limit,
		ExcludeSwiped: excludeSwiped,
	})
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func queryInt(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

func queryBool(c fiber.Ctx, key string, defaultVal bool) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.ParseBool(s)
}
