package rest

import (
	"context"
	"errors"
	"net/http"

	"campusMatching/business/bandit"
	"campusMatching/domain"
	"campusMatching/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	BanditHandler struct {
		validate      *validator.Validate
		banditService BanditService
	}

	BanditService interface {
		Recommend(ctx context.Context, studentID uint, limit int, query string) ([]domain.ClubRecommendation, error)
		Best(ctx context.Context, studentID uint) (domain.ClubRecommendation, bool, error)
		DebugRecommend(ctx context.Context, studentID uint, limit int) ([]domain.DebugRecommendation, error)
		LogFeedback(ctx context.Context, event domain.FeedbackEvent) (domain.FeedbackEvent, error)
	}

	RecommendQuery struct {
		N int    `query:"n" validate:"gte=0"`
		Q string `query:"q"`
	}

	FeedbackRequest struct {
		ClubID    uint           `json:"club_id" validate:"required"`
		EventType string         `json:"event_type" validate:"required,oneof=like dislike join"`
		Context   map[string]any `json:"context"`
	}
)

func NewBanditHandler(svc BanditService) *BanditHandler {
	return &BanditHandler{
		validate:      validator.New(),
		banditService: svc,
	}
}

// GET /api/v1/recommendations?n=5&q=robotics
func (h *BanditHandler) Recommend(c echo.Context) error {
	studentID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.banditService.Recommend(c.Request().Context(), studentID, q.N, q.Q)
	if err != nil {
		return banditError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

// GET /api/v1/recommendations/best
func (h *BanditHandler) Best(c echo.Context) error {
	studentID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	rec, found, err := h.banditService.Best(c.Request().Context(), studentID)
	if err != nil {
		return banditError(c, err)
	}
	if !found {
		return c.JSON(http.StatusNotFound, ResponseError{Message: "no eligible clubs"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(rec))
}

func (h *BanditHandler) Feedback(c echo.Context) error {
	studentID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	event := domain.FeedbackEvent{
		StudentID: studentID,
		ClubID:    req.ClubID,
		EventType: req.EventType,
		Context:   req.Context,
	}

	saved, err := h.banditService.LogFeedback(c.Request().Context(), event)
	if err != nil {
		return banditError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(saved))
}

// GET /api/v1/recommendations/debug?n=5
func (h *BanditHandler) DebugRecommend(c echo.Context) error {
	studentID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q RecommendQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	recs, err := h.banditService.DebugRecommend(c.Request().Context(), studentID, q.N)
	if err != nil {
		return banditError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func banditError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
	case errors.Is(err, bandit.ErrUnknownEventType):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: err.Error()})
	default:
		logger.Error("bandit request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}
