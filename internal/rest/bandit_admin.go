package rest

import (
	"context"
	"net/http"

	"campusMatching/domain"

	"github.com/labstack/echo/v4"
)

type BanditAdminService interface {
	ResetModel(ctx context.Context)
	Stats() domain.BanditModelStats
	ReplayFeedback(ctx context.Context) (int, error)
}

type BanditAdminHandler struct {
	svc BanditAdminService
}

func NewBanditAdminHandler(svc BanditAdminService) *BanditAdminHandler {
	return &BanditAdminHandler{svc: svc}
}

// POST /api/v1/admin/bandit/reset
func (h *BanditAdminHandler) Reset(c echo.Context) error {
	h.svc.ResetModel(c.Request().Context())

	return c.JSON(http.StatusOK, echo.Map{
		"status": "ok",
	})
}

// GET /api/v1/admin/bandit/stats
func (h *BanditAdminHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Stats())
}

// POST /api/v1/admin/bandit/replay
func (h *BanditAdminHandler) Replay(c echo.Context) error {
	applied, err := h.svc.ReplayFeedback(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error":   err.Error(),
			"applied": applied,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"applied": applied,
	})
}
