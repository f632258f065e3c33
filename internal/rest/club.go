package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"campusMatching/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type ClubService interface {
	GetAllClubs(ctx context.Context) ([]domain.Club, error)
	GetClubByID(ctx context.Context, id uint) (domain.Club, error)
}

type ClubHandler struct {
	clubService ClubService
}

func NewClubHandler(clubService ClubService) *ClubHandler {
	return &ClubHandler{clubService: clubService}
}

func (h *ClubHandler) GetAllClubs(c echo.Context) error {
	clubs, err := h.clubService.GetAllClubs(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(clubs))
}

func (h *ClubHandler) GetClubByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fres.Response.StatusBadRequest("invalid club id"))
	}

	club, err := h.clubService.GetClubByID(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "club not found"})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(club))
}
