package middleware

import (
	"errors"
	"net/http"

	"campusMatching/pkg/logger"

	jsonres "campusMatching/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers in the common envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	} else {
		logger.Error("Unhandled error", "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, jsonres.Error(http.StatusText(code), msg, nil)); err != nil {
		logger.Error("Failed to write error response", err)
	}
}
