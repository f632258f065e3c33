package middleware

import (
	"campusMatching/business/bandit"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderTraceID = "X-Trace-Id"

// TraceID propagates the caller's trace id, or a fresh uuid, into the
// request context and the response header.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(HeaderTraceID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(bandit.WithTraceID(req.Context(), traceID)))
			c.Response().Header().Set(HeaderTraceID, traceID)

			return next(c)
		}
	}
}
