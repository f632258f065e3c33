package middleware

import (
	"time"

	"campusMatching/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// RecommendMetrics observes latency and request count for one endpoint label.
func RecommendMetrics(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			metrics.BanditRecommendRequests.WithLabelValues(endpoint).Inc()
			metrics.BanditRecommendLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
