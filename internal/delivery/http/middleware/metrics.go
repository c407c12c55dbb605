package middleware

import (
	"strconv"
	"time"

	"jobboard/internal/telemetry"

	"github.com/gofiber/fiber/v3"
)

type MetricsMiddleware struct {
	metrics *telemetry.Metrics
}

func NewMetricsMiddleware(m *telemetry.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Middleware records request counts and latency by route pattern, so path
// parameters do not explode label cardinality.
func (m *MetricsMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m == nil || m.metrics == nil {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusFromError(err)
		}
		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}

		m.metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
