package stremio

import (
	"fmt"
	"strconv"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

func createLoggingMiddleware(logger *zap.Logger, logIPs, logUserAgent bool) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		// Handle request
		err := c.Next()

		fields := []zap.Field{
			zap.Duration("duration", time.Since(start)),
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
		}
		if logIPs {
			fields = append(fields, zap.String("ip", c.IP()))
		}
		if logUserAgent {
			fields = append(fields, zap.String("userAgent", c.Get(fiber.HeaderUserAgent)))
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		logger.Info("Handled request", fields...)
		return err
	}
}

func createMetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		// The route pattern instead of the actual path keeps the number of time series bounded.
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		metrics.GetOrCreateCounter(fmt.Sprintf(`http_requests_total{path=%q,status=%q}`, path, status)).Inc()
		metrics.GetOrCreateHistogram(fmt.Sprintf(`http_request_duration_seconds{path=%q}`, path)).UpdateDuration(start)

		return err
	}
}

// Stremio doesn't show stream responses when no CORS headers are set.
func corsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		c.Set(fiber.HeaderAccessControlAllowHeaders, "*")
		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, OPTIONS")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
