package service

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// analyticsMiddleware logs method, path, status, and latency for every
// request, adapted from the host's AnalyticsMiddleware: that version
// persists a RequestLog row per partner for billing and dashboard
// analytics; a single-operator optimization service has no partner table
// or billing quota to attribute requests to, so this keeps only the
// request-timing measurement and logs it directly rather than writing to
// Postgres.
func analyticsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		log.Printf("request method=%s path=%s status=%d latency=%s ip=%s",
			c.Method(), c.Path(), c.Response().StatusCode(), latency, c.IP())

		c.Set("X-Response-Time", latency.String())
		return err
	}
}
