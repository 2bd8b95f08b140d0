package service

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// authMiddleware checks the X-API-Key header against a single static key
// from configuration, scoped down from the host's AuthMiddleware (which
// looks up a partner/scopes/tier row in Postgres per request) since this
// service has one operator and no billing tiers.
func authMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" {
			return c.Next()
		}
		got := c.Get("X-API-Key")
		if got == "" {
			return c.Status(401).JSON(fiber.Map{
				"error":   "missing_api_key",
				"message": "X-API-Key header is required",
			})
		}
		if got != apiKey {
			return c.Status(401).JSON(fiber.Map{
				"error":   "invalid_api_key",
				"message": "the provided API key is invalid",
			})
		}
		return c.Next()
	}
}

// rateLimiter enforces a per-second and per-day request budget shared by
// all requests (one set of counters; the service checks a single API key),
// scoped down from the host's RateLimitMiddleware: no per-month tier
// since a service fielding long-running optimization jobs has no
// meaningful billing quota, and counters live in memory rather than
// Redis since this service runs as a single process.
type rateLimiter struct {
	mu         sync.Mutex
	perSecond  int
	perDay     int
	secondWindow int64
	secondCount  int
	dayWindow    string
	dayCount     int
}

func newRateLimiter(perSecond, perDay int) *rateLimiter {
	return &rateLimiter{perSecond: perSecond, perDay: perDay}
}

func (rl *rateLimiter) middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		rl.mu.Lock()
		second := now.Unix()
		if second != rl.secondWindow {
			rl.secondWindow = second
			rl.secondCount = 0
		}
		rl.secondCount++
		overSecond := rl.perSecond > 0 && rl.secondCount > rl.perSecond

		day := now.Format("2006-01-02")
		if day != rl.dayWindow {
			rl.dayWindow = day
			rl.dayCount = 0
		}
		rl.dayCount++
		overDay := rl.perDay > 0 && rl.dayCount > rl.perDay
		rl.mu.Unlock()

		if overSecond {
			c.Set("Retry-After", "1")
			return c.Status(429).JSON(fiber.Map{
				"error":   "rate_limit_exceeded",
				"message": "too many requests per second",
				"limit":   strconv.Itoa(rl.perSecond),
			})
		}
		if overDay {
			return c.Status(429).JSON(fiber.Map{
				"error":   "daily_quota_exceeded",
				"message": "daily request quota exceeded",
				"limit":   strconv.Itoa(rl.perDay),
			})
		}
		return c.Next()
	}
}
