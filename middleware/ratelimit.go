package middleware

import (
	"fmt"
	"lms/config"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// EnrollRateLimiter throttles checkout creation per authenticated user with a
// small fixed-window quota. Must be mounted after JWTMiddleware so the key
// is the user id, not the IP.
func EnrollRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.AppConfig.EnrollRateLimit,
		Expiration: time.Duration(config.AppConfig.EnrollRateWindow) * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if userID, ok := c.Locals("userId").(uint); ok {
				return fmt.Sprintf("enroll:%d", userID)
			}
			return "enroll:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many enrollment attempts. Please try again later!", nil)
		},
	})
}
