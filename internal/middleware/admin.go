package middleware

import (
	"crypto/subtle"
	"slices"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired admits callers presenting the configured X-Admin-Token or
// whose token subject is listed in ADMIN_USER_IDS.
func AdminRequired(cfg *config.Config) fiber.Handler {
	adminUserIDs := cfg.AdminIDs()

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			if subtle.ConstantTimeCompare([]byte(c.Get("X-Admin-Token")), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		sub := ActorID(c)
		if sub == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		if slices.Contains(adminUserIDs, sub) {
			return c.Next()
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}
