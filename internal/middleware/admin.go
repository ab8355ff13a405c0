package middleware

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/config"
	"github.com/solcialhq/forum-backend/internal/dto"
)

// AdminRequired gates a route on the admin identity set. A valid operator
// token enrolls the authenticated caller into the set, so a deployment
// without a seeded admin can bootstrap one; service-level admin checks then
// pass for that identity too.
func AdminRequired(admins *authority.Set, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			if !admins.IsAdmin(userID) {
				admins.Add(userID)
				slog.Info("admin enrolled via operator token", "user_id", userID)
			}
			return c.Next()
		}

		if !admins.IsAdmin(userID) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}
		return c.Next()
	}
}
