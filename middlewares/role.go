package middlewares

import (
	"order-tracker/models"

	"github.com/gofiber/fiber/v2"
)

// AdminOnly lets admin sessions through. Everyone else gets a flash message and is
// sent back to the dashboard before the handler (or any upload parsing) runs.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if CurrentRole(c) != models.RoleAdmin {
			if err := AddFlash(c, FlashError, "You do not have permission to upload files."); err != nil {
				return err
			}
			return c.Redirect("/dashboard")
		}
		return c.Next()
	}
}
