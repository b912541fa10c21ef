package controllers

import (
	"order-tracker/database"

	"github.com/gofiber/fiber/v2"
)

// GET /healthz
func Health(c *fiber.Ctx) error {
	sqlDB, err := database.DB.DB()
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	if err := sqlDB.PingContext(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
