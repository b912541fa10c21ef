package controllers

import (
	"order-tracker/database"
	"order-tracker/queries"

	"github.com/gofiber/fiber/v2"
)

// GET|POST /dashboard
func Dashboard(c *fiber.Ctx) error {
	db := database.GetDB(c)
	ctx := c.UserContext()

	filter := queries.Filter{}
	if c.Method() == fiber.MethodPost {
		filter = queries.FilterFromForm(func(key string) string { return c.FormValue(key) })
	}

	orders, err := queries.List(ctx, db, filter)
	if err != nil {
		return err
	}
	counts, err := queries.CountMissing(ctx, db)
	if err != nil {
		return err
	}

	return render(c, "dashboard", fiber.Map{
		"Orders":    orders,
		"Missing":   queries.MissingColumns(orders),
		"Counts":    counts,
		"Filter":    filter,
		"Filtering": !filter.IsEmpty(),
	})
}
