package middlewares

import (
	"errors"
	"strings"

	"order-tracker/i18n"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrorHandler centralizes error pages and keeps messages sanitized.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Something went wrong"
	var args []any

	var fe *fiber.Error
	var ve validator.ValidationErrors
	switch {
	// 1) Fiber errors (use their status code + message)
	case errors.As(err, &fe):
		status = fe.Code
		message = fe.Message
		if status == fiber.StatusNotFound {
			message = "Page not found"
		}
	// 2) Missing rows surface as 404
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = fiber.StatusNotFound
		message = "Page not found"
	// 3) Validation errors (422 + offending fields)
	case errors.As(err, &ve):
		status = fiber.StatusUnprocessableEntity
		message = "Invalid value for: %s"
		args = append(args, strings.Join(InvalidFields(ve), ", "))
	// 4) Unknown errors (500)
	default:
		zap.L().Error("internal error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	lang := Lang(c)
	renderErr := c.Status(status).Render("error", fiber.Map{
		"Lang":    lang,
		"T":       func(key string, a ...any) string { return i18n.T(lang, key, a...) },
		"Status":  status,
		"Message": i18n.T(lang, message, args...),
	})
	if renderErr != nil {
		return c.Status(status).SendString(i18n.T(lang, message, args...))
	}
	return nil
}
