package controllers

import (
	"errors"
	"strings"

	"order-tracker/database"
	"order-tracker/middlewares"
	"order-tracker/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LoginDTO struct {
	Username string `form:"username" validate:"required,max=100"`
	Password string `form:"password" validate:"required,max=200"`
}

// GET /
func Index(c *fiber.Ctx) error {
	return c.Redirect("/login")
}

// GET /login
func LoginPage(c *fiber.Ctx) error {
	if raw := c.Cookies(middlewares.AuthCookie); raw != "" {
		if _, err := middlewares.ParseJWT(raw); err == nil {
			return c.Redirect("/dashboard")
		}
	}
	return render(c, "login", fiber.Map{"Username": ""})
}

// POST /login
func Login(c *fiber.Ctx) error {
	var in LoginDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		if middlewares.InvalidFields(err) == nil {
			return err
		}
		return invalidCredentials(c, in.Username)
	}
	username := strings.TrimSpace(in.Username)

	var user models.User
	err := database.GetDB(c).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalidCredentials(c, username)
		}
		return err
	}
	if err := user.ComparePassword(in.Password); err != nil {
		return invalidCredentials(c, username)
	}

	token, expires, err := middlewares.GenerateJWT(user)
	if err != nil {
		return err
	}
	middlewares.SetAuthCookie(c, token, expires, settings.IsProduction())

	zap.L().Info("login", zap.String("username", user.Username), zap.String("role", string(user.Role)))
	return c.Redirect("/dashboard")
}

func invalidCredentials(c *fiber.Ctx, username string) error {
	zap.L().Info("login rejected", zap.String("username", username), zap.String("ip", c.IP()))
	if err := middlewares.AddFlash(c, middlewares.FlashError, "Invalid credentials"); err != nil {
		return err
	}
	c.Status(fiber.StatusUnauthorized)
	return render(c, "login", fiber.Map{"Username": username})
}

// GET /logout
func Logout(c *fiber.Ctx) error {
	middlewares.ClearAuthCookie(c)
	return c.Redirect("/login")
}

// GET /switch_language/:lang
func SwitchLanguage(c *fiber.Ctx) error {
	middlewares.SetLang(c, c.Params("lang"))
	return c.Redirect(localRedirect(c, c.Get(fiber.HeaderReferer), "/dashboard"))
}
