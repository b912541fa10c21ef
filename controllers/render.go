package controllers

import (
	"net/url"

	"order-tracker/config"
	"order-tracker/i18n"
	"order-tracker/middlewares"
	"order-tracker/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var settings config.Config

// Configure hands the handlers the paths and cookie flags they need.
func Configure(cfg config.Config) {
	settings = cfg
}

type flashView struct {
	Kind string
	Text string
}

// render fills in the data every page layout uses and renders view.
func render(c *fiber.Ctx, view string, data fiber.Map) error {
	lang := middlewares.Lang(c)
	flashes := middlewares.PopFlashes(c)
	msgs := make([]flashView, 0, len(flashes))
	for _, f := range flashes {
		msgs = append(msgs, flashView{Kind: string(f.Kind), Text: f.Text(lang)})
	}

	data["Lang"] = lang
	data["T"] = func(key string, args ...any) string { return i18n.T(lang, key, args...) }
	data["Flashes"] = msgs
	data["CurrentUser"] = middlewares.CurrentUsername(c)
	data["IsAdmin"] = middlewares.CurrentRole(c) == models.RoleAdmin
	data["Columns"] = models.Columns
	data["RemarkColumn"] = models.RemarkColumn
	data["IdemField"] = middlewares.IdempotencyField
	data["IdemKey"] = uuid.NewString()
	return c.Render(view, data)
}

// localRedirect returns target when it points back at this host, else fallback.
func localRedirect(c *fiber.Ctx, target, fallback string) string {
	if target == "" {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil {
		return fallback
	}
	if u.Host != "" && u.Host != string(c.Request().Host()) {
		return fallback
	}
	if u.Path == "" {
		return fallback
	}
	out := u.Path
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}
