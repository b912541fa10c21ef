package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRedirect(t *testing.T) {
	cases := map[string]string{
		"":                                "/dashboard",
		"/dashboard?x=1":                  "/dashboard?x=1",
		"http://example.com/add_order":    "/add_order",
		"https://evil.test/phish":         "/dashboard",
		"//evil.test/phish":               "/dashboard",
		"http://example.com":              "/dashboard",
		"http://example.com/edit_order/3": "/edit_order/3",
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got := map[string]string{}
		for in := range cases {
			got[in] = localRedirect(c, in, "/dashboard")
		}
		for in, want := range cases {
			assert.Equal(t, want, got[in], in)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "http://example.com/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
