package routes

import (
	"order-tracker/config"
	"order-tracker/controllers"
	"order-tracker/middlewares"
	"order-tracker/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the Fiber app with the global error handler, body limit and every route.
// Auth and sessions must be configured before the app serves.
func NewApp(cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middlewares.ErrorHandler,
		BodyLimit:    cfg.BodyLimitBytes,
		Views:        views.Engine(!cfg.IsProduction()),
	})

	app.Use(recover.New())
	app.Use(middlewares.RequestLogger())

	// Health checks never touch the session store
	app.Get("/healthz", controllers.Health)

	app.Use(middlewares.Sessions())

	controllers.Configure(cfg)
	Register(app, cfg)
	return app
}

// Register wires all HTTP routes.
func Register(app *fiber.App, cfg config.Config) {
	app.Get("/", controllers.Index)
	app.Get("/switch_language/:lang", controllers.SwitchLanguage)

	// Public login; only the credential check is rate limited
	app.Get("/login", controllers.LoginPage)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		// Default KeyGenerator = client IP; default 429 handler is fine.
	}), controllers.Login)

	// Protected pages (JWT cookie). Handlers are chained per route so unknown paths still 404.
	auth := middlewares.IsAuthenticated()
	app.Get("/logout", auth, controllers.Logout)

	// Idempotency guard FIRST (not tied to request TX), then the per-request transaction
	page := []fiber.Handler{auth, middlewares.Idempotency(), middlewares.RequestTx()}

	app.Get("/dashboard", with(page, controllers.Dashboard)...)
	app.Post("/dashboard", with(page, controllers.Dashboard)...)

	app.Get("/add_order", with(page, controllers.AddOrderPage)...)
	app.Post("/add_order", with(page, controllers.AddOrder)...)
	app.Get("/edit_order/:id", with(page, controllers.EditOrderPage)...)
	app.Post("/edit_order/:id", with(page, controllers.EditOrder)...)

	app.Get("/export", with(page, controllers.Export)...)

	// Role check runs before any upload parsing
	upload := []fiber.Handler{auth, middlewares.AdminOnly(), middlewares.Idempotency(), middlewares.RequestTx()}
	app.Post("/upload", with(upload, controllers.Upload)...)
}

func with(chain []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(chain)+1)
	out = append(out, chain...)
	return append(out, h)
}
