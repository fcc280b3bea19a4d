package routes

import (
	"time"

	"github.com/ecocoleta/ecocoleta-backend/internal/config"
	"github.com/ecocoleta/ecocoleta-backend/internal/handlers"
	"github.com/ecocoleta/ecocoleta-backend/internal/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Report     *handlers.ReportHandler
	Collection *handlers.CollectionHandler
	Chat       *handlers.ChatHandler
	Stats      *handlers.StatsHandler
	Health     *handlers.HealthHandler
	Wallet     *handlers.WalletHandler
}

func Setup(app *fiber.App, cfg *config.Config, h Handlers) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", h.Health.Check)

	// Auth — public, with a stricter 10 req/min limit
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)

	// Everything below requires a valid bearer token. Ownership and role
	// filtering happen in the services.
	protected := api.Group("", middleware.JWTProtected(cfg))

	protected.Get("/users", h.User.List)

	protected.Get("/reports", h.Report.List)
	protected.Post("/reports", h.Report.Create)
	protected.Patch("/reports/:id/investigate", h.Report.Investigate)
	protected.Patch("/reports/:id/resolve", h.Report.Resolve)

	protected.Post("/collections", h.Collection.Create)
	protected.Get("/collections/my", h.Collection.ListMine)
	protected.Get("/collections/history", h.Collection.ListHistory)
	protected.Get("/collections/assigned", h.Collection.ListAssigned)
	protected.Get("/collections/pending", h.Collection.ListPending)
	protected.Patch("/collections/:id/cancel", h.Collection.Cancel)
	protected.Patch("/collections/:id/reschedule", h.Collection.Reschedule)
	protected.Patch("/collections/:id/complete", h.Collection.Complete)

	protected.Get("/chat", h.Chat.History)
	protected.Post("/chat", h.Chat.Post)

	protected.Get("/environmental-data", h.Stats.EnvironmentalData)
	protected.Get("/stats", h.Stats.Stats)

	// Wallet backup predates the API prefix and keeps its legacy path.
	app.Post("/backup-keystore", h.Wallet.BackupKeystore)

	// Real-time chat fan-out
	app.Use("/ws", h.Chat.Upgrade)
	app.Get("/ws", websocket.New(h.Chat.Serve))
}
