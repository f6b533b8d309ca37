package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/trustlink-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	reportHandler *handlers.ReportHandler,
	communityHandler *handlers.CommunityHandler,
	directoryHandler *handlers.DirectoryHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Session and roster
	api.Post("/session", userHandler.Session)
	api.Get("/users", userHandler.List)
	api.Get("/users/me", middleware.JWTProtected(cfg), userHandler.Me)
	api.Get("/badges", userHandler.Badges)

	// Submissions go to the AI providers, so they get a stricter limit.
	submit := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})

	reports := api.Group("/reports")
	reports.Post("/", submit, middleware.OptionalJWT(cfg), reportHandler.Submit)
	reports.Post("/upload", submit, middleware.OptionalJWT(cfg), reportHandler.Upload)
	reports.Get("/", middleware.OptionalJWT(cfg), reportHandler.List)
	reports.Get("/category/:category", reportHandler.ByCategory)
	reports.Get("/:id", reportHandler.Get)
	reports.Post("/:id/comments", middleware.JWTProtected(cfg), reportHandler.AddComment)
	reports.Put("/:id/verify", middleware.JWTProtected(cfg), middleware.AdminRequired(cfg), reportHandler.ToggleVerification)

	api.Put("/filters", middleware.JWTProtected(cfg), reportHandler.SaveFilters)
	api.Get("/dashboard", reportHandler.Dashboard)

	community := api.Group("/community/posts")
	community.Get("/", communityHandler.ListPosts)
	community.Post("/", communityHandler.CreatePost)
	community.Post("/:id/votes", middleware.JWTProtected(cfg), communityHandler.Vote)
	community.Post("/:id/comments", middleware.JWTProtected(cfg), communityHandler.AddComment)

	api.Get("/directory", directoryHandler.List)
}
