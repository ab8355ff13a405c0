package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/solcialhq/forum-backend/internal/authority"
	"github.com/solcialhq/forum-backend/internal/config"
	"github.com/solcialhq/forum-backend/internal/handlers"
	"github.com/solcialhq/forum-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	admins *authority.Set,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	forumHandler *handlers.ForumHandler,
	postHandler *handlers.PostHandler,
	ratingHandler *handlers.RatingHandler,
	reportHandler *handlers.ReportHandler,
	walletHandler *handlers.WalletHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limiter
	authGroup := api.Group("/auth")
	authGroup.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Public reads
	api.Get("/forum", forumHandler.Get)
	api.Get("/posts", postHandler.List)
	api.Get("/posts/:id", postHandler.Get)
	api.Get("/posts/:id/replies", postHandler.ListReplies)

	// Fee-gated writes (JWT required)
	jwt := middleware.JWTProtected(cfg)
	api.Post("/posts", jwt, postHandler.Create)
	api.Post("/posts/:id/replies", jwt, postHandler.CreateReply)
	api.Post("/posts/:id/votes", jwt, ratingHandler.RatePost)
	api.Post("/replies/:id/votes", jwt, ratingHandler.RateReply)
	api.Post("/posts/:id/reports", jwt, reportHandler.ReportPost)
	api.Post("/replies/:id/reports", jwt, reportHandler.ReportReply)

	api.Get("/wallet", jwt, walletHandler.Balances)

	// Admin panel (JWT + admin authority)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(admins, cfg))
	admin.Post("/forum", forumHandler.Initialize)
	admin.Delete("/forum", forumHandler.Close)
	admin.Delete("/posts/:id", forumHandler.DeletePost)
	admin.Delete("/replies/:id", forumHandler.DeleteReply)
	admin.Get("/reports", reportHandler.List)
	admin.Put("/reports/posts/:id/resolve", reportHandler.ResolvePostReport)
	admin.Put("/reports/replies/:id/resolve", reportHandler.ResolveReplyReport)
	admin.Delete("/reports/posts/:id", reportHandler.ClosePostReport)
	admin.Delete("/reports/replies/:id", reportHandler.CloseReplyReport)
	admin.Get("/events", forumHandler.ListEvents)
	admin.Post("/accounts/:id/credit", walletHandler.Credit)
}
