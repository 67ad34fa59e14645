package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ecolearners/platform-api/internal/config"
	"github.com/ecolearners/platform-api/internal/handler"
	"github.com/ecolearners/platform-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	LessonHandler  *handler.LessonHandler
	QuizHandler    *handler.QuizHandler
	TaskHandler    *handler.TaskHandler
	GradingHandler *handler.GradingHandler
	GameHandler    *handler.GameHandler
	NoticeHandler  *handler.NoticeHandler
	ReportHandler  *handler.ReportHandler
	JWTMiddleware  fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	// Catalogue reads stay public so the landing pages work without a token.
	if deps.GameHandler != nil {
		games := api.Group("/games")
		deps.GameHandler.RegisterPublic(games)
		deps.GameHandler.Register(games.Group("", jwtMiddleware))
	}

	if deps.NoticeHandler != nil {
		notice := api.Group("/notice")
		deps.NoticeHandler.RegisterPublic(notice)
		deps.NoticeHandler.Register(notice.Group("", jwtMiddleware))
	}

	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterLeaderboard(api.Group("/leaderboard"))
		deps.ReportHandler.Register(api.Group("/reports", jwtMiddleware))
	}

	if deps.ProfileHandler != nil {
		deps.ProfileHandler.Register(api.Group("", jwtMiddleware))
	}

	if deps.LessonHandler != nil {
		deps.LessonHandler.Register(api.Group("/lessons", jwtMiddleware))
	}

	if deps.QuizHandler != nil {
		deps.QuizHandler.Register(api.Group("/quizzes", jwtMiddleware))
	}

	if deps.TaskHandler != nil {
		deps.TaskHandler.Register(api.Group("/tasks", jwtMiddleware))
	}

	if deps.GradingHandler != nil {
		deps.GradingHandler.Register(api.Group("/submissions", jwtMiddleware))
	}
}
