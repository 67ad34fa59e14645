package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/ecolearners/platform-api/internal/config"
	"github.com/ecolearners/platform-api/internal/database"
	"github.com/ecolearners/platform-api/internal/handler"
	"github.com/ecolearners/platform-api/internal/middleware"
	"github.com/ecolearners/platform-api/internal/models"
	"github.com/ecolearners/platform-api/internal/repository"
	"github.com/ecolearners/platform-api/internal/router"
	"github.com/ecolearners/platform-api/internal/service"
	cloud "github.com/ecolearners/platform-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{}, &models.UserProfile{},
		&models.Lesson{}, &models.Quiz{}, &models.Question{},
		&models.QuizSubmission{}, &models.Answer{},
		&models.AssignedTask{}, &models.TaskSubmission{},
		&models.Game{}, &models.GameScore{},
		&models.Notice{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	// The event bus is optional; the API degrades to not publishing.
	var events service.EventPublisher
	if cfg.NatsURL != "" {
		natsConn, err := nats.Connect(cfg.NatsURL)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, events disabled")
		} else {
			defer natsConn.Close()
			events = natsConn
		}
	}

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	quizSubmissionRepo := repository.NewQuizSubmissionRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	taskSubmissionRepo := repository.NewTaskSubmissionRepository(db)
	gameRepo := repository.NewGameRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	profileService := service.NewProfileService(userRepo, validate, logger)
	lessonService := service.NewLessonService(lessonRepo, quizSubmissionRepo, validate, logger)
	quizService := service.NewQuizService(quizRepo, quizSubmissionRepo, validate, logger)
	taskService := service.NewTaskService(taskRepo, taskSubmissionRepo, validate, uploader, logger)
	gradingService := service.NewGradingService(taskSubmissionRepo, quizSubmissionRepo, validate, events, logger)
	gameService := service.NewGameService(gameRepo, validate, logger)
	noticeService := service.NewNoticeService(noticeRepo, validate, events, logger)
	reportService := service.NewReportService(userRepo, taskSubmissionRepo, quizSubmissionRepo, gameRepo, logger)
	leaderboardService := service.NewLeaderboardService(userRepo, redisClient, cfg.LeaderboardCacheTTL, logger)

	if cfg.BootstrapEnabled {
		bootstrap := service.NewBootstrapService(userRepo, gameRepo, noticeRepo, logger)
		if err := bootstrap.Run(context.Background()); err != nil {
			log.Fatalf("failed to seed initial data: %v", err)
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    handler.NewAuthHandler(authService, logger),
		ProfileHandler: handler.NewProfileHandler(profileService, logger),
		LessonHandler:  handler.NewLessonHandler(lessonService, logger),
		QuizHandler:    handler.NewQuizHandler(quizService, logger),
		TaskHandler:    handler.NewTaskHandler(taskService, logger),
		GradingHandler: handler.NewGradingHandler(gradingService, logger),
		GameHandler:    handler.NewGameHandler(gameService, logger),
		NoticeHandler:  handler.NewNoticeHandler(noticeService, logger),
		ReportHandler:  handler.NewReportHandler(reportService, leaderboardService, logger),
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
