package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/mroshb/debate_arena/internal/config"
	"github.com/mroshb/debate_arena/internal/database"
	"github.com/mroshb/debate_arena/internal/handlers"
	"github.com/mroshb/debate_arena/internal/middleware"
	"github.com/mroshb/debate_arena/internal/repositories"
	"github.com/mroshb/debate_arena/internal/services"
	"github.com/mroshb/debate_arena/internal/toxicity"
	"github.com/mroshb/debate_arena/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Debate Arena server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database with TLS
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the debate topic catalogue
	if err := database.SeedTopics(db); err != nil {
		logger.Warn("Failed to seed topics", "error", err)
	}

	app := buildApp(cfg, db)

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			logger.Fatal("Server stopped", err)
		}
	}()

	logger.Info("Server started successfully", "env", cfg.AppEnv, "port", cfg.AppPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	if err := app.Shutdown(); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

func buildApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	userRepo := repositories.NewUserRepository(db)
	debateRepo := repositories.NewDebateRepository(db)
	topicRepo := repositories.NewTopicRepository(db)

	classifier := toxicity.NewPerspectiveClient(cfg.PerspectiveAPIKey, cfg.ToxicityThreshold)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	matchmakingService := services.NewMatchmakingService(debateRepo, userRepo, topicRepo, cfg.GetActiveDuration())
	debateService := services.NewDebateService(debateRepo, userRepo, classifier, cfg.GetVotingWindow())

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	debateHandler := handlers.NewDebateHandler(debateService, matchmakingService)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerUser, cfg.RateLimitPerIP, time.Minute)

	app := fiber.New(fiber.Config{
		AppName: "debate_arena",
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	api := app.Group("/api", middleware.RateLimit(rateLimiter))

	api.Post("/login", authHandler.Login)
	api.Post("/signup", authHandler.Signup)
	api.Post("/onboarding", authHandler.CompleteOnboarding)

	api.Get("/users", userHandler.ListUsers)
	api.Delete("/users/:id", userHandler.DeleteUser)
	api.Delete("/users", userHandler.DeleteAllUsers)

	api.Get("/debates", debateHandler.ListDebates)
	api.Get("/debates/featured", debateHandler.ListFeatured)
	api.Get("/debates/user/:email", debateHandler.ListForUser)
	api.Post("/debates/matchmaking", debateHandler.EnterMatchmaking)
	api.Get("/debates/matchmaking/:email", debateHandler.MatchmakingStatus)
	api.Get("/debates/:id", debateHandler.GetDebate)
	api.Post("/debates/:id/message", debateHandler.PostMessage)
	api.Post("/debates/:id/complete", debateHandler.CompleteDebate)
	api.Post("/debates/:id/vote", debateHandler.CastVote)
	api.Post("/debates/:id/tally-votes", debateHandler.TallyVotes)
	api.Delete("/debates/:id", debateHandler.DeleteDebate)

	return app
}
