package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"fakestore/internal/config"
	"fakestore/internal/db"
	"fakestore/internal/handlers"
	"fakestore/internal/logger"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
	"fakestore/internal/validation"
	"fakestore/pkg/events"
)

func main() {
	cfg := config.Load()
	logger.Init()

	// --- MongoDB ---
	// The process is useless without its store: connection failure at
	// startup is fatal.
	client, err := db.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting from MongoDB")
		}
	}()
	database := client.Database(cfg.MongoDB)

	// --- Events (optional) ---
	var eventsClient *events.Client
	if cfg.RabbitMQURL != "" {
		eventsClient, err = events.NewClient(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize RabbitMQ client")
		}
		defer eventsClient.Close()
	} else {
		log.Info().Msg("RABBITMQ_URL not set, event publishing disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewMongoUserRepository(database)
	productRepo := repositories.NewMongoProductRepository(database)
	cartRepo := repositories.NewMongoCartRepository(database)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo, eventsClient)
	productService := services.NewProductService(productRepo, eventsClient)
	cartService := services.NewCartService(cartRepo, eventsClient)

	// --- Handlers ---
	validate := validation.New()
	authHandler := handlers.NewAuthHandler(authService, validate)
	userHandler := handlers.NewUserHandler(userService, validate)
	productHandler := handlers.NewProductHandler(productService, validate)
	cartHandler := handlers.NewCartHandler(cartService, validate)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(cors.New())
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(fiberlogger.New())

	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app)
	productHandler.RegisterRoutes(app)
	cartHandler.RegisterRoutes(app)
	handlers.RegisterDocsRoutes(app)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Info().Str("port", cfg.AppPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}
