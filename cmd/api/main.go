package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"seguimiento-noticias/internal/config"
	"seguimiento-noticias/internal/handler"
	"seguimiento-noticias/internal/middleware"
	"seguimiento-noticias/internal/pkg/i18n"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/repository"
	"seguimiento-noticias/internal/service"
	"seguimiento-noticias/internal/service/notification"
	"seguimiento-noticias/internal/service/push"
	"seguimiento-noticias/internal/worker"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Failed to load config: %v", err)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Production: cfg.IsProduction()})
	log := logger.WithComponent("main")
	if envErr != nil {
		log.Info("No .env file found, using environment variables")
	}

	if err := i18n.LoadTranslations(cfg.LocalesPath); err != nil {
		log.WithError(err).Fatal("Failed to load translations")
	}

	loc, _ := cfg.Location()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	var redisClient *redis.Client
	var queue notification.Queue
	redisClient, err = config.NewRedisClient(cfg)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory push queue and no sweep lock")
		queue = notification.NewMemoryQueue(0)
	} else {
		defer redisClient.Close()
		queue = notification.NewRedisQueue(redisClient)
	}

	clients := service.Clients{Redis: redisClient, Queue: queue}

	if minioClient, err := config.NewMinIOClient(cfg); err != nil {
		log.WithError(err).Warn("MinIO unavailable, report export disabled")
	} else {
		clients.MinIO = minioClient
	}

	if messagingClient, err := config.NewFirebaseMessaging(ctx, cfg); err != nil {
		log.WithError(err).Warn("Firebase unavailable, device topic subscriptions disabled")
	} else {
		clients.Messaging = messagingClient
	}

	creds, err := push.NewServiceAccountCredentials(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)
	if err != nil {
		log.WithError(err).Warn("Push credentials unavailable, notifications will be dropped")
	}
	gateway := push.NewGateway(creds, cfg.FCMEndpoint, &http.Client{Timeout: 20 * time.Second})

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, clients, cfg, loc)
	handlers := handler.NewHandlers(services)

	var workers sync.WaitGroup
	pushWorker := worker.NewPushWorker(queue, gateway, cfg.PushWorkers, cfg.PushMaxAttempts)
	workers.Add(1)
	go func() {
		defer workers.Done()
		pushWorker.Start(ctx)
	}()

	if cfg.ReminderEnabled {
		reminderWorker := worker.NewReminderWorker(services.Reminder, cfg.ReminderInterval)
		workers.Add(1)
		go func() {
			defer workers.Done()
			reminderWorker.Start(ctx)
		}()
	}

	sessionWorker := worker.NewSessionCleanupWorker(services.Auth, time.Hour)
	workers.Add(1)
	go func() {
		defer workers.Done()
		sessionWorker.Start(ctx)
	}()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.NewErrorHandler(cfg.IsProduction()),
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Accept-Language, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	handler.SetupRoutes(app, handlers, services.Auth, middleware.LoginLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow))

	go func() {
		<-ctx.Done()
		log.Info("Shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}()

	log.WithField("port", cfg.Port).Info("Server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("Server stopped")
	}

	stop()
	workers.Wait()
}
