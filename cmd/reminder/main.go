// Command reminder runs a single appointment reminder sweep and delivers the
// resulting pushes. It is meant for cron style scheduling when the API runs
// with REMINDER_ENABLED=false.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"seguimiento-noticias/internal/config"
	"seguimiento-noticias/internal/pkg/logger"
	"seguimiento-noticias/internal/repository"
	"seguimiento-noticias/internal/service/notification"
	"seguimiento-noticias/internal/service/push"
	"seguimiento-noticias/internal/service/reminder"
	"seguimiento-noticias/internal/worker"
)

const drainIdle = 2 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Failed to load config: %v", err)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile, Production: cfg.IsProduction()})
	log := logger.WithComponent("reminder_cmd")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	var queue notification.Queue
	var locker reminder.Locker
	var redisClient *redis.Client
	if redisClient, err = config.NewRedisClient(cfg); err != nil {
		log.WithError(err).Warn("Redis unavailable, sweeping without lock")
		queue = notification.NewMemoryQueue(0)
	} else {
		defer redisClient.Close()
		queue = notification.NewRedisQueue(redisClient)
		locker = reminder.NewRedisLocker(redisClient)
	}

	noticias := repository.NewNoticiaRepository(db)
	sweeper := reminder.NewService(noticias, notification.NewService(queue), locker)

	result, err := sweeper.Sweep(ctx)
	if err != nil {
		log.WithError(err).Fatal("Reminder sweep failed")
	}

	creds, err := push.NewServiceAccountCredentials(ctx, cfg.FirebaseCredentialsPath, cfg.FirebaseProjectID)
	if err != nil {
		log.WithError(err).Warn("Push credentials unavailable, queued reminders will be dropped")
	}
	gateway := push.NewGateway(creds, cfg.FCMEndpoint, &http.Client{Timeout: 20 * time.Second})
	delivered := worker.NewPushWorker(queue, gateway, 1, cfg.PushMaxAttempts).Drain(ctx, drainIdle)
	log.WithField("handled", delivered).Info("push queue drained")

	_ = json.NewEncoder(os.Stdout).Encode(result)
}
