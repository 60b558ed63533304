package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"1m"`

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	Timezone    string `env:"TIMEZONE" envDefault:"America/Mexico_City"`
	LocalesPath string `env:"LOCALES_PATH" envDefault:"locales"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	FirebaseCredentialsPath string `env:"FIREBASE_CREDENTIALS_PATH" envDefault:"secrets/firebase-service-account.json"`
	FirebaseProjectID       string `env:"FIREBASE_PROJECT_ID"`
	FCMEndpoint             string `env:"FCM_ENDPOINT" envDefault:"https://fcm.googleapis.com"`

	PushWorkers     int `env:"PUSH_WORKERS" envDefault:"2"`
	PushMaxAttempts int `env:"PUSH_MAX_ATTEMPTS" envDefault:"3"`

	ReminderEnabled  bool          `env:"REMINDER_ENABLED" envDefault:"true"`
	ReminderInterval time.Duration `env:"REMINDER_INTERVAL" envDefault:"1m"`

	MinIOEndpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	MinIOBucket    string `env:"MINIO_BUCKET" envDefault:"noticias-reportes"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`

	ResendAPIKey         string   `env:"RESEND_API_KEY"`
	FromEmail            string   `env:"FROM_EMAIL" envDefault:"noreply@example.com"`
	AvisoEmailRecipients []string `env:"AVISO_EMAIL_RECIPIENTS" envSeparator:","`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SessionSecret == "" && cfg.IsProduction() {
		return nil, fmt.Errorf("SESSION_SECRET is required in production")
	}

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}
