package config

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// NewFirebaseMessaging builds the Admin SDK messaging client used for topic
// subscriptions. Message delivery goes through the push gateway instead.
func NewFirebaseMessaging(ctx context.Context, cfg *Config) (*messaging.Client, error) {
	if _, err := os.Stat(cfg.FirebaseCredentialsPath); err != nil {
		return nil, fmt.Errorf("firebase credentials file not found: %s", cfg.FirebaseCredentialsPath)
	}

	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, option.WithCredentialsFile(cfg.FirebaseCredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging: %w", err)
	}

	return client, nil
}
