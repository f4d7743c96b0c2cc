package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"hairconnect/pkg/config"
	"hairconnect/pkg/logger"
)

// ClientOption picks credentials: inline JSON first, then the key file.
// It returns nil when neither is available so ADC can take over.
func ClientOption(cfg *config.Config) option.ClientOption {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON))
	}

	if cfg.FirebaseServiceAccountPath != "" {
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); err == nil {
			logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
			return option.WithCredentialsFile(cfg.FirebaseServiceAccountPath)
		}
	}

	logger.Warn("No Firebase service account configured, falling back to application default credentials")
	return nil
}

func options(cfg *config.Config) []option.ClientOption {
	if opt := ClientOption(cfg); opt != nil {
		return []option.ClientOption{opt}
	}
	return nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*fbapp.App, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, options(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}
	return app, nil
}

func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, options(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}
