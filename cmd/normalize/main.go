// Command normalize rewrites stored service tags into flat string lists.
package main

import (
	"context"
	"os"
	"time"

	"hairconnect/internal/adapter/repository"
	"hairconnect/internal/infrastructure/firebase"
	"hairconnect/internal/usecase"
	"hairconnect/pkg/config"
	"hairconnect/pkg/logger"
)

func main() {
	status := run()
	logger.Sync()
	os.Exit(status)
}

// run returns the exit status: 1 on failure, 2 when some profiles could not
// be rewritten.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		return 1
	}

	logger.Init(cfg.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	client, err := firebase.NewFirestoreClient(ctx, cfg)
	if err != nil {
		logger.Error("%v", err)
		return 1
	}
	defer client.Close()

	maintenance := usecase.NewMaintenanceUseCase(repository.NewFirestoreHairdresserRepository(client))

	report, err := maintenance.NormalizeStoredServices(ctx)
	if err != nil {
		logger.Error("Normalization failed: %v", err)
		return 1
	}

	logger.Info("Normalization complete: scanned=%d rewritten=%d failed=%d", report.Scanned, report.Rewritten, report.Failed)
	if report.Failed > 0 {
		return 2
	}
	return 0
}
