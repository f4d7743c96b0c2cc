package main

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	apimiddleware "hairconnect/internal/adapter/api/middleware"
	"hairconnect/internal/adapter/repository"
	domainrepo "hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/internal/infrastructure/firebase"
	"hairconnect/internal/infrastructure/storage"
	"hairconnect/pkg/config"
	"hairconnect/pkg/logger"
)

type stores struct {
	hairdressers domainrepo.HairdresserRepository
	chats        domainrepo.ChatRepository
	chatUsers    domainrepo.ChatUserRepository
	locations    domainrepo.LocationRepository

	firestore *firestore.Client
}

func (s *stores) Close() {
	if s.firestore != nil {
		s.firestore.Close()
	}
}

// openStores selects the persistence backend from DATA_BACKEND.
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	locations, err := repository.NewStaticLocationRepository()
	if err != nil {
		return nil, err
	}

	switch cfg.DataBackend {
	case "memory":
		logger.Warn("Using in-memory data backend; data is lost on restart")
		return &stores{
			hairdressers: repository.NewMemoryHairdresserRepository(),
			chats:        repository.NewMemoryChatRepository(),
			chatUsers:    repository.NewMemoryChatUserRepository(),
			locations:    locations,
		}, nil
	case "firestore", "":
		client, err := firebase.NewFirestoreClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &stores{
			hairdressers: repository.NewFirestoreHairdresserRepository(client),
			chats:        repository.NewFirestoreChatRepository(client),
			chatUsers:    repository.NewFirestoreChatUserRepository(client),
			locations:    locations,
			firestore:    client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown DATA_BACKEND %q", cfg.DataBackend)
	}
}

// newUploader returns a nil interface when media storage is not configured;
// uploads then fail with an internal error instead of crashing at startup.
func newUploader(ctx context.Context, cfg *config.Config) (service.FileUploadService, error) {
	switch cfg.StorageBackend {
	case "cloudinary":
		if cfg.CloudinaryCloudName == "" {
			logger.Warn("Cloudinary is not configured; image uploads are disabled")
			return nil, nil
		}
		return storage.NewCloudinaryClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case "gcs":
		if cfg.StorageBucket == "" {
			return nil, errors.New("STORAGE_BUCKET is required for the gcs backend")
		}
		credentials := ""
		if cfg.FirebaseServiceAccountJSON == "" {
			credentials = cfg.FirebaseServiceAccountPath
		}
		return storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentials)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

func newPaymentGateway(cfg *config.Config) service.PaymentGatewayService {
	if cfg.PaystackSecretKey == "" {
		logger.Warn("PAYSTACK_SECRET_KEY is empty; payment calls will be rejected by the gateway")
	}
	return service.NewPaystackPaymentService(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
}

type unavailableVerifier struct{}

func (unavailableVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	return "", errors.New("token verification is unavailable")
}

// newTokenVerifier falls back to rejecting every bearer token when Firebase
// cannot start, so guest chat and public reads keep working.
func newTokenVerifier(ctx context.Context, cfg *config.Config) apimiddleware.TokenVerifier {
	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		logger.Error("Firebase unavailable, bearer auth disabled: %v", err)
		return unavailableVerifier{}
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logger.Error("Firebase Auth unavailable, bearer auth disabled: %v", err)
		return unavailableVerifier{}
	}

	return firebase.NewFirebaseAuthClient(authClient)
}
