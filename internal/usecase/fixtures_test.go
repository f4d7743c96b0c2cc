package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	adapter "hairconnect/internal/adapter/repository"
	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
)

type seeder interface {
	Seed(id string, doc map[string]interface{})
}

func newHairdresserRepo(t *testing.T, docs map[string]map[string]interface{}) repository.HairdresserRepository {
	t.Helper()
	repo := adapter.NewMemoryHairdresserRepository()
	s, ok := repo.(seeder)
	require.True(t, ok, "memory repository should accept raw seeds")
	for id, doc := range docs {
		s.Seed(id, doc)
	}
	return repo
}

func newLocations(t *testing.T) repository.LocationRepository {
	t.Helper()
	locations, err := adapter.NewStaticLocationRepository()
	require.NoError(t, err)
	return locations
}

type fakeUploader struct {
	mu      sync.Mutex
	folders []string
	err     error
}

func (f *fakeUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.folders = append(f.folders, folder)
	return fmt.Sprintf("https://cdn.test/%s/%d", folder, len(f.folders)), nil
}

func (f *fakeUploader) DeleteFile(ctx context.Context, fileURL string) error { return nil }

func (f *fakeUploader) Close() error { return nil }

type fakeGateway struct {
	initialized []service.ChargeRequest
	status      *service.ChargeStatus
	initErr     error
	verifyErr   error
	validSig    string
}

func (g *fakeGateway) InitializeCharge(ctx context.Context, req service.ChargeRequest) (*service.ChargeSession, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	g.initialized = append(g.initialized, req)
	return &service.ChargeSession{
		AuthorizationURL: "https://checkout.test/abc",
		AccessCode:       "access-abc",
		Reference:        "ref-abc",
	}, nil
}

func (g *fakeGateway) VerifyCharge(ctx context.Context, reference string) (*service.ChargeStatus, error) {
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.status, nil
}

func (g *fakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return signature != "" && signature == g.validSig
}

// failingHairdresserRepo errors on every list call.
type failingHairdresserRepo struct {
	repository.HairdresserRepository
}

func (failingHairdresserRepo) ListPaid(ctx context.Context) ([]*entity.Hairdresser, error) {
	return nil, fmt.Errorf("firestore unavailable")
}
