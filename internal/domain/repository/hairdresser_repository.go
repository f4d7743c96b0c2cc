package repository

import (
	"context"

	"hairconnect/internal/domain/entity"
)

// ViewGuard decides, against the freshly read record, whether a view counts.
type ViewGuard func(h *entity.Hairdresser) bool

type HairdresserRepository interface {
	Create(ctx context.Context, h *entity.Hairdresser) error
	GetByID(ctx context.Context, id string) (*entity.Hairdresser, error)
	GetByFirebaseUID(ctx context.Context, uid string) (*entity.Hairdresser, error)
	ListPaid(ctx context.Context) ([]*entity.Hairdresser, error)
	ListAll(ctx context.Context) ([]*entity.Hairdresser, error)

	// ListStoredServices returns the services field of every profile exactly
	// as stored, before read-time repair.
	ListStoredServices(ctx context.Context) (map[string]interface{}, error)

	// Merge writes only the given fields and stamps updatedAt.
	Merge(ctx context.Context, id string, fields map[string]interface{}) error

	// IncrementViews reads the profile and, if guard approves, increments
	// views and marks sessionID in the same atomic write. An empty sessionID
	// increments without marking. It reports whether a view was counted.
	IncrementViews(ctx context.Context, id, sessionID string, guard ViewGuard) (bool, error)
}
