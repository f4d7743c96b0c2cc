package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
)

// memoryHairdresserRepository keeps raw documents, the same shape Firestore
// hands back, so reads exercise the repair decoder.
type memoryHairdresserRepository struct {
	mu    sync.Mutex
	docs  map[string]map[string]interface{}
	order []string
}

func NewMemoryHairdresserRepository() repository.HairdresserRepository {
	return &memoryHairdresserRepository{
		docs: make(map[string]map[string]interface{}),
	}
}

// Seed stores a raw document as-is. It lets callers load legacy shapes.
func (r *memoryHairdresserRepository) Seed(id string, doc map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.docs[id]; !exists {
		r.order = append(r.order, id)
	}
	r.docs[id] = doc
}

func (r *memoryHairdresserRepository) Create(ctx context.Context, h *entity.Hairdresser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	if _, exists := r.docs[h.ID]; exists {
		return errors.Conflict("Hairdresser already exists")
	}

	now := time.Now()
	h.CreatedAt = &now
	h.UpdatedAt = &now

	r.docs[h.ID] = encodeHairdresser(h)
	r.order = append(r.order, h.ID)
	return nil
}

func (r *memoryHairdresserRepository) GetByID(ctx context.Context, id string) (*entity.Hairdresser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, errors.NotFound("Hairdresser", nil)
	}
	return decodeHairdresser(id, doc), nil
}

func (r *memoryHairdresserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*entity.Hairdresser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if asString(r.docs[id]["firebaseUid"]) == uid && uid != "" {
			return decodeHairdresser(id, r.docs[id]), nil
		}
	}
	return nil, errors.NotFound("Hairdresser", nil)
}

func (r *memoryHairdresserRepository) ListPaid(ctx context.Context) ([]*entity.Hairdresser, error) {
	return r.list(func(doc map[string]interface{}) bool {
		paid, ok := doc["isPaid"].(bool)
		return ok && paid
	}), nil
}

func (r *memoryHairdresserRepository) ListAll(ctx context.Context) ([]*entity.Hairdresser, error) {
	return r.list(func(map[string]interface{}) bool { return true }), nil
}

func (r *memoryHairdresserRepository) ListStoredServices(ctx context.Context) (map[string]interface{}, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]interface{}, len(r.docs))
	for id, doc := range r.docs {
		out[id] = doc["services"]
	}
	return out, nil
}

func (r *memoryHairdresserRepository) list(keep func(map[string]interface{}) bool) []*entity.Hairdresser {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*entity.Hairdresser, 0, len(r.order))
	for _, id := range r.order {
		if keep(r.docs[id]) {
			out = append(out, decodeHairdresser(id, r.docs[id]))
		}
	}
	return out
}

func (r *memoryHairdresserRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return errors.NotFound("Hairdresser", nil)
	}
	for k, v := range fields {
		doc[k] = v
	}
	doc["updatedAt"] = time.Now()
	return nil
}

func (r *memoryHairdresserRepository) IncrementViews(ctx context.Context, id, sessionID string, guard repository.ViewGuard) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return false, nil
	}
	if !guard(decodeHairdresser(id, doc)) {
		return false, nil
	}

	doc["views"] = int64(asInt(doc["views"])) + 1
	if sessionID != "" {
		sessions, _ := doc["viewSessions"].(map[string]interface{})
		if sessions == nil {
			sessions = make(map[string]interface{})
			doc["viewSessions"] = sessions
		}
		sessions[sessionID] = true
	}
	return true, nil
}
