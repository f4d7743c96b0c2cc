package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const hairdressersCollection = "sweethearts"

type firestoreHairdresserRepository struct {
	client *firestore.Client
}

func NewFirestoreHairdresserRepository(client *firestore.Client) repository.HairdresserRepository {
	return &firestoreHairdresserRepository{
		client: client,
	}
}

func (r *firestoreHairdresserRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(hairdressersCollection)
}

func (r *firestoreHairdresserRepository) Create(ctx context.Context, h *entity.Hairdresser) error {
	ref := r.collection().NewDoc()
	h.ID = ref.ID

	now := time.Now()
	h.CreatedAt = &now
	h.UpdatedAt = &now

	if _, err := ref.Set(ctx, h); err != nil {
		return errors.Internal("Failed to create hairdresser", err)
	}
	return nil
}

func (r *firestoreHairdresserRepository) GetByID(ctx context.Context, id string) (*entity.Hairdresser, error) {
	doc, err := r.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Hairdresser", err)
		}
		return nil, errors.Internal("Failed to get hairdresser", err)
	}
	return decodeHairdresser(doc.Ref.ID, doc.Data()), nil
}

func (r *firestoreHairdresserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*entity.Hairdresser, error) {
	iter := r.collection().Where("firebaseUid", "==", uid).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Hairdresser", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query hairdresser by uid", err)
	}
	return decodeHairdresser(doc.Ref.ID, doc.Data()), nil
}

func (r *firestoreHairdresserRepository) ListPaid(ctx context.Context) ([]*entity.Hairdresser, error) {
	return r.list(ctx, r.collection().Where("isPaid", "==", true))
}

func (r *firestoreHairdresserRepository) ListAll(ctx context.Context) ([]*entity.Hairdresser, error) {
	return r.list(ctx, r.collection().Query)
}

func (r *firestoreHairdresserRepository) ListStoredServices(ctx context.Context) (map[string]interface{}, error) {
	iter := r.collection().Select("services").Documents(ctx)
	defer iter.Stop()

	out := make(map[string]interface{})
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate hairdressers", err)
		}
		out[doc.Ref.ID] = doc.Data()["services"]
	}
	return out, nil
}

func (r *firestoreHairdresserRepository) list(ctx context.Context, query firestore.Query) ([]*entity.Hairdresser, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var out []*entity.Hairdresser
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			logger.Error("Firestore error while iterating hairdressers: %v", err)
			return nil, errors.Internal("Failed to iterate hairdressers", err)
		}
		out = append(out, decodeHairdresser(doc.Ref.ID, doc.Data()))
	}
	return out, nil
}

func (r *firestoreHairdresserRepository) Merge(ctx context.Context, id string, fields map[string]interface{}) error {
	updates := make([]firestore.Update, 0, len(fields)+1)
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: time.Now()})

	if _, err := r.collection().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Hairdresser", err)
		}
		return errors.Internal("Failed to update hairdresser", err)
	}
	return nil
}

func (r *firestoreHairdresserRepository) IncrementViews(ctx context.Context, id, sessionID string, guard repository.ViewGuard) (bool, error) {
	ref := r.collection().Doc(id)
	counted := false

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		counted = false

		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return nil
			}
			return err
		}

		if !guard(decodeHairdresser(snap.Ref.ID, snap.Data())) {
			return nil
		}

		updates := []firestore.Update{{Path: "views", Value: firestore.Increment(1)}}
		if sessionID != "" {
			// FieldPath keeps session ids containing dots from splitting the path.
			updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{"viewSessions", sessionID}, Value: true})
		}
		counted = true
		return tx.Update(ref, updates)
	})
	if err != nil {
		return false, errors.Internal("Failed to record view", err)
	}
	return counted, nil
}
