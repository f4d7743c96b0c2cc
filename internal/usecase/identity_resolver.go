package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/domain/service"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const (
	GuestIDPrefix    = "guest-"
	GuestLabel       = "Guest User"
	DefaultUserLabel = "User"
)

// IdentityResolver maps participant ids to identities in one batch. It never
// fails: ids it cannot resolve come back as placeholders.
type IdentityResolver interface {
	Resolve(ctx context.Context, ids []string) map[string]entity.Participant
}

// ParticipantLabel picks the display label: nickName, then fullName, then a
// guest or generic placeholder.
func ParticipantLabel(nickName, fullName, id string) string {
	if s := strings.TrimSpace(nickName); s != "" {
		return s
	}
	if s := strings.TrimSpace(fullName); s != "" {
		return s
	}
	if strings.HasPrefix(id, GuestIDPrefix) {
		return GuestLabel
	}
	return DefaultUserLabel
}

func unknownParticipant(id string) entity.Participant {
	return entity.Participant{
		ID:          id,
		CanonicalID: id,
		Label:       ParticipantLabel("", "", id),
		Kind:        entity.ParticipantUnknown,
	}
}

func hairdresserParticipant(id string, h *entity.Hairdresser) entity.Participant {
	canonical := h.FirebaseUID
	if canonical == "" {
		canonical = h.ID
	}
	if canonical == "" {
		canonical = id
	}
	return entity.Participant{
		ID:          id,
		CanonicalID: canonical,
		Label:       ParticipantLabel(h.NickName, h.FullName, id),
		Photo:       h.ProfilePhoto,
		Kind:        entity.ParticipantHairdresser,
	}
}

type storeIdentityResolver struct {
	hairdresserRepo repository.HairdresserRepository
	chatUserRepo    repository.ChatUserRepository
}

func NewStoreIdentityResolver(hairdresserRepo repository.HairdresserRepository, chatUserRepo repository.ChatUserRepository) IdentityResolver {
	return &storeIdentityResolver{
		hairdresserRepo: hairdresserRepo,
		chatUserRepo:    chatUserRepo,
	}
}

// Resolve tries, per distinct id: profile by document id, profile by owner
// uid, chat account, then falls back to a placeholder.
func (r *storeIdentityResolver) Resolve(ctx context.Context, ids []string) map[string]entity.Participant {
	out := make(map[string]entity.Participant, len(ids))
	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		out[id] = r.resolveOne(ctx, id)
	}
	return out
}

func (r *storeIdentityResolver) resolveOne(ctx context.Context, id string) entity.Participant {
	if id == "" || id == "unknown" {
		return unknownParticipant(id)
	}

	if h, err := r.hairdresserRepo.GetByID(ctx, id); err == nil {
		return hairdresserParticipant(id, h)
	} else if !errors.Is(err, "NOT_FOUND") {
		logger.Warn("Identity lookup by profile id failed for %s: %v", id, err)
	}

	if h, err := r.hairdresserRepo.GetByFirebaseUID(ctx, id); err == nil {
		return hairdresserParticipant(id, h)
	} else if !errors.Is(err, "NOT_FOUND") {
		logger.Warn("Identity lookup by uid failed for %s: %v", id, err)
	}

	if r.chatUserRepo != nil {
		if u, err := r.chatUserRepo.GetByID(ctx, id); err == nil {
			return entity.Participant{
				ID:          id,
				CanonicalID: u.ID,
				Label:       ParticipantLabel("", u.Name, id),
				Kind:        entity.ParticipantChatUser,
			}
		} else if !errors.Is(err, "NOT_FOUND") {
			logger.Warn("Identity lookup by chat user failed for %s: %v", id, err)
		}
	}

	return unknownParticipant(id)
}

const participantCacheTTL = 5 * time.Minute

type cachedIdentityResolver struct {
	inner IdentityResolver
	cache service.Cache
	ttl   time.Duration
}

// NewCachedIdentityResolver fronts inner with cache under participant:{id}.
// Placeholders are not cached so a later registration shows up at once.
func NewCachedIdentityResolver(inner IdentityResolver, cache service.Cache) IdentityResolver {
	return &cachedIdentityResolver{
		inner: inner,
		cache: cache,
		ttl:   participantCacheTTL,
	}
}

func participantCacheKey(id string) string {
	return "participant:" + id
}

func (r *cachedIdentityResolver) Resolve(ctx context.Context, ids []string) map[string]entity.Participant {
	out := make(map[string]entity.Participant, len(ids))
	var misses []string

	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		raw, ok, err := r.cache.Get(ctx, participantCacheKey(id))
		if err != nil {
			logger.Warn("Participant cache read failed for %s: %v", id, err)
		}
		var p entity.Participant
		if ok && json.Unmarshal([]byte(raw), &p) == nil {
			out[id] = p
			continue
		}
		misses = append(misses, id)
	}

	if len(misses) == 0 {
		return out
	}

	for id, p := range r.inner.Resolve(ctx, misses) {
		out[id] = p
		if p.Kind == entity.ParticipantUnknown {
			continue
		}
		payload, err := json.Marshal(p)
		if err != nil {
			continue
		}
		if err := r.cache.Set(ctx, participantCacheKey(id), string(payload), r.ttl); err != nil {
			logger.Warn("Participant cache write failed for %s: %v", id, err)
		}
	}
	return out
}
