package repository

import (
	"context"
	"strings"
	"sync"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
)

type memoryChatUserRepository struct {
	mu    sync.Mutex
	users map[string]entity.ChatUser
}

func NewMemoryChatUserRepository() repository.ChatUserRepository {
	return &memoryChatUserRepository{
		users: make(map[string]entity.ChatUser),
	}
}

func (r *memoryChatUserRepository) Create(ctx context.Context, user *entity.ChatUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.ID]; exists {
		return errors.Conflict("Account already exists")
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memoryChatUserRepository) GetByID(ctx context.Context, id string) (*entity.ChatUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("Chat user", nil)
	}
	return &user, nil
}

func (r *memoryChatUserRepository) GetByEmail(ctx context.Context, email string) (*entity.ChatUser, error) {
	return r.find(func(u entity.ChatUser) bool {
		return u.Email != "" && strings.EqualFold(u.Email, email)
	})
}

func (r *memoryChatUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.ChatUser, error) {
	return r.find(func(u entity.ChatUser) bool {
		return u.PhoneNumber != "" && u.PhoneNumber == phone
	})
}

func (r *memoryChatUserRepository) find(match func(entity.ChatUser) bool) (*entity.ChatUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if match(user) {
			u := user
			return &u, nil
		}
	}
	return nil, errors.NotFound("Chat user", nil)
}
