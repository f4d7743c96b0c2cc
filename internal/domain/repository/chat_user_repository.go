package repository

import (
	"context"

	"hairconnect/internal/domain/entity"
)

type ChatUserRepository interface {
	Create(ctx context.Context, user *entity.ChatUser) error
	GetByID(ctx context.Context, id string) (*entity.ChatUser, error)
	GetByEmail(ctx context.Context, email string) (*entity.ChatUser, error)
	GetByPhone(ctx context.Context, phone string) (*entity.ChatUser, error)
}
