package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

const bcryptCost = 10

type ChatUserUseCase struct {
	chatUserRepo repository.ChatUserRepository
}

func NewChatUserUseCase(chatUserRepo repository.ChatUserRepository) *ChatUserUseCase {
	return &ChatUserUseCase{
		chatUserRepo: chatUserRepo,
	}
}

type RegisterChatUserInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" validate:"required,min=6"`
}

type LoginChatUserInput struct {
	EmailOrPhone string `json:"emailOrPhone" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

func (uc *ChatUserUseCase) Register(ctx context.Context, input RegisterChatUserInput) (*entity.ChatUser, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	phone := strings.TrimSpace(input.PhoneNumber)

	if name == "" {
		return nil, errors.BadRequest("Name is required", nil)
	}
	if email == "" && phone == "" {
		return nil, errors.BadRequest("Email or phone number is required", nil)
	}
	if len(input.Password) < 6 {
		return nil, errors.BadRequest("Password must be at least 6 characters", nil)
	}

	if email != "" {
		if err := uc.ensureUnused(ctx, uc.chatUserRepo.GetByEmail, email); err != nil {
			return nil, err
		}
	}
	if phone != "" {
		if err := uc.ensureUnused(ctx, uc.chatUserRepo.GetByPhone, phone); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	user := &entity.ChatUser{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := uc.chatUserRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Chat user registered: %s", user.ID)
	return user, nil
}

func (uc *ChatUserUseCase) ensureUnused(ctx context.Context, lookup func(context.Context, string) (*entity.ChatUser, error), value string) error {
	_, err := lookup(ctx, value)
	if err == nil {
		return errors.Conflict("An account with these details already exists")
	}
	if errors.Is(err, "NOT_FOUND") {
		return nil
	}
	return err
}

// Login checks credentials by email, then by phone. Every failure is the same
// 401 so callers cannot probe which accounts exist.
func (uc *ChatUserUseCase) Login(ctx context.Context, input LoginChatUserInput) (*entity.ChatUser, error) {
	identifier := strings.TrimSpace(input.EmailOrPhone)

	user, err := uc.chatUserRepo.GetByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, "NOT_FOUND") {
		user, err = uc.chatUserRepo.GetByPhone(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return nil, errors.Unauthorized("Invalid credentials", nil)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials", nil)
	}
	return user, nil
}

func (uc *ChatUserUseCase) GetByID(ctx context.Context, id string) (*entity.ChatUser, error) {
	return uc.chatUserRepo.GetByID(ctx, id)
}
