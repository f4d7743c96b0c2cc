package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
)

const chatUsersCollection = "chatUsers"

type firestoreChatUserRepository struct {
	client *firestore.Client
}

func NewFirestoreChatUserRepository(client *firestore.Client) repository.ChatUserRepository {
	return &firestoreChatUserRepository{
		client: client,
	}
}

func (r *firestoreChatUserRepository) Create(ctx context.Context, user *entity.ChatUser) error {
	_, err := r.client.Collection(chatUsersCollection).Doc(user.ID).Create(ctx, user)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("Account already exists")
		}
		return errors.Internal("Failed to create chat user", err)
	}
	return nil
}

func (r *firestoreChatUserRepository) GetByID(ctx context.Context, id string) (*entity.ChatUser, error) {
	doc, err := r.client.Collection(chatUsersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Chat user", err)
		}
		return nil, errors.Internal("Failed to get chat user", err)
	}

	var user entity.ChatUser
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse chat user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}

func (r *firestoreChatUserRepository) GetByEmail(ctx context.Context, email string) (*entity.ChatUser, error) {
	return r.findOne(ctx, "email", email)
}

func (r *firestoreChatUserRepository) GetByPhone(ctx context.Context, phone string) (*entity.ChatUser, error) {
	return r.findOne(ctx, "phoneNumber", phone)
}

func (r *firestoreChatUserRepository) findOne(ctx context.Context, field, value string) (*entity.ChatUser, error) {
	iter := r.client.Collection(chatUsersCollection).Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Chat user", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query chat user", err)
	}

	var user entity.ChatUser
	if err := doc.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse chat user data", err)
	}
	user.ID = doc.Ref.ID
	return &user, nil
}
