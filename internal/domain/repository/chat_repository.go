package repository

import (
	"context"
	"time"

	"hairconnect/internal/domain/entity"
)

type ChatRepository interface {
	GetConversation(ctx context.Context, id string) (*entity.Conversation, error)
	CreateConversation(ctx context.Context, conversation *entity.Conversation) error
	ListConversationsByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error)
	TouchConversation(ctx context.Context, id string, at time.Time) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error)
	MarkMessagesRead(ctx context.Context, conversationID string, messageIDs []string, at time.Time) error
}
