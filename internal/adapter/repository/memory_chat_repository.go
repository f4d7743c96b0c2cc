package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/pkg/errors"
)

type memoryChatRepository struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
}

func NewMemoryChatRepository() repository.ChatRepository {
	return &memoryChatRepository{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func copyConversation(c *entity.Conversation) *entity.Conversation {
	out := *c
	out.ParticipantIDs = append([]string(nil), c.ParticipantIDs...)
	return &out
}

func copyMessage(m *entity.Message) *entity.Message {
	out := *m
	if m.ReadAt != nil {
		readAt := *m.ReadAt
		out.ReadAt = &readAt
	}
	return &out
}

func (r *memoryChatRepository) GetConversation(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return copyConversation(c), nil
}

func (r *memoryChatRepository) CreateConversation(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.conversations[conversation.ID]; exists {
		return errors.Conflict("Conversation already exists")
	}
	r.conversations[conversation.ID] = copyConversation(conversation)
	return nil
}

func (r *memoryChatRepository) ListConversationsByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.Conversation
	for _, c := range r.conversations {
		if c.HasParticipant(userID) {
			out = append(out, copyConversation(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *memoryChatRepository) TouchConversation(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.conversations[id]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	c.LastMessageAt = at
	c.UpdatedAt = at
	return nil
}

func (r *memoryChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], copyMessage(message))
	return nil
}

func (r *memoryChatRepository) ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.messages[conversationID]
	out := make([]*entity.Message, 0, len(stored))
	for _, m := range stored {
		out = append(out, copyMessage(m))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryChatRepository) MarkMessagesRead(ctx context.Context, conversationID string, messageIDs []string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]struct{}, len(messageIDs))
	for _, id := range messageIDs {
		wanted[id] = struct{}{}
	}
	for _, m := range r.messages[conversationID] {
		if _, ok := wanted[m.ID]; ok {
			readAt := at
			m.ReadAt = &readAt
		}
	}
	return nil
}
