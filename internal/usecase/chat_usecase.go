package usecase

import (
	"context"
	"strings"
	"time"

	"hairconnect/internal/domain/entity"
	"hairconnect/internal/domain/repository"
	"hairconnect/internal/infrastructure/ratelimit"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
)

// EventNotifier pushes an event to a user's live connections, if any.
type EventNotifier interface {
	Notify(userID, eventType string, data interface{})
}

const EventNewMessage = "new_message"

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	identities  IdentityResolver
	rateLimiter *ratelimit.RateLimiter
	notifier    EventNotifier
	now         func() time.Time
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	identities IdentityResolver,
	rateLimiter *ratelimit.RateLimiter,
	notifier EventNotifier,
) *ChatUseCase {
	return &ChatUseCase{
		chatRepo:    chatRepo,
		identities:  identities,
		rateLimiter: rateLimiter,
		notifier:    notifier,
		now:         time.Now,
	}
}

func (uc *ChatUseCase) allow(userID, action, message string) error {
	if uc.rateLimiter == nil {
		return nil
	}
	allowed, wait := uc.rateLimiter.Allow(userID, action)
	if !allowed {
		logger.Warn("%s rate limited: user %s must wait %v", action, userID, wait)
		return errors.TooManyRequests(message, wait)
	}
	return nil
}

// StartConversation returns the pair's conversation, creating it on first use.
func (uc *ChatUseCase) StartConversation(ctx context.Context, userID, recipientID string) (*entity.Conversation, error) {
	userID = strings.TrimSpace(userID)
	recipientID = strings.TrimSpace(recipientID)

	if recipientID == "" {
		return nil, errors.BadRequest("Invalid recipient", nil)
	}
	if userID == "" {
		return nil, errors.BadRequest("Missing user identity", nil)
	}
	if userID == recipientID {
		return nil, errors.BadRequest("Cannot start a conversation with yourself", nil)
	}

	id := entity.ConversationID(userID, recipientID)

	existing, err := uc.chatRepo.GetConversation(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	if err := uc.allow(userID, ratelimit.ActionStartChat, "Rate limit exceeded. Please wait before starting another conversation"); err != nil {
		return nil, err
	}

	now := uc.now()
	conversation := &entity.Conversation{
		ID:             id,
		ParticipantIDs: entity.ParticipantPair(userID, recipientID),
		LastMessageAt:  now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.chatRepo.CreateConversation(ctx, conversation); err != nil {
		if errors.Is(err, "CONFLICT") {
			return uc.chatRepo.GetConversation(ctx, id)
		}
		return nil, err
	}

	logger.Info("Conversation %s started by %s", id, userID)
	return conversation, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.BadRequest("Missing user identity", nil)
	}
	return uc.chatRepo.ListConversationsByParticipant(ctx, userID)
}

func (uc *ChatUseCase) SendMessage(ctx context.Context, conversationID, senderID, content string) (*entity.Message, error) {
	senderID = strings.TrimSpace(senderID)
	if senderID == "" {
		return nil, errors.BadRequest("Missing user identity", nil)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}

	conversation, err := uc.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	if err := uc.allow(senderID, ratelimit.ActionSendMessage, "Rate limit exceeded. Please slow down"); err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      uc.now(),
	}
	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	if err := uc.chatRepo.TouchConversation(ctx, conversationID, message.CreatedAt); err != nil {
		logger.Warn("Failed to update conversation %s after message %s: %v", conversationID, message.ID, err)
	}

	if uc.notifier != nil {
		for _, participant := range conversation.ParticipantIDs {
			if participant != senderID {
				uc.notifier.Notify(participant, EventNewMessage, message)
			}
		}
	}

	return message, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, conversationID string) ([]*entity.Message, error) {
	if _, err := uc.chatRepo.GetConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	return uc.chatRepo.ListMessages(ctx, conversationID)
}

func (uc *ChatUseCase) UnreadCount(ctx context.Context, conversationID, viewerID string) (int, error) {
	if strings.TrimSpace(viewerID) == "" {
		return 0, errors.BadRequest("Missing user identity", nil)
	}
	messages, err := uc.chatRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	return countUnread(messages, viewerID), nil
}

func countUnread(messages []*entity.Message, viewerID string) int {
	n := 0
	for _, m := range messages {
		if m.UnreadFor(viewerID) {
			n++
		}
	}
	return n
}

// MarkRead stamps readAt on every message unread by viewerID and returns how many.
func (uc *ChatUseCase) MarkRead(ctx context.Context, conversationID, viewerID string) (int, error) {
	if strings.TrimSpace(viewerID) == "" {
		return 0, errors.BadRequest("Missing user identity", nil)
	}
	messages, err := uc.chatRepo.ListMessages(ctx, conversationID)
	if err != nil {
		return 0, err
	}

	var ids []string
	for _, m := range messages {
		if m.UnreadFor(viewerID) {
			ids = append(ids, m.ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := uc.chatRepo.MarkMessagesRead(ctx, conversationID, ids, uc.now()); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Inbox lists the viewer's conversations collapsed to one per counterpart.
func (uc *ChatUseCase) Inbox(ctx context.Context, viewerID string) ([]*InboxEntry, error) {
	conversations, err := uc.ListConversations(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	otherIDs := make([]string, 0, len(conversations))
	for _, c := range conversations {
		otherIDs = append(otherIDs, c.OtherParticipant(viewerID))
	}

	participants := map[string]entity.Participant{}
	if uc.identities != nil {
		participants = uc.identities.Resolve(ctx, otherIDs)
	}

	entries := Reconcile(conversations, viewerID, participants)
	for _, entry := range entries {
		messages, err := uc.chatRepo.ListMessages(ctx, entry.ID)
		if err != nil {
			logger.Warn("Failed to count unread messages in %s: %v", entry.ID, err)
			continue
		}
		entry.UnreadCount = countUnread(messages, viewerID)
	}
	return entries, nil
}
