package entity

import "time"

type Message struct {
	ID             string     `json:"id" firestore:"id"`
	ConversationID string     `json:"conversationId" firestore:"conversationId"`
	SenderID       string     `json:"senderId" firestore:"senderId"`
	Content        string     `json:"content" firestore:"content"`
	CreatedAt      time.Time  `json:"createdAt" firestore:"createdAt"`
	ReadAt         *time.Time `json:"readAt" firestore:"readAt"`
}

// UnreadFor reports whether viewerID has yet to read a message someone else sent.
func (m *Message) UnreadFor(viewerID string) bool {
	return m.SenderID != viewerID && m.ReadAt == nil
}
