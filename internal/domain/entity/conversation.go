package entity

import (
	"sort"
	"strings"
	"time"
)

const ConversationIDSeparator = "_"

type Conversation struct {
	ID             string    `json:"id" firestore:"id"`
	ParticipantIDs []string  `json:"participantIds" firestore:"participantIds"`
	LastMessageAt  time.Time `json:"lastMessageAt" firestore:"lastMessageAt"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// ParticipantPair returns a and b in lexicographic order.
func ParticipantPair(a, b string) []string {
	ids := []string{a, b}
	sort.Strings(ids)
	return ids
}

// ConversationID derives the canonical id for an unordered pair.
func ConversationID(a, b string) string {
	return strings.Join(ParticipantPair(a, b), ConversationIDSeparator)
}

// OtherParticipant returns the first participant that is not viewerID.
func (c *Conversation) OtherParticipant(viewerID string) string {
	for _, id := range c.ParticipantIDs {
		if id != viewerID {
			return id
		}
	}
	return "unknown"
}

func (c *Conversation) HasParticipant(userID string) bool {
	for _, id := range c.ParticipantIDs {
		if id == userID {
			return true
		}
	}
	return false
}
