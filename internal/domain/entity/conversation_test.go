package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConversationID(t *testing.T) {
	assert.Equal(t, "alice_bob", ConversationID("alice", "bob"))
	assert.Equal(t, ConversationID("alice", "bob"), ConversationID("bob", "alice"))
}

func TestParticipantPair(t *testing.T) {
	assert.Equal(t, []string{"guest-abc", "prof-123"}, ParticipantPair("prof-123", "guest-abc"))
	assert.Equal(t, []string{"guest-abc", "prof-123"}, ParticipantPair("guest-abc", "prof-123"))
}

func TestOtherParticipant(t *testing.T) {
	c := &Conversation{ParticipantIDs: []string{"alice", "bob"}}
	assert.Equal(t, "bob", c.OtherParticipant("alice"))
	assert.Equal(t, "alice", c.OtherParticipant("bob"))

	solo := &Conversation{ParticipantIDs: []string{"alice"}}
	assert.Equal(t, "unknown", solo.OtherParticipant("alice"))

	assert.True(t, c.HasParticipant("bob"))
	assert.False(t, c.HasParticipant("carol"))
}

func TestMessageUnreadFor(t *testing.T) {
	now := time.Now()
	unread := &Message{SenderID: "alice"}
	read := &Message{SenderID: "alice", ReadAt: &now}

	assert.True(t, unread.UnreadFor("bob"))
	assert.False(t, unread.UnreadFor("alice"))
	assert.False(t, read.UnreadFor("bob"))
}

func TestHairdresserListable(t *testing.T) {
	yes, no := true, false

	assert.True(t, (&Hairdresser{IsPaid: true}).Listable())
	assert.True(t, (&Hairdresser{IsPaid: true, IsVerified: &yes}).Listable())
	assert.False(t, (&Hairdresser{IsPaid: true, IsVerified: &no}).Listable())
	assert.False(t, (&Hairdresser{IsPaid: false, IsVerified: &yes}).Listable())
}
