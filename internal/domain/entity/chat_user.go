package entity

import "time"

// ChatUser is a chat-only account with no provider profile.
type ChatUser struct {
	ID           string    `json:"id" firestore:"id"`
	Name         string    `json:"name" firestore:"name"`
	Email        string    `json:"email,omitempty" firestore:"email,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty" firestore:"phoneNumber,omitempty"`
	PasswordHash string    `json:"-" firestore:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt" firestore:"createdAt"`
}
