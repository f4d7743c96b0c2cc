package entity

const (
	ParticipantHairdresser = "hairdresser"
	ParticipantChatUser    = "chat_user"
	ParticipantUnknown     = "unknown"
)

// Participant is the resolved identity behind a conversation participant id.
type Participant struct {
	ID          string  `json:"id"`
	CanonicalID string  `json:"canonicalId"`
	Label       string  `json:"label"`
	Photo       *string `json:"photo,omitempty"`
	Kind        string  `json:"kind"`
}
