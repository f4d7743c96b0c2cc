package usecase

import (
	"sort"

	"hairconnect/internal/domain/entity"
)

// InboxEntry is one row of the reconciled inbox.
type InboxEntry struct {
	*entity.Conversation
	OtherParticipantID string             `json:"otherParticipantId"`
	Participant        entity.Participant `json:"participant"`
	UnreadCount        int                `json:"unreadCount"`
}

// Reconcile orders conversations newest first and keeps one per real person,
// using the participant's canonical id. Conversations are not modified.
func Reconcile(conversations []*entity.Conversation, viewerID string, participants map[string]entity.Participant) []*InboxEntry {
	sorted := make([]*entity.Conversation, len(conversations))
	copy(sorted, conversations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastMessageAt.After(sorted[j].LastMessageAt)
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]*InboxEntry, 0, len(sorted))
	for _, c := range sorted {
		otherID := c.OtherParticipant(viewerID)
		p, ok := participants[otherID]
		if !ok {
			p = unknownParticipant(otherID)
		}
		if p.CanonicalID == "" {
			p.CanonicalID = otherID
		}

		if _, dup := seen[p.CanonicalID]; dup {
			continue
		}
		seen[p.CanonicalID] = struct{}{}

		out = append(out, &InboxEntry{
			Conversation:       c,
			OtherParticipantID: otherID,
			Participant:        p,
		})
	}
	return out
}
