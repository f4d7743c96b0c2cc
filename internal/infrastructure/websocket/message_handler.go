package websocket

import (
	"context"
	"encoding/json"
	"time"

	"hairconnect/pkg/logger"
)

const (
	EventPing       = "ping"
	EventPong       = "pong"
	EventNewMessage = "new_message"
	EventMarkRead   = "mark_read"
	EventRead       = "messages_read"
	EventError      = "error"
)

// Event is the frame pushed to and received from clients.
type Event struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversationId,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Timestamp      string      `json:"timestamp"`
}

// ReadMarker applies a read receipt on behalf of a socket's user.
type ReadMarker interface {
	MarkRead(ctx context.Context, conversationID, viewerID string) (int, error)
}

type ReadResult struct {
	ConversationID string `json:"conversationId"`
	Marked         int    `json:"marked"`
}

func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		m.sendError(client, "Invalid message format")
		return
	}

	switch event.Type {
	case EventPing:
		m.sendTo(client, Event{Type: EventPong})

	case EventMarkRead:
		m.handleMarkRead(client, event.ConversationID)

	default:
		m.sendError(client, "Unsupported event type")
	}
}

func (m *Manager) handleMarkRead(client *Client, conversationID string) {
	if m.readMarker == nil {
		m.sendError(client, "Read receipts are not available")
		return
	}
	if conversationID == "" {
		m.sendError(client, "conversationId is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()

	marked, err := m.readMarker.MarkRead(ctx, conversationID, client.UserID)
	if err != nil {
		logger.Warn("WebSocket mark_read failed for %s in %s: %v", client.UserID, conversationID, err)
		m.sendError(client, "Failed to mark messages read")
		return
	}
	m.sendTo(client, Event{
		Type:           EventRead,
		ConversationID: conversationID,
		Data:           ReadResult{ConversationID: conversationID, Marked: marked},
	})
}

func (m *Manager) sendError(client *Client, message string) {
	m.sendTo(client, Event{Type: EventError, Data: map[string]string{"message": message}})
}

func (m *Manager) sendTo(client *Client, event Event) {
	event.Timestamp = time.Now().UTC().Format(time.RFC3339)
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}
