package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReadMarker struct {
	marked int
	err    error
	calls  []string
}

func (s *stubReadMarker) MarkRead(ctx context.Context, conversationID, viewerID string) (int, error) {
	s.calls = append(s.calls, conversationID+"/"+viewerID)
	return s.marked, s.err
}

func startManager(t *testing.T) *Manager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	m := NewManager()
	m.Start(ctx)
	return m
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw := <-c.Send:
		var event Event
		require.NoError(t, json.Unmarshal(raw, &event))
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestManager_RegisterAndNotify(t *testing.T) {
	m := startManager(t)

	tab1 := NewClient("prof-123", nil)
	tab2 := NewClient("prof-123", nil)
	m.Register <- tab1
	m.Register <- tab2

	assert.Eventually(t, func() bool { return m.IsOnline("prof-123") }, time.Second, 10*time.Millisecond)
	assert.False(t, m.IsOnline("guest-abc"))

	m.Notify("prof-123", EventNewMessage, map[string]string{"content": "hi"})

	for _, c := range []*Client{tab1, tab2} {
		event := receive(t, c)
		assert.Equal(t, EventNewMessage, event.Type)
		assert.Equal(t, map[string]interface{}{"content": "hi"}, event.Data)
		assert.NotEmpty(t, event.Timestamp)
	}

	t.Run("unregister closes the send channel", func(t *testing.T) {
		m.Unregister <- tab1
		assert.Eventually(t, func() bool {
			select {
			case _, open := <-tab1.Send:
				return !open
			default:
				return false
			}
		}, time.Second, 10*time.Millisecond)
		assert.True(t, m.IsOnline("prof-123"))

		m.Unregister <- tab2
		assert.Eventually(t, func() bool { return !m.IsOnline("prof-123") }, time.Second, 10*time.Millisecond)
	})
}

func TestManager_StoppedManagerDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m := NewManager()
	m.Start(ctx)

	live := &Client{UserID: "u1", Send: make(chan []byte, sendBuffer)}
	require.True(t, m.Add(live))

	cancel()
	select {
	case <-m.Done():
	case <-time.After(time.Second):
		t.Fatal("manager loop did not stop")
	}

	finished := make(chan struct{})
	go func() {
		m.Remove(live)
		assert.False(t, m.Add(&Client{UserID: "u2", Send: make(chan []byte, 1)}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("register or unregister blocked after shutdown")
	}
}

func TestManager_FullBufferDropsEvents(t *testing.T) {
	m := startManager(t)
	c := NewClient("u1", nil)
	m.Register <- c
	require.Eventually(t, func() bool { return m.IsOnline("u1") }, time.Second, 10*time.Millisecond)

	for i := 0; i < sendBuffer+5; i++ {
		m.SendToUser("u1", []byte(fmt.Sprintf(`{"n":%d}`, i)))
	}
	assert.Len(t, c.Send, sendBuffer)
}

func TestManager_HandleClientMessage(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		m := NewManager()
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`{"type":"ping"}`))
		assert.Equal(t, EventPong, receive(t, c).Type)
	})

	t.Run("invalid json", func(t *testing.T) {
		m := NewManager()
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`not json`))
		event := receive(t, c)
		assert.Equal(t, EventError, event.Type)
		assert.Equal(t, map[string]interface{}{"message": "Invalid message format"}, event.Data)
	})

	t.Run("unsupported type", func(t *testing.T) {
		m := NewManager()
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`{"type":"typing"}`))
		assert.Equal(t, EventError, receive(t, c).Type)
	})

	t.Run("mark read", func(t *testing.T) {
		m := NewManager()
		marker := &stubReadMarker{marked: 2}
		m.SetReadMarker(marker)
		c := NewClient("u1", nil)

		m.HandleClientMessage(c, []byte(`{"type":"mark_read","conversationId":"u1_u2"}`))
		event := receive(t, c)
		assert.Equal(t, EventRead, event.Type)
		assert.Equal(t, "u1_u2", event.ConversationID)
		assert.Equal(t, map[string]interface{}{"conversationId": "u1_u2", "marked": float64(2)}, event.Data)
		assert.Equal(t, []string{"u1_u2/u1"}, marker.calls)
	})

	t.Run("mark read without conversation", func(t *testing.T) {
		m := NewManager()
		m.SetReadMarker(&stubReadMarker{})
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`{"type":"mark_read"}`))
		assert.Equal(t, EventError, receive(t, c).Type)
	})

	t.Run("mark read failure", func(t *testing.T) {
		m := NewManager()
		m.SetReadMarker(&stubReadMarker{err: fmt.Errorf("boom")})
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`{"type":"mark_read","conversationId":"u1_u2"}`))
		assert.Equal(t, EventError, receive(t, c).Type)
	})

	t.Run("mark read unavailable", func(t *testing.T) {
		m := NewManager()
		c := NewClient("u1", nil)
		m.HandleClientMessage(c, []byte(`{"type":"mark_read","conversationId":"u1_u2"}`))
		assert.Equal(t, EventError, receive(t, c).Type)
	})
}
