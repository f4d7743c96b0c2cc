package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

// SetupChatRouter mounts the chat API. Guests chat without a bearer token,
// so auth is optional and identity falls back to X-User-Id or userId.
func SetupChatRouter(g *echo.Group, chatHandler *handler.ChatHandler, wsHandler *handler.WebSocketHandler, m Middlewares) {
	chats := g.Group("/chats")
	chats.Use(m.Auth.OptionalAuth)

	chats.GET("/ws", wsHandler.HandleWebSocket)

	chats.POST("/start", chatHandler.Start)
	chats.GET("", chatHandler.List)
	chats.GET("/inbox", chatHandler.Inbox)
	chats.GET("/:id/messages", chatHandler.Messages)
	chats.POST("/:id/messages", chatHandler.Send)
	chats.GET("/:id/unread", chatHandler.Unread)
	chats.POST("/:id/read", chatHandler.MarkRead)
}
