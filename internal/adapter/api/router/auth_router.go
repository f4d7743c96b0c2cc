package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

func SetupAuthRouter(g *echo.Group, authHandler *handler.AuthHandler, l limits) {
	g.POST("/auth/register", authHandler.Register, l.auth)
	g.POST("/auth/login", authHandler.Login, l.auth)
	g.GET("/chat-users/:id", authHandler.GetChatUser)
}
