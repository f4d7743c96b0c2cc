package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
	"hairconnect/internal/adapter/api/middleware"
)

func SetupHairdresserRouter(g *echo.Group, hairdresserHandler *handler.HairdresserHandler, m Middlewares) {
	hairdressers := g.Group("/hairdressers")

	hairdressers.GET("", hairdresserHandler.List)
	hairdressers.POST("", hairdresserHandler.Create)

	// Static segments are registered before /:id; echo prefers them either way.
	hairdressers.GET("/me", hairdresserHandler.GetMe, m.Auth.Authenticate)
	hairdressers.GET("/by-uid/:uid", hairdresserHandler.GetByUID)
	hairdressers.GET("/:id", hairdresserHandler.GetByID, m.Auth.OptionalAuth, middleware.Session(m.SecureCookies))
	hairdressers.POST("/:id/link-auth", hairdresserHandler.LinkAuth, m.Auth.Authenticate)
}
