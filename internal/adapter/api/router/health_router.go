package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

func SetupHealthRouter(g *echo.Group, healthHandler *handler.HealthHandler) {
	g.GET("/health", healthHandler.CheckHealth)
	g.GET("/health/ready", healthHandler.CheckReady)
	g.GET("/placeholder/:width/:height", handler.Placeholder)
}
