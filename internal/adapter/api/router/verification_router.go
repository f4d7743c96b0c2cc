package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

func SetupVerificationRouter(g *echo.Group, verificationHandler *handler.VerificationHandler, adminHandler *handler.AdminHandler, m Middlewares) {
	g.POST("/verification", verificationHandler.Submit)

	admin := g.Group("/admin")
	admin.Use(m.Auth.Authenticate)
	admin.Use(m.Admin.AdminOnly)

	admin.PUT("/verification/:hairdresserId", adminHandler.ReviewVerification)
	admin.POST("/maintenance/normalize-services", adminHandler.NormalizeServices)
	admin.POST("/maintenance/sitemap", adminHandler.RefreshSitemap)
}
