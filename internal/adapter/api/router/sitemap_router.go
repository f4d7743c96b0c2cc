package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"hairconnect/internal/adapter/api/handler"
)

func SetupSitemapRouter(g *echo.Group, sitemapHandler *handler.SitemapHandler) {
	g.GET("/sitemap.xml", sitemapHandler.GetSitemap, echomw.Gzip())
}
