package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

func SetupLocationRouter(g *echo.Group, locationHandler *handler.LocationHandler) {
	g.GET("/towns", locationHandler.GetTowns)
	g.GET("/towns/:id/estates", locationHandler.GetEstates)
	g.GET("/estates/:id/sub-estates", locationHandler.GetSubEstates)
}
