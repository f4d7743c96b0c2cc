package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/response"
)

type SitemapHandler struct {
	sitemapUseCase *usecase.SitemapUseCase
}

func NewSitemapHandler(sitemapUseCase *usecase.SitemapUseCase) *SitemapHandler {
	return &SitemapHandler{
		sitemapUseCase: sitemapUseCase,
	}
}

func (h *SitemapHandler) GetSitemap(c echo.Context) error {
	body, err := h.sitemapUseCase.Get(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationXMLCharsetUTF8, body)
}
