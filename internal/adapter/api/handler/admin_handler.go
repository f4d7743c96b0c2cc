package handler

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/response"
)

type AdminHandler struct {
	verificationUseCase *usecase.VerificationUseCase
	maintenanceUseCase  *usecase.MaintenanceUseCase
	sitemapUseCase      *usecase.SitemapUseCase
}

func NewAdminHandler(
	verificationUseCase *usecase.VerificationUseCase,
	maintenanceUseCase *usecase.MaintenanceUseCase,
	sitemapUseCase *usecase.SitemapUseCase,
) *AdminHandler {
	return &AdminHandler{
		verificationUseCase: verificationUseCase,
		maintenanceUseCase:  maintenanceUseCase,
		sitemapUseCase:      sitemapUseCase,
	}
}

// ReviewVerification approves or rejects a submitted identity check.
func (h *AdminHandler) ReviewVerification(c echo.Context) error {
	var req usecase.ReviewVerificationInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	verification, err := h.verificationUseCase.Review(c.Request().Context(), c.Param("hairdresserId"), authUID(c), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, verification)
}

// NormalizeServices runs the stored service-tag rewrite on demand.
func (h *AdminHandler) NormalizeServices(c echo.Context) error {
	report, err := h.maintenanceUseCase.NormalizeStoredServices(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, report)
}

func (h *AdminHandler) RefreshSitemap(c echo.Context) error {
	if _, err := h.sitemapUseCase.Refresh(c.Request().Context()); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "refreshed"})
}
