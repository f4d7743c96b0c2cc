package handler

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/response"
)

type LocationHandler struct {
	locationUseCase *usecase.LocationUseCase
}

func NewLocationHandler(locationUseCase *usecase.LocationUseCase) *LocationHandler {
	return &LocationHandler{
		locationUseCase: locationUseCase,
	}
}

func (h *LocationHandler) GetTowns(c echo.Context) error {
	return response.Success(c, h.locationUseCase.Towns())
}

func (h *LocationHandler) GetEstates(c echo.Context) error {
	townID, err := intParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.locationUseCase.Estates(townID))
}

func (h *LocationHandler) GetSubEstates(c echo.Context) error {
	estateID, err := intParam(c, "id")
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, h.locationUseCase.SubEstates(estateID))
}
