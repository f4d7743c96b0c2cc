package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/response"
)

type VerificationHandler struct {
	verificationUseCase *usecase.VerificationUseCase
}

func NewVerificationHandler(verificationUseCase *usecase.VerificationUseCase) *VerificationHandler {
	return &VerificationHandler{
		verificationUseCase: verificationUseCase,
	}
}

// Submit stores identity documents for a profile.
func (h *VerificationHandler) Submit(c echo.Context) error {
	form, err := parseMultipart(c)
	if err != nil {
		return response.Error(c, err)
	}

	hairdresserID := strings.TrimSpace(c.FormValue("hairdresserId"))
	if hairdresserID == "" {
		return response.Error(c, errors.BadRequest("hairdresserId is required", nil))
	}

	input := usecase.SubmitVerificationInput{
		HairdresserID: hairdresserID,
		Country:       strings.TrimSpace(c.FormValue("country")),
		IDType:        strings.TrimSpace(c.FormValue("idType")),
		IDNumber:      strings.TrimSpace(c.FormValue("idNumber")),
	}

	for field, dst := range map[string]**usecase.Upload{
		"idFront": &input.IDFront,
		"idBack":  &input.IDBack,
		"selfie":  &input.Selfie,
	} {
		upload, closeFn, err := singleFile(form, field)
		if err != nil {
			return response.Error(c, err)
		}
		defer closeFn()
		*dst = upload
	}

	verification, err := h.verificationUseCase.Submit(c.Request().Context(), input)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, verification)
}
