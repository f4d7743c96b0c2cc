package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"hairconnect/internal/usecase"
	"hairconnect/pkg/errors"
	"hairconnect/pkg/logger"
	"hairconnect/pkg/response"
)

const (
	PaystackSignatureHeader = "x-paystack-signature"
	maxWebhookBody          = 1 << 20
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) Initiate(c echo.Context) error {
	var req usecase.InitiatePaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.Initiate(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *PaymentHandler) Verify(c echo.Context) error {
	var req usecase.VerifyPaymentInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.paymentUseCase.Verify(c.Request().Context(), c.Param("id"), req.Reference)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, profile)
}

// Webhook receives Paystack events. The signature covers the raw body, so it
// is read before any decoding. Replies are plain text.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return c.String(http.StatusBadRequest, "unreadable body")
	}

	err = h.paymentUseCase.HandleWebhook(c.Request().Context(), body, c.Request().Header.Get(PaystackSignatureHeader))
	if err == nil {
		return c.String(http.StatusOK, "ok")
	}

	switch errors.StatusOf(err) {
	case http.StatusUnauthorized:
		return c.String(http.StatusUnauthorized, "invalid signature")
	case http.StatusBadRequest:
		return c.String(http.StatusBadRequest, "invalid payload")
	default:
		logger.Error("Paystack webhook processing failed: %v", err)
		return c.String(http.StatusInternalServerError, "error")
	}
}
