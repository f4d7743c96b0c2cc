package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
)

func SetupPaymentRouter(g *echo.Group, paymentHandler *handler.PaymentHandler, l limits) {
	g.POST("/hairdressers/:id/initiate-payment", paymentHandler.Initiate, l.payment)
	g.POST("/hairdressers/:id/verify-payment", paymentHandler.Verify, l.payment)

	// Paystack calls this directly; the signature is the only credential.
	g.POST("/paystack/webhook", paymentHandler.Webhook, l.webhook)
}
