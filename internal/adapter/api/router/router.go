package router

import (
	"github.com/labstack/echo/v4"

	"hairconnect/internal/adapter/api/handler"
	"hairconnect/internal/adapter/api/middleware"
)

// Handlers groups every HTTP handler the API mounts.
type Handlers struct {
	Location     *handler.LocationHandler
	Hairdresser  *handler.HairdresserHandler
	Verification *handler.VerificationHandler
	Admin        *handler.AdminHandler
	Payment      *handler.PaymentHandler
	Chat         *handler.ChatHandler
	Auth         *handler.AuthHandler
	WebSocket    *handler.WebSocketHandler
	Sitemap      *handler.SitemapHandler
	Health       *handler.HealthHandler
}

type Middlewares struct {
	Auth          *middleware.AuthMiddleware
	Admin         *middleware.AdminMiddleware
	SecureCookies bool
}

// limits is shared by both mounts so /x and /api/x draw from one bucket.
type limits struct {
	auth    echo.MiddlewareFunc
	payment echo.MiddlewareFunc
	webhook echo.MiddlewareFunc
}

// Setup mounts every route at the root and again under /api.
func Setup(e *echo.Echo, h Handlers, m Middlewares) {
	l := limits{
		auth:    middleware.AuthRateLimit(),
		payment: middleware.PaymentRateLimit(),
		webhook: middleware.WebhookRateLimit(),
	}

	for _, prefix := range []string{"", "/api"} {
		g := e.Group(prefix)

		SetupHealthRouter(g, h.Health)
		SetupLocationRouter(g, h.Location)
		SetupHairdresserRouter(g, h.Hairdresser, m)
		SetupVerificationRouter(g, h.Verification, h.Admin, m)
		SetupPaymentRouter(g, h.Payment, l)
		SetupChatRouter(g, h.Chat, h.WebSocket, m)
		SetupAuthRouter(g, h.Auth, l)
		SetupSitemapRouter(g, h.Sitemap)
	}
}
