package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// AdminMiddleware admits uids from a fixed allow-list.
type AdminMiddleware struct {
	admins map[string]struct{}
}

func NewAdminMiddleware(adminUIDs []string) *AdminMiddleware {
	admins := make(map[string]struct{}, len(adminUIDs))
	for _, uid := range adminUIDs {
		admins[uid] = struct{}{}
	}
	return &AdminMiddleware{
		admins: admins,
	}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		if _, isAdmin := m.admins[uid]; !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Admin privileges required")
		}

		return next(c)
	}
}
