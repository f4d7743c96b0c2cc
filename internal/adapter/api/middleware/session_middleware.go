package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	SessionCookieName = "sessionId"
	sessionContextKey = "sessionId"
	sessionMaxAge     = 365 * 24 * time.Hour
)

// Session makes sure every visitor carries a sessionId cookie, minting one
// on first contact.
func Session(secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				c.Set(sessionContextKey, cookie.Value)
				return next(c)
			}

			sid := uuid.New().String()
			c.SetCookie(&http.Cookie{
				Name:     SessionCookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(sessionMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(sessionContextKey, sid)
			return next(c)
		}
	}
}

func SessionID(c echo.Context) string {
	sid, _ := c.Get(sessionContextKey).(string)
	return sid
}
