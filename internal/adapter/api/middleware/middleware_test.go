package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier map[string]string

func (s stubVerifier) VerifyToken(ctx context.Context, token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", fmt.Errorf("bad token")
}

func echoUID(c echo.Context) error {
	uid, _ := c.Get("uid").(string)
	return c.String(http.StatusOK, uid)
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	e := echo.New()
	auth := NewAuthMiddleware(stubVerifier{"good": "uid-1"})
	e.GET("/private", echoUID, auth.Authenticate)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "uid-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := serve(e, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.body != "" {
				assert.Equal(t, tc.body, rec.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	e := echo.New()
	auth := NewAuthMiddleware(stubVerifier{"good": "uid-1"})
	e.GET("/public", echoUID, auth.OptionalAuth)

	for header, want := range map[string]string{"Bearer good": "uid-1", "Bearer bad": "", "": ""} {
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		rec := serve(e, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, want, rec.Body.String())
	}
}

func TestAdminOnly(t *testing.T) {
	e := echo.New()
	auth := NewAuthMiddleware(stubVerifier{"admin": "uid-admin", "user": "uid-user"})
	admin := NewAdminMiddleware([]string{"uid-admin"})
	e.GET("/admin", echoUID, auth.OptionalAuth, admin.AdminOnly)

	for token, status := range map[string]int{"admin": http.StatusOK, "user": http.StatusForbidden, "": http.StatusUnauthorized} {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if token != "" {
			req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		}
		assert.Equal(t, status, serve(e, req).Code, token)
	}
}

func TestSession(t *testing.T) {
	e := echo.New()
	e.GET("/s", func(c echo.Context) error { return c.String(http.StatusOK, SessionID(c)) }, Session(true))

	first := serve(e, httptest.NewRequest(http.MethodGet, "/s", nil))
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	issued := cookies[0]
	assert.Equal(t, SessionCookieName, issued.Name)
	assert.Equal(t, issued.Value, first.Body.String())
	assert.True(t, issued.HttpOnly)
	assert.True(t, issued.Secure)
	assert.Equal(t, http.SameSiteLaxMode, issued.SameSite)

	t.Run("existing cookie is reused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/s", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: issued.Value})
		rec := serve(e, req)
		assert.Equal(t, issued.Value, rec.Body.String())
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("each new visitor gets a distinct id", func(t *testing.T) {
		other := serve(e, httptest.NewRequest(http.MethodGet, "/s", nil))
		assert.NotEqual(t, issued.Value, other.Body.String())
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	limited := NewRateLimiter(2, time.Minute).RateLimitMiddleware()
	e.GET("/limited", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, limited)

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = ip + ":1234"
		return serve(e, req).Code
	}

	assert.Equal(t, http.StatusNoContent, request("192.0.2.1"))
	assert.Equal(t, http.StatusNoContent, request("192.0.2.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("192.0.2.1"))
	assert.Equal(t, http.StatusNoContent, request("192.0.2.2"))
}
