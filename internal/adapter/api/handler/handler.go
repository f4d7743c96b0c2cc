package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"hairconnect/pkg/errors"
)

const UserIDHeader = "X-User-Id"

// callerID resolves who is calling: verified bearer uid, then the X-User-Id
// header, then the userId query parameter, then bodyUserID.
func callerID(c echo.Context, bodyUserID string) string {
	if uid, ok := c.Get("uid").(string); ok && uid != "" {
		return uid
	}
	if v := strings.TrimSpace(c.Request().Header.Get(UserIDHeader)); v != "" {
		return v
	}
	if v := strings.TrimSpace(c.QueryParam("userId")); v != "" {
		return v
	}
	return strings.TrimSpace(bodyUserID)
}

func authUID(c echo.Context) string {
	uid, _ := c.Get("uid").(string)
	return uid
}

func intParam(c echo.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, errors.BadRequest(name+" must be an integer", err)
	}
	return v, nil
}

// optionalIntQuery parses an integer filter; empty means unset.
func optionalIntQuery(c echo.Context, name string) (*int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.BadRequest(name+" must be an integer", err)
	}
	return &v, nil
}
