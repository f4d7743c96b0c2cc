package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"hairconnect/pkg/errors"
	"hairconnect/pkg/response"
)

const maxPlaceholderSide = 4000

// Placeholder renders a grey SVG of the requested size.
func Placeholder(c echo.Context) error {
	width, err := intParam(c, "width")
	if err != nil {
		return response.Error(c, err)
	}
	height, err := intParam(c, "height")
	if err != nil {
		return response.Error(c, err)
	}
	if width < 1 || height < 1 || width > maxPlaceholderSide || height > maxPlaceholderSide {
		return response.Error(c, errors.BadRequest("Dimensions must be between 1 and 4000", nil))
	}

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect width="100%%" height="100%%" fill="#e5e7eb"/>`+
			`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" fill="#9ca3af" font-family="sans-serif" font-size="%d">%dx%d</text>`+
			`</svg>`,
		width, height, width, height, placeholderFontSize(width, height), width, height,
	)

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, "image/svg+xml", []byte(svg))
}

func placeholderFontSize(width, height int) int {
	side := width
	if height < side {
		side = height
	}
	size := side / 6
	if size < 8 {
		size = 8
	}
	return size
}
