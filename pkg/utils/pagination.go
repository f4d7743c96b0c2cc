package utils

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	MaxPageSize       = 100
	TotalCountHeader  = "X-Total-Count"
	defaultPageNumber = 1
)

// PaginationParams represents pagination parameters
type PaginationParams struct {
	Page     int
	PageSize int
	Offset   int
}

// GetPaginationParams reads ?page= and ?limit=. Paging is opt-in: without a
// positive limit it reports false and callers return the full result.
func GetPaginationParams(c echo.Context) (PaginationParams, bool) {
	pageSize, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || pageSize <= 0 {
		return PaginationParams{}, false
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = defaultPageNumber
	}

	return PaginationParams{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}, true
}

// Paginate slices items for p. An offset past the end yields an empty page.
func Paginate[T any](items []T, p PaginationParams) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// PageOf applies the request's paging, if any, and sets the total count header.
func PageOf[T any](c echo.Context, items []T) []T {
	c.Response().Header().Set(TotalCountHeader, strconv.Itoa(len(items)))
	p, ok := GetPaginationParams(c)
	if !ok {
		return items
	}
	return Paginate(items, p)
}
