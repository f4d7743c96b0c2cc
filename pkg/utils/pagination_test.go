package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func contextFor(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestGetPaginationParams(t *testing.T) {
	cases := []struct {
		target string
		ok     bool
		want   PaginationParams
	}{
		{"/x", false, PaginationParams{}},
		{"/x?limit=abc", false, PaginationParams{}},
		{"/x?limit=0", false, PaginationParams{}},
		{"/x?limit=10", true, PaginationParams{Page: 1, PageSize: 10, Offset: 0}},
		{"/x?limit=10&page=3", true, PaginationParams{Page: 3, PageSize: 10, Offset: 20}},
		{"/x?limit=10&page=-1", true, PaginationParams{Page: 1, PageSize: 10, Offset: 0}},
		{"/x?limit=500", true, PaginationParams{Page: 1, PageSize: MaxPageSize, Offset: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.target, func(t *testing.T) {
			c, _ := contextFor(tc.target)
			got, ok := GetPaginationParams(c)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, PaginationParams{PageSize: 2, Offset: 0}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{PageSize: 2, Offset: 4}))
	assert.Equal(t, []int{}, Paginate(items, PaginationParams{PageSize: 2, Offset: 10}))
}

func TestPageOf(t *testing.T) {
	items := []string{"a", "b", "c"}

	c, rec := contextFor("/x")
	assert.Equal(t, items, PageOf(c, items))
	assert.Equal(t, "3", rec.Header().Get(TotalCountHeader))

	c, rec = contextFor("/x?limit=2&page=2")
	assert.Equal(t, []string{"c"}, PageOf(c, items))
	assert.Equal(t, "3", rec.Header().Get(TotalCountHeader))
}
