package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationFor(t *testing.T, rawQuery string) (int, int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return parsePagination(c)
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		page  int
		limit int
	}{
		{"", 1, 10},
		{"page=3&limit=25", 3, 25},
		{"page=0&limit=0", 1, 10},
		{"page=-2&limit=500", 1, 10},
		{"page=abc&limit=xyz", 1, 10},
		{"limit=100", 1, 100},
		{"limit=101", 1, 10},
	}
	for _, tc := range cases {
		page, limit := paginationFor(t, tc.query)
		if page != tc.page || limit != tc.limit {
			t.Errorf("parsePagination(%q) = (%d, %d), want (%d, %d)", tc.query, page, limit, tc.page, tc.limit)
		}
	}
}
