package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathParam(t *testing.T) {
	cases := []struct {
		path   string
		prefix string
		suffix string
		want   string
	}{
		{"/api/stocks/AAPL/summary", "/api/stocks/", "/summary", "AAPL"},
		{"/api/stocks/BRK-B/summary", "/api/stocks/", "/summary", "BRK-B"},
		{"/api/stocks/AAPL", "/api/stocks/", "/summary", "AAPL"},
		{"/api/stocks/AAPL/history", "/api/stocks/", "", "AAPL"},
		{"/other/AAPL/summary", "/api/stocks/", "/summary", ""},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", tc.path, nil)
		assert.Equal(t, tc.want, PathParam(r, tc.prefix, tc.suffix), tc.path)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, 400, "Bad input")

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "Bad input"}`, rec.Body.String())
}
