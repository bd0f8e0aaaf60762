package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookarc/bookarc/internal/api"
)

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func TestWriteErrorResponseWithCode(t *testing.T) {
	rec := httptest.NewRecorder()
	writeErrorResponseWithCode(rec, http.StatusConflict, "CONFLICT", "failed to follow user", "already following")

	require.Equal(t, http.StatusConflict, rec.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed to follow user", resp.Error)
	assert.Equal(t, "CONFLICT", resp.Code)
	assert.Equal(t, "already following", resp.Details)
}

func TestQueryInt(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want int
	}{
		{name: "present", url: "/?limit=25", want: 25},
		{name: "absent uses default", url: "/", want: 10},
		{name: "malformed uses default", url: "/?limit=lots", want: 10},
		{name: "negative passes through", url: "/?limit=-1", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			assert.Equal(t, tt.want, queryInt(req, "limit", 10))
		})
	}
}

func TestPageParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=30&offset=60", nil)
	limit, offset := pageParams(req)
	assert.Equal(t, 30, limit)
	assert.Equal(t, 60, offset)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	limit, offset = pageParams(req)
	assert.Equal(t, 0, limit)
	assert.Equal(t, 0, offset)
}

func TestDecodeRequestBody(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"rating": 4}`))
		rec := httptest.NewRecorder()

		var body api.RateRequest
		require.NoError(t, decodeRequestBody(rec, req, &body))
		assert.Equal(t, 4, body.Rating)
	})

	t.Run("malformed body writes a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"rating":`))
		rec := httptest.NewRecorder()

		var body api.RateRequest
		require.Error(t, decodeRequestBody(rec, req, &body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
