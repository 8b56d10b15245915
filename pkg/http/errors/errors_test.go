package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusBadGateway, ErrCodeUpstreamError, "upstream error")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"upstream_error","message":"upstream error"}`, rec.Body.String())
}

func TestRespondErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithDetails(rec, http.StatusServiceUnavailable, ErrCodeDataUnavailable, "Failed to load quiz data.",
		map[string]interface{}{"source": "file"})

	assert.JSONEq(t,
		`{"error":"data_unavailable","message":"Failed to load quiz data.","details":{"source":"file"}}`,
		rec.Body.String())
}

func TestRespondMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondMethodNotAllowed(rec)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrCodeInvalidRequest)
}
