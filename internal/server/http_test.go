package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/district-quiz/internal/config"
)

func newTestServer(quizWS, records http.HandlerFunc) http.Handler {
	cfg := &config.App{HTTPAddr: "127.0.0.1:0"}
	return NewHTTPServer(cfg, zerolog.Nop(), nil, nil, quizWS, records).Handler
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestIndexServesPage(t *testing.T) {
	h := newTestServer(nil, nil)

	rec := serve(h, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "/ws/quiz")

	assert.Equal(t, http.StatusNotFound, serve(h, http.MethodGet, "/nope").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, serve(h, http.MethodPost, "/").Code)
}

func TestOperationalRoutes(t *testing.T) {
	h := newTestServer(nil, nil)

	rec := serve(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = serve(h, http.MethodGet, "/v1/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(h, http.MethodGet, "/ws/quiz").Code)
}

func TestHandlersAreMounted(t *testing.T) {
	var hitWS, hitRecords bool
	h := newTestServer(
		func(w http.ResponseWriter, r *http.Request) { hitWS = true },
		func(w http.ResponseWriter, r *http.Request) { hitRecords = true },
	)

	serve(h, http.MethodGet, "/ws/quiz")
	serve(h, http.MethodGet, "/v1/records")
	assert.True(t, hitWS)
	assert.True(t, hitRecords)
}

func TestUpgraderOriginCheck(t *testing.T) {
	check := NewUpgrader([]string{"http://localhost:3000/"}).CheckOrigin

	req := httptest.NewRequest(http.MethodGet, "http://quiz.example/ws/quiz", nil)
	assert.True(t, check(req), "no origin header")

	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))

	req.Header.Set("Origin", "http://quiz.example")
	assert.True(t, check(req), "same host")

	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	assert.True(t, NewUpgrader([]string{"*"}).CheckOrigin(req))
}
