package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// implements Gate with a fixed answer
type stubGate struct {
	decision Decision
	err      error
	keys     []string
}

func (s *stubGate) Admit(_ context.Context, key string) (Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func newTestRouter(gate Gate, opts MiddlewareOptions, reached *int) *gin.Engine {
	router := gin.New()
	router.POST("/api/generate-ui", Middleware(gate, opts), func(c *gin.Context) {
		*reached++
		c.String(http.StatusOK, "ok")
	})

	return router
}

func TestMiddleware_SixthRequestGets429(t *testing.T) {
	gate := newMemoryGate(DefaultRate, newFakeClock().Now)
	reached := 0
	router := newTestRouter(gate, MiddlewareOptions{}, &reached)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil)
		req.Header.Set("X-Forwarded-For", "192.0.2.10")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil)
	req.Header.Set("X-Forwarded-For", "192.0.2.10")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, w.Body.String())
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, 5, reached, "handler must not run for the rejected request")
}

func TestMiddleware_Headers(t *testing.T) {
	gate := &stubGate{decision: Decision{Success: true, Limit: 5, Remaining: 3, ResetAt: time.Unix(1700000060, 0)}}
	reached := 0
	router := newTestRouter(gate, MiddlewareOptions{}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil))

	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "3", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "1700000060", w.Header().Get("X-RateLimit-Reset"))
	assert.Equal(t, []string{LoopbackKey}, gate.keys)
}

func TestMiddleware_FailOpen(t *testing.T) {
	gate := &stubGate{err: errors.New("dial tcp: connection refused")}
	reached := 0
	router := newTestRouter(gate, MiddlewareOptions{FailOpen: true}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, reached)
}

func TestMiddleware_FailClosed(t *testing.T) {
	gate := &stubGate{err: errors.New("dial tcp: connection refused")}
	reached := 0
	router := newTestRouter(gate, MiddlewareOptions{FailOpen: false}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 0, reached)
}

func TestMiddleware_CustomKeyFunc(t *testing.T) {
	gate := &stubGate{decision: Decision{Success: true, Limit: 5}}
	reached := 0
	router := newTestRouter(gate, MiddlewareOptions{
		KeyFunc: func(c *gin.Context) string { return "tenant-a" },
	}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/generate-ui", nil))

	assert.Equal(t, []string{"tenant-a"}, gate.keys)
}
