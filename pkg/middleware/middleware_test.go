package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/pkg/cache"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/reqid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func get(h http.Handler, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestMemoryLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for _, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, "1.1.1.1")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
	ok, _ := l.Allow(ctx, "2.2.2.2")
	assert.True(t, ok, "keys are independent")

	now = now.Add(time.Minute + time.Second)
	ok, _ = l.Allow(ctx, "1.1.1.1")
	assert.True(t, ok, "new window")
	assert.Equal(t, 1, l.size(), "expired 2.2.2.2 bucket swept")
}

func TestRateLimitMiddleware(t *testing.T) {
	h := RateLimit(NewMemoryLimiter(1, time.Minute))(okHandler)
	fromA := func(r *http.Request) { r.Header.Set("X-Forwarded-For", "10.0.0.1, 172.16.0.1") }

	assert.Equal(t, http.StatusOK, get(h, fromA).Code)
	rec := get(h, fromA)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too Many Requests")
	assert.Equal(t, http.StatusOK, get(h).Code, "different client")
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) { return false, errors.New("down") }
func (brokenLimiter) Store() string                               { return "broken" }

func TestRateLimitFailsOpen(t *testing.T) {
	h := RateLimit(brokenLimiter{})(okHandler)
	assert.Equal(t, http.StatusOK, get(h).Code)
}

func TestRedisLimiter(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	store := cache.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test:")
	t.Cleanup(func() { _ = store.Close() })

	h := RateLimit(NewRedisLimiter(store, 2, time.Minute))(okHandler)
	assert.Equal(t, http.StatusOK, get(h).Code)
	assert.Equal(t, http.StatusOK, get(h).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(h).Code)
	assert.True(t, mr.Exists("test:ratelimit:192.0.2.1"))

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, get(h).Code)

	mr.Close()
	assert.Equal(t, http.StatusOK, get(h).Code, "redis outage fails open")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "192.0.2.1", ClientIP(req))

	req.Header.Set("X-Real-Ip", "203.0.113.9")
	assert.Equal(t, "203.0.113.9", ClientIP(req))

	req.Header.Set("X-Forwarded-For", " 198.51.100.7 ,10.0.0.1")
	assert.Equal(t, "198.51.100.7", ClientIP(req))
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	rec := get(h)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestLoggerTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger.Setup("local", &buf)
	t.Cleanup(func() { logger.Setup("local", os.Stdout) })

	var inner string
	h := reqid.Middleware()(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.WithCtx(r.Context()).Info("inside")
		inner = reqid.FromCtx(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})))

	get(h, func(r *http.Request) { r.Header.Set(reqid.Header, "rid-42") })

	assert.Equal(t, "rid-42", inner)
	out := buf.String()
	assert.Contains(t, out, `msg=inside request_id=rid-42`)
	assert.Contains(t, out, "level=WARN msg=request request_id=rid-42")
	assert.Contains(t, out, "status=404")
}

func TestCORS(t *testing.T) {
	h := CORS(CORSOptions{
		AllowedOrigins: []string{"https://menu.example.com"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         60,
	})(okHandler)

	pre := httptest.NewRequest(http.MethodOptions, "/api/menu", nil)
	pre.Header.Set("Origin", "https://menu.example.com")
	pre.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, pre)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://menu.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "60", rec.Header().Get("Access-Control-Max-Age"))

	rec = get(h, func(r *http.Request) { r.Header.Set("Origin", "https://evil.example") })
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
