// Package middleware provides the HTTP middleware stack for chefmenu.
package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shashiranjanraj/chefmenu/pkg/cache"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/metrics"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
)

// Limiter decides whether one more request for key fits in the window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	// Store names the backend for metrics ("memory", "redis").
	Store() string
}

// ─── In-memory fixed window ───────────────────────────────────────────────────

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a per-process fixed-window limiter. Expired buckets are
// swept lazily, at most once per window.
type MemoryLimiter struct {
	max    int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	nextSweep time.Time
}

// NewMemoryLimiter allows max requests per key per window.
func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

func (l *MemoryLimiter) Store() string { return "memory" }

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.After(l.nextSweep) {
		for k, b := range l.buckets {
			if now.After(b.resetAt) {
				delete(l.buckets, k)
			}
		}
		l.nextSweep = now.Add(l.window)
	}

	b, ok := l.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.max, nil
}

// size is the number of live buckets (for tests).
func (l *MemoryLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// ─── Redis fixed window ───────────────────────────────────────────────────────

// RedisLimiter shares its windows across every server using the same Redis.
type RedisLimiter struct {
	store  *cache.Store
	max    int
	window time.Duration
}

// NewRedisLimiter allows max requests per key per window, counted in store.
func NewRedisLimiter(store *cache.Store, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{store: store, max: max, window: window}
}

func (l *RedisLimiter) Store() string { return "redis" }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	n, err := l.store.Hit(ctx, "ratelimit:"+key, l.window)
	if err != nil {
		return true, err
	}
	return n <= int64(l.max), nil
}

// ─── Middleware ───────────────────────────────────────────────────────────────

// RateLimit rejects clients over l's budget with a 429 envelope. Limiter
// errors let the request through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), ClientIP(r))
			if err != nil {
				logger.WithCtx(r.Context()).Warn("rate limiter unavailable", "store", l.Store(), "error", err)
				ok = true
			}
			if !ok {
				metrics.RateLimited.WithLabelValues(l.Store()).Inc()
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP is the first X-Forwarded-For hop, X-Real-Ip, or the peer address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
		return real
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
