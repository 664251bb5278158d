// Package reqid provides request ID generation and context propagation.
//
// Every HTTP request and every bot update carries an ID, stored in its
// context and included in each structured log line via logger.WithCtx(ctx).
//
//	r.Use(reqid.Middleware())
//	log := logger.WithCtx(r.Context())
//	log.Info("menu item added", "item_id", item.ID)
//	// → time=... level=INFO msg="menu item added" request_id=0191… item_id=…
package reqid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey struct{}

// Header is the HTTP header name used to propagate the request ID.
const Header = "X-Request-ID"

// maxLen caps IDs accepted from clients.
const maxLen = 64

// New generates a random UUID request ID.
func New() string { return uuid.NewString() }

// WithValue stores id in ctx and returns the new context.
func WithValue(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromCtx extracts the request ID from ctx, or "" when none is present.
func FromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}

// Middleware reuses a client-sent X-Request-ID when it looks sane and
// generates one otherwise. The ID is echoed in the response header.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !acceptable(id) {
				id = New()
			}

			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithValue(r.Context(), id)))
		})
	}
}

func acceptable(id string) bool {
	if id == "" || len(id) > maxLen {
		return false
	}
	for _, c := range id {
		if c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
