package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
)

// Recovery turns a panic in any downstream handler into a logged stack
// trace and a 500 envelope.
//
//	r.Use(metrics.Middleware())
//	r.Use(middleware.Recovery)
//	r.Use(reqid.Middleware())
//	r.Use(middleware.Logger)
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}
			logger.WithCtx(r.Context()).Error("panic recovered",
				"error", fmt.Sprintf("%v", err),
				"stack", string(debug.Stack()),
				"method", r.Method,
				"path", r.URL.Path,
			)
			response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		}()
		next.ServeHTTP(w, r)
	})
}
