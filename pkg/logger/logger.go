// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler or a bot
// update is correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("menu item added", "course", item.Course)
//	// → time=... level=INFO msg="menu item added" request_id=0191… course=mains
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/shashiranjanraj/chefmenu/pkg/reqid"
)

var base atomic.Pointer[slog.Logger]

func init() {
	Setup("local", os.Stdout)
}

// Setup builds the base logger: JSON at INFO in production, text at DEBUG
// elsewhere. Extra handlers (the Mongo sink) receive every record too.
func Setup(env string, w io.Writer, extra ...slog.Handler) *slog.Logger {
	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	if len(extra) > 0 {
		handler = NewMultiHandler(append([]slog.Handler{handler}, extra...)...)
	}

	l := slog.New(handler)
	base.Store(l)
	slog.SetDefault(l)
	return l
}

// L returns the base logger.
func L() *slog.Logger { return base.Load() }

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the logger injected into ctx by the request logger
// middleware, or the base logger tagged with ctx's request ID.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	if id := reqid.FromCtx(ctx); id != "" {
		return L().With("request_id", id)
	}
	return L()
}

// InjectLogger stores log in ctx for WithCtx to find.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }
