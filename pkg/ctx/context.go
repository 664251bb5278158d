// Package ctx gives handlers one *Context instead of the
// (http.ResponseWriter, *http.Request) pair, with helpers for path params,
// JSON bodies and the response envelope:
//
//	func (h *MenuController) Destroy(c *ctx.Context) {
//	    c.Success(map[string]bool{"removed": h.menu.RemoveItem(c.Param("id"))})
//	}
//
//	r.Delete("/api/menu/{id}", "menu.destroy", ctx.Wrap(h.Destroy))
package ctx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/chefmenu/pkg/bind"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
)

type HandlerFunc func(c *Context)

// Wrap adapts h to net/http.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(&Context{W: w, R: r})
	}
}

type Context struct {
	W http.ResponseWriter
	R *http.Request
}

// Param returns a path parameter ("/api/menu/{id}" → c.Param("id")).
func (c *Context) Param(key string) string { return chi.URLParam(c.R, key) }

// Query returns a trimmed query-string value, or "".
func (c *Context) Query(key string) string {
	return strings.TrimSpace(c.R.URL.Query().Get(key))
}

func (c *Context) Context() context.Context { return c.R.Context() }

// Logger is the request-scoped logger, tagged with request_id.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Decode reads the JSON body into dest. On failure it sends a 400 and
// returns false; the handler should return straight away.
func (c *Context) Decode(dest any) bool {
	return c.decode(dest, false)
}

// DecodeOptional is Decode for endpoints whose body may be left out. An
// empty body leaves dest untouched.
func (c *Context) DecodeOptional(dest any) bool {
	return c.decode(dest, true)
}

func (c *Context) decode(dest any, optional bool) bool {
	err := bind.Decode(c.R, dest)
	if err == nil || (optional && errors.Is(err, bind.ErrEmptyBody)) {
		return true
	}
	c.Error(http.StatusBadRequest, err.Error())
	return false
}

func (c *Context) Success(data any) {
	response.Write(c.W, response.Envelope{Status: http.StatusOK, Data: data})
}

func (c *Context) Created(data any) {
	response.Write(c.W, response.Envelope{Status: http.StatusCreated, Data: data})
}

func (c *Context) Error(code int, message string) {
	response.Error(c.W, code, message)
}

// ValidationError sends a 422 with errs keyed by form field.
func (c *Context) ValidationError(errs any) {
	response.Write(c.W, response.Envelope{
		Status:  http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (c *Context) NotFound(message string) {
	c.Error(http.StatusNotFound, message)
}
