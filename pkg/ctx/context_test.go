package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/chefmenu/pkg/ctx"
)

func serve(h appctx.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	appctx.Wrap(h)(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestSuccessAndCreated(t *testing.T) {
	rec := serve(func(c *appctx.Context) { c.Success(map[string]any{"id": 1}) },
		httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"id": float64(1)}, envelope(t, rec)["data"])

	rec = serve(func(c *appctx.Context) { c.Created("ok") }, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "ok", envelope(t, rec)["data"])
}

func TestParamAndQuery(t *testing.T) {
	mux := chi.NewRouter()
	mux.Get("/api/courses/{course}", appctx.Wrap(func(c *appctx.Context) {
		c.Success([]string{c.Param("course"), c.Query("q"), c.Query("filter")})
	}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/mains?q=+x+&filter=", nil))
	assert.Equal(t, []any{"mains", "x", ""}, envelope(t, rec)["data"])
}

func TestDecodeBadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	rec := serve(func(c *appctx.Context) {
		var in struct{ Name string }
		assert.False(t, c.Decode(&in))
	}, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, envelope(t, rec)["message"], "invalid JSON")
}

func TestDecodeOptional(t *testing.T) {
	type in struct{ Course string }

	rec := serve(func(c *appctx.Context) {
		v := in{Course: "all"}
		require.True(t, c.DecodeOptional(&v))
		assert.Equal(t, "all", v.Course)
		c.Success(nil)
	}, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(func(c *appctx.Context) {
		var v in
		assert.False(t, c.Decode(&v))
	}, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request body is empty", envelope(t, rec)["message"])
}

func TestValidationError(t *testing.T) {
	rec := serve(func(c *appctx.Context) {
		c.ValidationError(map[string]string{"name": "Dish name is required"})
	}, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := envelope(t, rec)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, map[string]any{"name": "Dish name is required"}, body["errors"])
}

func TestNotFound(t *testing.T) {
	rec := serve(func(c *appctx.Context) { c.NotFound("Course not found") },
		httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Course not found", envelope(t, rec)["message"])
}
