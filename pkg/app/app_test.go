package app_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/chefmenu/pkg/app"
	"github.com/shashiranjanraj/chefmenu/pkg/middleware"
	"github.com/shashiranjanraj/chefmenu/pkg/reqid"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
	"github.com/shashiranjanraj/chefmenu/pkg/router"
)

func courses(r *router.Router) {
	r.Get("/api/courses", "courses.index", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, []string{"appetizers", "mains"})
	})
	r.Get("/boom", "", func(http.ResponseWriter, *http.Request) { panic("kitchen fire") })
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	req.RemoteAddr = "203.0.113.7:5000"
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandlerMiddlewareStack(t *testing.T) {
	h := app.New().Routes(courses).Handler()

	rec := do(h, http.MethodGet, "/api/courses")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(reqid.Header))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(h, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = do(h, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())

	rec = do(h, http.MethodDelete, "/api/courses")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = do(h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chefmenu_http_requests_total")
}

func TestRateLimitSkipsMetrics(t *testing.T) {
	h := app.New().
		RateLimiter(middleware.NewMemoryLimiter(1, time.Minute)).
		Routes(courses).
		Handler()

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/courses").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(h, http.MethodGet, "/api/courses").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/metrics").Code)
}

func TestRouteListAndPrint(t *testing.T) {
	a := app.New().Routes(courses)
	list := a.RouteList()
	require.Len(t, list, 3)
	assert.Equal(t, router.Route{Method: http.MethodGet, Path: "/api/courses", Name: "courses.index"}, list[0])

	var buf bytes.Buffer
	require.NoError(t, app.PrintRoutes(&buf, list))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "METHOD   PATH           NAME", strings.TrimRight(lines[0], " "))
	assert.Equal(t, "GET      /api/courses   courses.index", strings.TrimRight(lines[2], " "))
	assert.Equal(t, "GET      /metrics       metrics", strings.TrimRight(lines[4], " "))

	buf.Reset()
	require.NoError(t, app.PrintRoutes(&buf, nil))
	assert.Equal(t, "No routes registered.\n", buf.String())
}
