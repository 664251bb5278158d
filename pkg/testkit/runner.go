package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// HandlerFactory builds the handler under test. RunDir calls it once per
// scenario so scenarios never share state.
type HandlerFactory func(t *testing.T) http.Handler

// ─── Public API ───────────────────────────────────────────────────────────────

// Run executes a single scenario file against a fresh handler.
//
// Lifecycle per scenario:
//  1. Load the scenario JSON file.
//  2. Build the handler.
//  3. Fire the request using httptest.
//  4. Compare the status code and, when one is set, the JSON body.
func Run(t *testing.T, newHandler HandlerFactory, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}

	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, newHandler(t), s)
	})
}

// RunDir runs every scenario in dir as a t.Run subtest. Scenario files
// that fail to load are reported as test failures.
func RunDir(t *testing.T, newHandler HandlerFactory, dir string) {
	t.Helper()

	scenarios, errs := LoadAllFromDir(dir)
	for _, err := range errs {
		t.Error(err)
	}
	if len(scenarios) == 0 {
		t.Fatalf("testkit: no runnable scenarios in %q", dir)
	}

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, newHandler(t), s)
		})
	}
}

// ─── Internal execution ───────────────────────────────────────────────────────

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	var reqBody io.Reader
	data, err := s.Request()
	if err != nil {
		t.Fatalf("[%s] read request body: %v", s.Name, err)
	}
	if data != nil {
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, reqBody)
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assertResponse(t, s, rec.Code, rec.Body.Bytes())
}
