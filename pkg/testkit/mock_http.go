package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// ─── MockTransport ────────────────────────────────────────────────────────────

// MockStep is one canned answer for outgoing HTTP calls.
type MockStep struct {
	// Method is the HTTP method to match; empty matches any.
	Method string `json:"method"`
	// MatchURL is a prefix of the outgoing URL; empty matches any.
	MatchURL string `json:"matchUrl"`
	// StatusCode defaults to 200.
	StatusCode int `json:"statusCode"`
	// Body is returned verbatim as application/json.
	Body json.RawMessage `json:"body"`
}

// Call is one request seen by a MockTransport.
type Call struct {
	Method string
	URL    string
	Body   []byte
	Form   url.Values // decoded when the body is form-encoded
}

// MockTransport implements http.RoundTripper. It answers outgoing requests
// from a list of MockSteps (first match wins) and records every call.
// Calls that match no step fail.
//
//	mt := testkit.NewMockTransport(testkit.MockStep{
//	    MatchURL: "https://api.telegram.org/",
//	    Body:     json.RawMessage(`{"ok":true,"result":{}}`),
//	})
//	client := mt.Client()
type MockTransport struct {
	mu    sync.Mutex
	steps []httpMockEntry
	calls []Call
}

type httpMockEntry struct {
	step      MockStep
	callCount int
}

// NewMockTransport builds a MockTransport answering with steps.
func NewMockTransport(steps ...MockStep) *MockTransport {
	mt := &MockTransport{}
	for _, step := range steps {
		mt.steps = append(mt.steps, httpMockEntry{step: step})
	}
	return mt
}

// Client returns an *http.Client using mt.
func (mt *MockTransport) Client() *http.Client {
	return &http.Client{Transport: mt}
}

// RoundTrip records the request and returns the first matching step.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	call := Call{Method: req.Method, URL: req.URL.String()}
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("testkit: read outgoing body: %w", err)
		}
		call.Body = b
		if strings.HasPrefix(req.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
			call.Form, _ = url.ParseQuery(string(b))
		}
	}

	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.calls = append(mt.calls, call)

	for i := range mt.steps {
		entry := &mt.steps[i]
		if entry.step.Method != "" && !strings.EqualFold(entry.step.Method, req.Method) {
			continue
		}
		if !urlMatches(call.URL, entry.step.MatchURL) {
			continue
		}
		entry.callCount++
		return buildHTTPResponse(req, entry.step), nil
	}

	return nil, fmt.Errorf("testkit: unexpected outgoing HTTP call %s %s: no matching mock step", req.Method, req.URL)
}

// Calls returns a copy of every request seen so far.
func (mt *MockTransport) Calls() []Call {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]Call(nil), mt.calls...)
}

// CallsTo returns the recorded requests whose URL starts with prefix.
func (mt *MockTransport) CallsTo(prefix string) []Call {
	var out []Call
	for _, c := range mt.Calls() {
		if strings.HasPrefix(c.URL, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// AssertAllCalled returns one error per step that never matched.
func (mt *MockTransport) AssertAllCalled() []error {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	var errs []error
	for _, e := range mt.steps {
		if e.callCount == 0 {
			errs = append(errs, fmt.Errorf(
				"testkit: mock step %s %q was never called",
				e.step.Method, e.step.MatchURL,
			))
		}
	}
	return errs
}

func urlMatches(candidate, pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.HasPrefix(candidate, pattern)
}

func buildHTTPResponse(req *http.Request, step MockStep) *http.Response {
	code := step.StatusCode
	if code == 0 {
		code = http.StatusOK
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		StatusCode:    code,
		Status:        fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(step.Body)),
		ContentLength: int64(len(step.Body)),
		Request:       req,
	}
}
