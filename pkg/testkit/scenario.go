// Package testkit provides a JSON-scenario-driven REST API testing framework.
//
// Each scenario is a JSON file that describes:
//   - The HTTP request to fire (method, URL, body inline or from a file, headers)
//   - Expected HTTP status code
//   - Expected response body (inline or from a file), compared exactly or as a subset
//
// Scenario files live next to your *_test.go files:
//
//	testdata/
//	  add_item.json           ← scenario
//	  add_item_req.json       ← request body
//	  add_item_res.json       ← expected response body
//
// Example _test.go:
//
//	func TestAPI(t *testing.T) {
//	    testkit.RunDir(t, newHandler, "testdata")
//	}
package testkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Match modes for the response body.
const (
	MatchExact  = "exact"
	MatchSubset = "subset"
)

// ─── Schema ───────────────────────────────────────────────────────────────────

// Scenario describes a single REST API test case loaded from a JSON file.
type Scenario struct {
	// Meta
	Name        string `json:"name"`
	Description string `json:"description"`

	// Request
	RequestMethod   string            `json:"requestMethod"`   // GET, POST, DELETE
	RequestURL      string            `json:"requestUrl"`      // e.g. /api/menu
	RequestBody     json.RawMessage   `json:"requestBody"`     // inline body, wins over requestFileName
	RequestFileName string            `json:"requestFileName"` // body file, relative to the scenario
	Headers         map[string]string `json:"headers"`

	// Response assertions
	ExpectedCode     int             `json:"expectedCode"`
	ExpectedBody     json.RawMessage `json:"expectedBody"`     // inline body, wins over responseFileName
	ResponseFileName string          `json:"responseFileName"` // expected body file
	Match            string          `json:"match"`            // "exact" (default) | "subset"

	dir string // directory of the scenario file
}

// ─── Loading ──────────────────────────────────────────────────────────────────

// LoadScenario reads and validates a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var s Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("testkit: invalid scenario %q: %w", abs, err)
	}

	s.dir = filepath.Dir(abs)
	return &s, nil
}

// validate checks required fields and fills defaults.
func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	if s.RequestMethod == "" {
		s.RequestMethod = http.MethodGet
	}
	switch s.Match {
	case "":
		s.Match = MatchExact
	case MatchExact, MatchSubset:
	default:
		return fmt.Errorf("match must be %q or %q, got %q", MatchExact, MatchSubset, s.Match)
	}
	return nil
}

// Request returns the request body bytes, or nil when the scenario has none.
func (s *Scenario) Request() ([]byte, error) {
	return s.body(s.RequestBody, s.RequestFileName)
}

// Expected returns the expected response body, or nil when none is set.
func (s *Scenario) Expected() ([]byte, error) {
	return s.body(s.ExpectedBody, s.ResponseFileName)
}

func (s *Scenario) body(inline json.RawMessage, file string) ([]byte, error) {
	if len(inline) > 0 {
		return inline, nil
	}
	if file == "" {
		return nil, nil
	}
	if !filepath.IsAbs(file) {
		file = filepath.Join(s.dir, file)
	}
	return os.ReadFile(file)
}

// LoadAllFromDir loads every *.json file in dir as a Scenario. Body files
// are recognised by their _req.json / _res.json suffix and skipped.
func LoadAllFromDir(dir string) ([]*Scenario, []error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil || len(entries) == 0 {
		return nil, []error{fmt.Errorf("testkit: no scenario files found in %q", dir)}
	}

	var (
		scenarios []*Scenario
		errs      []error
	)
	for _, path := range entries {
		if isBodyFile(path) {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

func isBodyFile(path string) bool {
	return strings.HasSuffix(path, "_req.json") || strings.HasSuffix(path, "_res.json")
}
