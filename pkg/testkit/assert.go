package testkit

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func assertResponse(t *testing.T, s *Scenario, code int, body []byte) {
	t.Helper()
	if code != s.ExpectedCode {
		t.Errorf("[%s] status: want %d, got %d\nbody: %s", s.Name, s.ExpectedCode, code, body)
	}

	want, err := s.Expected()
	if err != nil {
		t.Errorf("[%s] read expected body: %v", s.Name, err)
		return
	}
	if want == nil {
		return
	}

	diffs, err := CompareJSON(want, body, s.Match)
	if err != nil {
		t.Errorf("[%s] %v\nbody: %s", s.Name, err, body)
		return
	}
	if len(diffs) > 0 {
		t.Errorf("[%s] response body mismatch (%s):\n%s\nbody: %s",
			s.Name, s.Match, strings.Join(diffs, "\n"), body)
	}
}

// CompareJSON decodes both documents and lists where got departs from want.
// In MatchSubset mode object keys that want does not mention are ignored;
// in MatchExact mode they are reported. Arrays always compare element-wise.
func CompareJSON(want, got []byte, mode string) ([]string, error) {
	var w, g any
	if err := json.Unmarshal(want, &w); err != nil {
		return nil, fmt.Errorf("expected body is not JSON: %w", err)
	}
	if err := json.Unmarshal(got, &g); err != nil {
		return nil, fmt.Errorf("response body is not JSON: %w", err)
	}
	return walk("$", w, g, mode == MatchSubset), nil
}

func walk(at string, want, got any, subset bool) []string {
	switch w := want.(type) {
	case map[string]any:
		g, ok := got.(map[string]any)
		if !ok {
			return []string{fmt.Sprintf("  %s: want object, got %s", at, describe(got))}
		}
		var out []string
		for _, k := range sortedKeys(w) {
			gv, found := g[k]
			if !found {
				out = append(out, fmt.Sprintf("  %s.%s: missing", at, k))
				continue
			}
			out = append(out, walk(at+"."+k, w[k], gv, subset)...)
		}
		if !subset {
			for _, k := range sortedKeys(g) {
				if _, found := w[k]; !found {
					out = append(out, fmt.Sprintf("  %s.%s: unexpected %s", at, k, describe(g[k])))
				}
			}
		}
		return out
	case []any:
		g, ok := got.([]any)
		if !ok {
			return []string{fmt.Sprintf("  %s: want array, got %s", at, describe(got))}
		}
		var out []string
		if len(w) != len(g) {
			out = append(out, fmt.Sprintf("  %s: want %d elements, got %d", at, len(w), len(g)))
		}
		for i := 0; i < len(w) && i < len(g); i++ {
			out = append(out, walk(fmt.Sprintf("%s[%d]", at, i), w[i], g[i], subset)...)
		}
		return out
	default:
		if !reflect.DeepEqual(want, got) {
			return []string{fmt.Sprintf("  %s: want %s, got %s", at, describe(want), describe(got))}
		}
		return nil
	}
}

func describe(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
