// Package validate checks struct fields against rules declared in a
// `validate` tag.
//
//	type Candidate struct {
//	    Name   string `json:"name"   validate:"required,max=80"`
//	    Course string `json:"course" validate:"required,in=appetizers|mains"`
//	    Price  string `json:"price"  validate:"required,numeric,finite,gt=0"`
//	}
//
// Built-in rules:
//
//	required          not the zero value; strings are trimmed first
//	nullable          an empty field skips its remaining rules
//	numeric           a plain decimal such as 12, -0.5 or 1.2e3 (no hex,
//	                  underscores, Inf or NaN); out-of-range literals count
//	utf8              the string is valid UTF-8
//	integer           parses as a base-10 integer
//	finite            a number that is neither NaN nor ±Inf
//	min=N  max=N      trimmed rune length for strings, value for numbers
//	gt=N gte=N lt=N lte=N   numeric comparisons; NaN fails all of them
//	in=a|b|c          one of the listed values
//
// Register adds named rules. Every field is checked and the first rule
// each field breaks is reported, so callers see all broken fields at once.
package validate

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Failure is the first rule a field broke.
type Failure struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// RuleFunc reports whether the trimmed field value satisfies a custom rule.
type RuleFunc func(raw string) bool

// value is one field under test.
type value struct {
	name string
	raw  string // trimmed string form
	rv   reflect.Value
}

type checkFunc func(v value, param string) string

var builtin = map[string]checkFunc{
	"required": func(v value, _ string) string {
		if isEmpty(v.rv) {
			return fmt.Sprintf("The %s field is required.", v.name)
		}
		return ""
	},
	"numeric": func(v value, _ string) string {
		if v.numeric() {
			return ""
		}
		if _, ok := parseFloat(v.raw); !ok {
			return fmt.Sprintf("The %s field must be a number.", v.name)
		}
		return ""
	},
	"utf8": func(v value, _ string) string {
		if v.rv.Kind() == reflect.String && !utf8.ValidString(v.rv.String()) {
			return fmt.Sprintf("The %s field must be valid UTF-8 text.", v.name)
		}
		return ""
	},
	"integer": func(v value, _ string) string {
		if _, err := strconv.ParseInt(v.raw, 10, 64); err != nil {
			return fmt.Sprintf("The %s field must be an integer.", v.name)
		}
		return ""
	},
	"finite": func(v value, _ string) string {
		if f, ok := v.float(); !ok || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Sprintf("The %s field must be a finite number.", v.name)
		}
		return ""
	},
	"min": func(v value, p string) string {
		if v.size() < param(p) {
			return fmt.Sprintf("The %s must be at least %s%s.", v.name, p, v.unit())
		}
		return ""
	},
	"max": func(v value, p string) string {
		if v.size() > param(p) {
			return fmt.Sprintf("The %s must not exceed %s%s.", v.name, p, v.unit())
		}
		return ""
	},
	"gt":  compare("greater than", func(a, b float64) bool { return a > b }),
	"gte": compare("at least", func(a, b float64) bool { return a >= b }),
	"lt":  compare("less than", func(a, b float64) bool { return a < b }),
	"lte": compare("at most", func(a, b float64) bool { return a <= b }),
	"in": func(v value, p string) string {
		for _, allowed := range strings.Split(p, "|") {
			if v.raw == strings.TrimSpace(allowed) {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", v.name)
	},
}

func compare(phrase string, ok func(a, b float64) bool) checkFunc {
	return func(v value, p string) string {
		if f, parsed := v.float(); !parsed || !ok(f, param(p)) {
			return fmt.Sprintf("The %s must be %s %s.", v.name, phrase, p)
		}
		return ""
	}
}

var (
	customMu sync.RWMutex
	custom   = map[string]checkFunc{}
)

// Register adds a named rule usable in `validate` tags. message is a format
// string receiving the field name.
func Register(name string, fn RuleFunc, message string) {
	customMu.Lock()
	defer customMu.Unlock()
	custom[name] = func(v value, _ string) string {
		if fn(v.raw) {
			return ""
		}
		return fmt.Sprintf(message, v.name)
	}
}

// Check validates every tagged field of v (a struct or pointer to one) and
// returns field name → Failure. An empty map means v is valid.
func Check(v any) map[string]Failure {
	errs := make(map[string]Failure)
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return errs
	}

	for _, f := range fieldsOf(rv.Type()) {
		fv := rv.Field(f.index)
		if f.nullable && isEmpty(fv) {
			continue
		}
		in := value{name: f.name, raw: strings.TrimSpace(fmt.Sprint(fv.Interface())), rv: fv}
		for _, r := range f.rules {
			if msg := run(r, in); msg != "" {
				errs[f.name] = Failure{Rule: r.name, Message: msg}
				break
			}
		}
	}
	return errs
}

func run(r rule, v value) string {
	if fn, ok := builtin[r.name]; ok {
		return fn(v, r.param)
	}
	customMu.RLock()
	fn, ok := custom[r.name]
	customMu.RUnlock()
	if !ok {
		return ""
	}
	return fn(v, r.param)
}

// ─── Tag parsing ──────────────────────────────────────────────────────────────

type rule struct{ name, param string }

type field struct {
	index    int
	name     string
	nullable bool
	rules    []rule
}

var parsed sync.Map // reflect.Type → []field

func fieldsOf(t reflect.Type) []field {
	if cached, ok := parsed.Load(t); ok {
		return cached.([]field)
	}

	var out []field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || !sf.IsExported() {
			continue
		}
		f := field{index: i, name: FieldName(sf)}
		for _, part := range strings.Split(tag, ",") {
			name, p, _ := strings.Cut(strings.TrimSpace(part), "=")
			if name == "nullable" {
				f.nullable = true
				continue
			}
			if name != "" {
				f.rules = append(f.rules, rule{name: name, param: p})
			}
		}
		out = append(out, f)
	}

	parsed.Store(t, out)
	return out
}

// FieldName returns the json name of f, or its lower-cased Go name.
func FieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	}
	return v.IsZero()
}

func (v value) numeric() bool {
	switch v.rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// float reads a numeric field or parses a string one.
func (v value) float() (float64, bool) {
	switch {
	case v.rv.CanInt():
		return float64(v.rv.Int()), true
	case v.rv.CanUint():
		return float64(v.rv.Uint()), true
	case v.rv.CanFloat():
		return v.rv.Float(), true
	}
	return parseFloat(v.raw)
}

// size is the value of a number or the rune length of anything else.
func (v value) size() float64 {
	if v.numeric() {
		f, _ := v.float()
		return f
	}
	return float64(len([]rune(v.raw)))
}

func (v value) unit() string {
	if v.numeric() {
		return ""
	}
	return " characters"
}

var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseFloat reads plain decimal notation only. Out-of-range literals such as
// "1e400" come back as ±Inf so the finite rule, not numeric, rejects them.
func parseFloat(s string) (float64, bool) {
	if !decimal.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func param(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
