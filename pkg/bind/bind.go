// Package bind decodes JSON request bodies for handlers and the GraphQL
// endpoint.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/chefmenu/config"
)

// ErrEmptyBody is returned when the request carries no JSON document.
var ErrEmptyBody = errors.New("request body is empty")

// Decode reads one JSON document from r.Body into dest. The body is capped
// at MAX_BODY_BYTES. Unknown fields are ignored.
func Decode(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	r.Body = http.MaxBytesReader(nil, r.Body, config.MaxBodyBytes())

	err := json.NewDecoder(r.Body).Decode(dest)
	var maxErr *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case errors.As(err, &maxErr):
		return fmt.Errorf("request body too large (max %d bytes)", maxErr.Limit)
	default:
		return fmt.Errorf("invalid JSON: %w", err)
	}
}

// Text is a string field that also accepts a JSON number, so clients may
// send "285.00" or 285.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a string or number, got %s", b)
	}
	*t = Text(n.String())
	return nil
}
