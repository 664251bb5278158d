// Package response writes the JSON envelope used by every chefmenu endpoint
// from code that has no *ctx.Context (middleware, plain handlers).
package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// Write sends body with its own status code.
func Write(w http.ResponseWriter, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(body.Status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	Write(w, Envelope{Status: http.StatusOK, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, Envelope{Status: status, Message: message})
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// MethodNotAllowed sends a 405.
func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// TooManyRequests sends a 429.
func TooManyRequests(w http.ResponseWriter) {
	Error(w, http.StatusTooManyRequests, "Too Many Requests")
}
