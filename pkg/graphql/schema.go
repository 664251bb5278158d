// Package graphql serves graphql-go schemas over HTTP.
package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/chefmenu/pkg/bind"
	"github.com/shashiranjanraj/chefmenu/pkg/logger"
	"github.com/shashiranjanraj/chefmenu/pkg/response"
)

// NewSchema creates a query-only schema from the given root query.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

// Request is the standard GraphQL-over-HTTP body.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

// Handler executes requests against schema. POST takes a JSON body, GET
// takes ?query=. Execution errors are reported in the result's "errors"
// with status 200, like any GraphQL server.
func Handler(schema graphql.Schema) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		switch r.Method {
		case http.MethodGet:
			req.Query = r.URL.Query().Get("query")
			req.OperationName = r.URL.Query().Get("operationName")
		case http.MethodPost:
			if err := bind.Decode(r, &req); err != nil {
				response.Error(w, http.StatusBadRequest, err.Error())
				return
			}
		default:
			response.MethodNotAllowed(w)
			return
		}
		if req.Query == "" {
			response.Error(w, http.StatusBadRequest, "query is required")
			return
		}

		result := Execute(r, schema, req)
		if result.HasErrors() {
			logger.WithCtx(r.Context()).Debug("graphql: query errors", "errors", len(result.Errors))
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithCtx(r.Context()).Error("graphql: encode result", "error", err)
		}
	})
}

// Execute runs req against schema with the request's context.
func Execute(r *http.Request, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})
}
