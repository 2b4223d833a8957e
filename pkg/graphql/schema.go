// Package graphql wraps graphql-go with the small surface the app needs:
// schema construction and an HTTP handler speaking the standard
// {query, variables, operationName} request shape.
package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/putrawardana/warungsaji/pkg/bind"
	"github.com/putrawardana/warungsaji/pkg/response"
)

// NewSchema creates a new GraphQL schema from a provided RootQuery.
func NewSchema(query *graphql.Object) (graphql.Schema, error) {
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: query,
	})
}

type request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// Handler returns an http.HandlerFunc that executes GraphQL queries
// against the given schema. The result is returned raw, not wrapped in
// the API envelope, so standard GraphQL clients can consume it.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if _, err := bind.JSON(r, &req); err != nil {
			response.BadRequest(w, "Invalid GraphQL request body")
			return
		}
		if req.Query == "" {
			response.BadRequest(w, "Missing query")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        r.Context(),
		})

		response.Raw(w, http.StatusOK, result)
	}
}
