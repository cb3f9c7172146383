package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/datastax/data-filter-apis/config"
	"github.com/datastax/data-filter-apis/db"
	"github.com/datastax/data-filter-apis/log"
	"github.com/datastax/data-filter-apis/types"
)

type executeQueryFunc func(query string, ctx context.Context) *graphql.Result

type RouteGenerator struct {
	logger    log.Logger
	schemaGen *SchemaGenerator
}

type RequestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

func NewRouteGenerator(dbClient *db.Db, cfg config.Config) *RouteGenerator {
	return &RouteGenerator{
		logger:    cfg.Logger(),
		schemaGen: NewSchemaGenerator(dbClient, cfg),
	}
}

func (rg *RouteGenerator) Routes(pattern string) ([]types.Route, error) {
	schema, err := rg.schemaGen.BuildSchema()
	if err != nil {
		return nil, fmt.Errorf("unable to build graphql schema: %s", err)
	}

	return routesForSchema(pattern, func(query string, ctx context.Context) *graphql.Result {
		return rg.executeQuery(query, nil, ctx, schema)
	}, func(body RequestBody, ctx context.Context) *graphql.Result {
		return rg.executeQuery(body.Query, body.Variables, ctx, schema)
	}), nil
}

func routesForSchema(
	pattern string, execute executeQueryFunc, executeBody func(RequestBody, context.Context) *graphql.Result,
) []types.Route {
	return []types.Route{
		{
			Method:  http.MethodGet,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				result := execute(r.URL.Query().Get("query"), r.Context())
				writeResult(w, result)
			}),
		},
		{
			Method:  http.MethodPost,
			Pattern: pattern,
			Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Body == nil {
					http.Error(w, "No request body", 400)
					return
				}

				var body RequestBody
				err := json.NewDecoder(r.Body).Decode(&body)
				if err != nil {
					http.Error(w, "Request body is invalid", 400)
					return
				}

				writeResult(w, executeBody(body, r.Context()))
			}),
		},
	}
}

func writeResult(w http.ResponseWriter, result *graphql.Result) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	err := json.NewEncoder(w).Encode(result)
	if err != nil {
		http.Error(w, "response could not be encoded: "+err.Error(), 500)
	}
}

func (rg *RouteGenerator) executeQuery(
	query string, variables map[string]interface{}, ctx context.Context, schema graphql.Schema,
) *graphql.Result {
	result := graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
	if len(result.Errors) > 0 {
		rg.logger.Debug("errors processing graphql query", "errors", result.Errors)
	}
	return result
}
