// Copyright (c) 2026 Kiram Dashboard. All rights reserved.
// Author: dwikiramdani

package gql

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	"github.com/dwikiramdani/kiramdashboard/internal/platform/ctxutil"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/middleware"
	requestutil "github.com/dwikiramdani/kiramdashboard/internal/platform/request"
	"github.com/dwikiramdani/kiramdashboard/internal/platform/respond"
)

// Request is a GraphQL-over-HTTP request.
type Request struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

// RegisterRoutes mounts the endpoint at the router root.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.execute)
	router.Post("/", handler.execute)
}

/*
GET  /graphql?query=...&variables=...&operationName=...
POST /graphql {"query": "...", "variables": {...}}

Response: 200 with {"data": ..., "errors": [...]}; 400 when no query can be
read; 405 for a mutation sent over GET.
*/
func (handler *Handler) execute(writer http.ResponseWriter, request *http.Request) {
	params, err := readRequest(writer, request)
	if err != nil {
		writeErrors(writer, http.StatusBadRequest, err.Error())
		return
	}

	// Mutations are POST only.
	if request.Method == http.MethodGet && isMutation(params) {
		writer.Header().Set("Allow", http.MethodPost)
		writeErrors(writer, http.StatusMethodNotAllowed, "Can only perform a mutation operation from a POST request")
		return
	}

	context := ctxutil.WithClientIP(request.Context(), middleware.RealIP(request))

	result := graphql.Do(graphql.Params{
		Schema:         handler.schema,
		RequestString:  params.Query,
		VariableValues: params.Variables,
		OperationName:  params.OperationName,
		Context:        context,
	})

	respond.JSON(writer, http.StatusOK, result)
}

func writeErrors(writer http.ResponseWriter, status int, message string) {
	respond.JSON(writer, status, &graphql.Result{
		Errors: []gqlerrors.FormattedError{gqlerrors.NewFormattedError(message)},
	})
}

// isMutation reports whether the operation that would run is a mutation.
// Documents that do not parse are left for graphql.Do to report.
func isMutation(params *Request) bool {
	document, err := parser.Parse(parser.ParseParams{Source: params.Query})
	if err != nil {
		return false
	}

	var selected *ast.OperationDefinition
	for _, definition := range document.Definitions {
		operation, ok := definition.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if params.OperationName == "" {
			if selected != nil {
				return false
			}
			selected = operation
			continue
		}
		if operation.Name != nil && operation.Name.Value == params.OperationName {
			selected = operation
		}
	}
	return selected != nil && selected.Operation == ast.OperationTypeMutation
}

type requestError string

func (e requestError) Error() string { return string(e) }

func readRequest(writer http.ResponseWriter, request *http.Request) (*Request, error) {
	params := &Request{}

	if request.Method == http.MethodGet {
		query := request.URL.Query()
		params.Query = query.Get("query")
		params.OperationName = query.Get("operationName")
		if variables := query.Get("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &params.Variables); err != nil {
				return nil, requestError("Variables are invalid JSON")
			}
		}
	} else if err := requestutil.DecodeJSON(writer, request, params); err != nil {
		return nil, requestError("Body must be a JSON GraphQL request")
	}

	if strings.TrimSpace(params.Query) == "" {
		return nil, requestError("Must provide query string")
	}
	return params, nil
}
