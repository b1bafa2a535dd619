package graph

import (
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/hashicorp/go-multierror"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// Request is the ingress contract: a raw query string plus optional
// variables.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Response is the egress contract. Both groups may be present under partial
// failure; on a clean success Errors is empty, on a validation failure Data
// is absent.
type Response struct {
	Data   any                        `json:"data,omitempty"`
	Errors []gqlerrors.FormattedError `json:"errors,omitempty"`
}

// Gateway executes GraphQL requests: parse, depth validation, execution
// against the root operation set, and normalization of the outcome. One
// request per Execute call; the only state is the immutable schema.
type Gateway struct {
	schema     graphql.Schema
	depthLimit int
}

// NewGateway builds the schema from the type registries and returns a
// gateway enforcing the given depth limit.
func NewGateway(depthLimit int) (*Gateway, error) {
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    newRootQuery(),
		Mutation: newRootMutation(),
	})
	if err != nil {
		return nil, err
	}
	return &Gateway{schema: schema, depthLimit: depthLimit}, nil
}

// Execute runs one request against the store. Stages are strictly ordered:
// a parse or depth violation terminates the request before any store access;
// execution errors are scoped per field by the engine.
func (g *Gateway) Execute(ctx context.Context, store storage.Store, req Request) *Response {
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{
			Body: []byte(req.Query),
			Name: "GraphQL request",
		}),
	})
	if err != nil {
		return &Response{Errors: []gqlerrors.FormattedError{gqlerrors.FormatError(err)}}
	}

	if err := validateDepth(doc, g.depthLimit); err != nil {
		return &Response{Errors: formatViolations(err)}
	}

	result := graphql.Do(graphql.Params{
		Schema:         g.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        storage.NewContext(ctx, store),
	})
	return &Response{Data: result.Data, Errors: result.Errors}
}

// formatViolations flattens an aggregated validation failure into the
// GraphQL error list shape.
func formatViolations(err error) []gqlerrors.FormattedError {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		out := make([]gqlerrors.FormattedError, 0, len(merr.Errors))
		for _, e := range merr.Errors {
			out = append(out, gqlerrors.FormatError(e))
		}
		return out
	}
	return []gqlerrors.FormattedError{gqlerrors.FormatError(err)}
}
