// Package graph defines the GraphQL schema over the storage contract: the
// entity and input type registries, the root query and mutation operations,
// the depth guard, and the execution gateway that ties them together.
package graph

import (
	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// uuidType coerces UUID-formatted string identifiers. Malformed values are
// rejected at coercion, before any store call happens.
var uuidType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "UUID",
	Description: "A UUID-formatted string identifier.",
	Serialize: func(value any) any {
		switch v := value.(type) {
		case string:
			return v
		case uuid.UUID:
			return v.String()
		default:
			return nil
		}
	},
	ParseValue: func(value any) any {
		return coerceUUID(value)
	},
	ParseLiteral: func(valueAST ast.Value) any {
		if sv, ok := valueAST.(*ast.StringValue); ok {
			return coerceUUID(sv.Value)
		}
		return nil
	},
})

// coerceUUID returns the canonical string form of value if it is a valid
// UUID, nil otherwise. Returning nil makes the engine report an
// invalid-value coercion error for the argument.
func coerceUUID(value any) any {
	s, ok := value.(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return id.String()
}

// memberTypeIDEnum enumerates the member type identifiers.
var memberTypeIDEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "MemberTypeId",
	Values: graphql.EnumValueConfigMap{
		"BASIC":    &graphql.EnumValueConfig{Value: "BASIC"},
		"BUSINESS": &graphql.EnumValueConfig{Value: "BUSINESS"},
	},
})
