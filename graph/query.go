package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// newRootQuery builds the root Query object. Every field is a pure read; a
// missing single-entity lookup is a null result, never an error.
func newRootQuery() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"memberTypes": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(memberType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return storage.FromContext(p.Context).MemberTypes(p.Context)
				},
			},
			"memberType": &graphql.Field{
				Type: memberType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(memberTypeIDEnum)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return storage.FromContext(p.Context).MemberType(p.Context, p.Args["id"].(string))
				},
			},
			"users": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return storage.FromContext(p.Context).Users(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					user, err := storage.FromContext(p.Context).User(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					if user == nil {
						return nil, nil
					}
					return user, nil
				},
			},
			"posts": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return storage.FromContext(p.Context).Posts(p.Context)
				},
			},
			"post": &graphql.Field{
				Type: postType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					post, err := storage.FromContext(p.Context).Post(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					if post == nil {
						return nil, nil
					}
					return post, nil
				},
			},
			"profiles": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(profileType))),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return storage.FromContext(p.Context).Profiles(p.Context)
				},
			},
			"profile": &graphql.Field{
				Type: profileType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					profile, err := storage.FromContext(p.Context).Profile(p.Context, p.Args["id"].(string))
					if err != nil {
						return nil, err
					}
					if profile == nil {
						return nil, nil
					}
					return profile, nil
				},
			},
		},
	})
}
