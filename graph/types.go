package graph

import (
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// Entity type registry. Each relation field performs exactly one store
// lookup; deeper relations resolve only when the query selects them, which
// re-enters this registry.
var (
	memberType  *graphql.Object
	postType    *graphql.Object
	profileType *graphql.Object
	userType    *graphql.Object
)

func init() {
	memberType = graphql.NewObject(graphql.ObjectConfig{
		Name: "MemberType",
		Fields: graphql.Fields{
			"id":                 &graphql.Field{Type: graphql.NewNonNull(memberTypeIDEnum)},
			"discount":           &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"postsLimitPerMonth": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	postType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id":      &graphql.Field{Type: graphql.NewNonNull(uuidType)},
			"title":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	profileType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(uuidType)},
			"isMale":      &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"yearOfBirth": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"memberType": &graphql.Field{
				Type:    graphql.NewNonNull(memberType),
				Resolve: resolveProfileMemberType,
			},
		},
	})

	// User refers to itself through the subscription views, so its fields are
	// a thunk, the Go counterpart of graphql-js `fields: () => ({...})`.
	userType = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id":      &graphql.Field{Type: graphql.NewNonNull(uuidType)},
				"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
				"balance": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
				"profile": &graphql.Field{
					Type:    profileType,
					Resolve: resolveUserProfile,
				},
				"posts": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(postType))),
					Resolve: resolveUserPosts,
				},
				"userSubscribedTo": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
					Resolve: resolveUserSubscribedTo,
				},
				"subscribedToUser": &graphql.Field{
					Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
					Resolve: resolveSubscribedToUser,
				},
			}
		}),
	})
}

// resolveProfileMemberType fetches the parent profile's member type. A
// missing row here is a data-integrity fault: the field is non-nullable and
// the engine turns the nil into a field error.
func resolveProfileMemberType(p graphql.ResolveParams) (any, error) {
	profile, ok := p.Source.(*storage.Profile)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T for Profile.memberType", p.Source)
	}
	return storage.FromContext(p.Context).MemberType(p.Context, profile.MemberTypeID)
}

// resolveUserProfile fetches the parent user's profile; nil is a normal
// result, not an error.
func resolveUserProfile(p graphql.ResolveParams) (any, error) {
	user, ok := p.Source.(*storage.User)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T for User.profile", p.Source)
	}
	profile, err := storage.FromContext(p.Context).ProfileByUserID(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	return profile, nil
}

func resolveUserPosts(p graphql.ResolveParams) (any, error) {
	user, ok := p.Source.(*storage.User)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T for User.posts", p.Source)
	}
	return storage.FromContext(p.Context).PostsByAuthor(p.Context, user.ID)
}

func resolveUserSubscribedTo(p graphql.ResolveParams) (any, error) {
	user, ok := p.Source.(*storage.User)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T for User.userSubscribedTo", p.Source)
	}
	return storage.FromContext(p.Context).SubscribedToAuthors(p.Context, user.ID)
}

func resolveSubscribedToUser(p graphql.ResolveParams) (any, error) {
	user, ok := p.Source.(*storage.User)
	if !ok {
		return nil, fmt.Errorf("unexpected source type %T for User.subscribedToUser", p.Source)
	}
	return storage.FromContext(p.Context).Subscribers(p.Context, user.ID)
}
