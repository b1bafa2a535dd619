package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// Literal results of the delete and subscription mutations.
const (
	resultDeleted      = "Deleted"
	resultSubscribed   = "Subscribed"
	resultUnsubscribed = "Unsubscribed"
)

// newRootMutation builds the root Mutation object. Each field commits (or
// fails) independently; no transaction spans multiple root fields.
func newRootMutation() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					user, err := storage.FromContext(p.Context).CreateUser(p.Context, storage.CreateUserParams{
						Name:    dto["name"].(string),
						Balance: toFloat(dto["balance"]),
					})
					if err != nil {
						return nil, mutationErr("user", err)
					}
					return user, nil
				},
			},
			"changeUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changeUserInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					user, err := storage.FromContext(p.Context).UpdateUser(p.Context, p.Args["id"].(string), storage.ChangeUserParams{
						Name:    optString(dto, "name"),
						Balance: optFloat(dto, "balance"),
					})
					if err != nil {
						return nil, mutationErr("user", err)
					}
					return user, nil
				},
			},
			"deleteUser": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := storage.FromContext(p.Context).DeleteUser(p.Context, p.Args["id"].(string)); err != nil {
						return nil, mutationErr("user", err)
					}
					return resultDeleted, nil
				},
			},
			"createProfile": &graphql.Field{
				Type: graphql.NewNonNull(profileType),
				Args: graphql.FieldConfigArgument{
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					profile, err := storage.FromContext(p.Context).CreateProfile(p.Context, storage.CreateProfileParams{
						IsMale:       dto["isMale"].(bool),
						YearOfBirth:  dto["yearOfBirth"].(int),
						MemberTypeID: dto["memberTypeId"].(string),
						UserID:       dto["userId"].(string),
					})
					if err != nil {
						return nil, mutationErr("profile", err)
					}
					return profile, nil
				},
			},
			"changeProfile": &graphql.Field{
				Type: graphql.NewNonNull(profileType),
				Args: graphql.FieldConfigArgument{
					"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changeProfileInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					profile, err := storage.FromContext(p.Context).UpdateProfile(p.Context, p.Args["id"].(string), storage.ChangeProfileParams{
						IsMale:       optBool(dto, "isMale"),
						YearOfBirth:  optInt(dto, "yearOfBirth"),
						MemberTypeID: optString(dto, "memberTypeId"),
						UserID:       optString(dto, "userId"),
					})
					if err != nil {
						return nil, mutationErr("profile", err)
					}
					return profile, nil
				},
			},
			"deleteProfile": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := storage.FromContext(p.Context).DeleteProfile(p.Context, p.Args["id"].(string)); err != nil {
						return nil, mutationErr("profile", err)
					}
					return resultDeleted, nil
				},
			},
			"createPost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createPostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					post, err := storage.FromContext(p.Context).CreatePost(p.Context, storage.CreatePostParams{
						Title:    dto["title"].(string),
						Content:  dto["content"].(string),
						AuthorID: dto["authorId"].(string),
					})
					if err != nil {
						return nil, mutationErr("post", err)
					}
					return post, nil
				},
			},
			"changePost": &graphql.Field{
				Type: graphql.NewNonNull(postType),
				Args: graphql.FieldConfigArgument{
					"id":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
					"dto": &graphql.ArgumentConfig{Type: graphql.NewNonNull(changePostInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					dto := p.Args["dto"].(map[string]any)
					post, err := storage.FromContext(p.Context).UpdatePost(p.Context, p.Args["id"].(string), storage.ChangePostParams{
						Title:    optString(dto, "title"),
						Content:  optString(dto, "content"),
						AuthorID: optString(dto, "authorId"),
					})
					if err != nil {
						return nil, mutationErr("post", err)
					}
					return post, nil
				},
			},
			"deletePost": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if err := storage.FromContext(p.Context).DeletePost(p.Context, p.Args["id"].(string)); err != nil {
						return nil, mutationErr("post", err)
					}
					return resultDeleted, nil
				},
			},
			"subscribeTo": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
					"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					err := storage.FromContext(p.Context).Subscribe(p.Context, p.Args["userId"].(string), p.Args["authorId"].(string))
					if err != nil {
						return nil, mutationErr("subscription", err)
					}
					return resultSubscribed, nil
				},
			},
			"unsubscribeFrom": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"userId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
					"authorId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(uuidType)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					err := storage.FromContext(p.Context).Unsubscribe(p.Context, p.Args["userId"].(string), p.Args["authorId"].(string))
					if err != nil {
						return nil, mutationErr("subscription", err)
					}
					return resultUnsubscribed, nil
				},
			},
		},
	})
}

// mutationErr folds the storage sentinels into stable user-facing messages;
// anything else passes through as an execution error for the field.
func mutationErr(entity string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s not found", entity)
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Errorf("%s already exists", entity)
	case errors.Is(err, storage.ErrForeignKey):
		return fmt.Errorf("%s references a missing record", entity)
	default:
		return err
	}
}

// Optional dto field accessors. Absent keys mean "leave the field alone".

func optString(dto map[string]any, key string) *string {
	if v, ok := dto[key]; ok {
		if s, ok := v.(string); ok {
			return &s
		}
	}
	return nil
}

func optFloat(dto map[string]any, key string) *float64 {
	if v, ok := dto[key]; ok {
		if f, ok := toFloatOK(v); ok {
			return &f
		}
	}
	return nil
}

func optInt(dto map[string]any, key string) *int {
	if v, ok := dto[key]; ok {
		if i, ok := v.(int); ok {
			return &i
		}
	}
	return nil
}

func optBool(dto map[string]any, key string) *bool {
	if v, ok := dto[key]; ok {
		if b, ok := v.(bool); ok {
			return &b
		}
	}
	return nil
}

// toFloat accepts both float64 and int, since Float-typed arguments arrive
// as int when the literal has no fraction.
func toFloat(v any) float64 {
	f, _ := toFloatOK(v)
	return f
}

func toFloatOK(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
