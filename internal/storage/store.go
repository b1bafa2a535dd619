package storage

import "context"

// Store is the data-access contract consumed by the GraphQL resolvers.
//
// Read methods that look up a single record return (nil, nil) when no record
// matches: a missing record is a normal null result, not an error. List
// methods return an empty, non-nil slice when nothing matches. Writes that
// target a missing record return ErrNotFound; constraint violations surface
// as ErrDuplicate or ErrForeignKey.
type Store interface {
	// Member types (reference data, read-only).
	MemberTypes(ctx context.Context) ([]*MemberType, error)
	MemberType(ctx context.Context, id string) (*MemberType, error)

	// Users.
	Users(ctx context.Context) ([]*User, error)
	User(ctx context.Context, id string) (*User, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	UpdateUser(ctx context.Context, id string, params ChangeUserParams) (*User, error)
	// DeleteUser cascades to the user's profile, posts and subscription rows.
	DeleteUser(ctx context.Context, id string) error

	// Profiles.
	Profiles(ctx context.Context) ([]*Profile, error)
	Profile(ctx context.Context, id string) (*Profile, error)
	ProfileByUserID(ctx context.Context, userID string) (*Profile, error)
	CreateProfile(ctx context.Context, params CreateProfileParams) (*Profile, error)
	UpdateProfile(ctx context.Context, id string, params ChangeProfileParams) (*Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	// Posts.
	Posts(ctx context.Context) ([]*Post, error)
	Post(ctx context.Context, id string) (*Post, error)
	PostsByAuthor(ctx context.Context, authorID string) ([]*Post, error)
	CreatePost(ctx context.Context, params CreatePostParams) (*Post, error)
	UpdatePost(ctx context.Context, id string, params ChangePostParams) (*Post, error)
	DeletePost(ctx context.Context, id string) error

	// Subscription join, exposed as its two inverse views.
	// SubscribedToAuthors lists the users that subscriberID subscribes to;
	// Subscribers lists the users subscribed to authorID.
	SubscribedToAuthors(ctx context.Context, subscriberID string) ([]*User, error)
	Subscribers(ctx context.Context, authorID string) ([]*User, error)
	Subscribe(ctx context.Context, subscriberID, authorID string) error
	Unsubscribe(ctx context.Context, subscriberID, authorID string) error
}

type contextKey struct{}

// NewContext returns a copy of ctx carrying the store. The store is threaded
// through every resolver invocation this way; there is no ambient handle.
func NewContext(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext extracts the store placed by NewContext. It panics if the
// context carries no store, which indicates a wiring bug, not a user error.
func FromContext(ctx context.Context) Store {
	s, ok := ctx.Value(contextKey{}).(Store)
	if !ok {
		panic("storage: context carries no store")
	}
	return s
}
