// Package storage defines the data-access contract shared by the GraphQL
// resolvers and the concrete store drivers. Models match the SQL schema in
// migrations/.
package storage

// MemberType is immutable reference data; the API never creates or deletes it.
type MemberType struct {
	ID                 string  `json:"id"`
	Discount           float64 `json:"discount"`
	PostsLimitPerMonth int     `json:"postsLimitPerMonth"`
}

// Member type ids seeded by the migrations.
const (
	MemberTypeBasic    = "BASIC"
	MemberTypeBusiness = "BUSINESS"
)

// User represents an account holder.
type User struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// Profile carries the optional 1:1 extension of a User.
type Profile struct {
	ID           string `json:"id"`
	IsMale       bool   `json:"isMale"`
	YearOfBirth  int    `json:"yearOfBirth"`
	UserID       string `json:"userId"`
	MemberTypeID string `json:"memberTypeId"`
}

// Post is an article authored by a User.
type Post struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

// CreateUserParams holds the fields required to insert a User.
type CreateUserParams struct {
	Name    string
	Balance float64
}

// ChangeUserParams holds a partial update; nil fields are left untouched.
type ChangeUserParams struct {
	Name    *string
	Balance *float64
}

// CreateProfileParams holds the fields required to insert a Profile.
type CreateProfileParams struct {
	IsMale       bool
	YearOfBirth  int
	UserID       string
	MemberTypeID string
}

// ChangeProfileParams holds a partial update; nil fields are left untouched.
type ChangeProfileParams struct {
	IsMale       *bool
	YearOfBirth  *int
	MemberTypeID *string
	UserID       *string
}

// CreatePostParams holds the fields required to insert a Post.
type CreatePostParams struct {
	Title    string
	Content  string
	AuthorID string
}

// ChangePostParams holds a partial update; nil fields are left untouched.
type ChangePostParams struct {
	Title    *string
	Content  *string
	AuthorID *string
}
