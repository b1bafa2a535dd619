package graph

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vilkasts/graphql-basics/internal/storage"
	"github.com/vilkasts/graphql-basics/internal/storage/memory"
)

func newTestGateway(t *testing.T) *Gateway {
	t.Helper()
	gw, err := NewGateway(5)
	require.NoError(t, err)
	return gw
}

func exec(t *testing.T, gw *Gateway, store storage.Store, query string, variables map[string]any) *Response {
	t.Helper()
	return gw.Execute(context.Background(), store, Request{Query: query, Variables: variables})
}

func data(t *testing.T, resp *Response) map[string]any {
	t.Helper()
	require.Empty(t, resp.Errors, "expected no errors, got %v", resp.Errors)
	m, ok := resp.Data.(map[string]any)
	require.True(t, ok, "expected map data, got %T", resp.Data)
	return m
}

func seedUser(t *testing.T, store storage.Store, name string, balance float64) *storage.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), storage.CreateUserParams{Name: name, Balance: balance})
	require.NoError(t, err)
	return u
}

func TestExecute_SyntaxErrorIsReported(t *testing.T) {
	gw := newTestGateway(t)
	resp := exec(t, gw, memory.New(), "{ users {", nil)

	require.Nil(t, resp.Data)
	require.Len(t, resp.Errors, 1)
	require.Contains(t, resp.Errors[0].Message, "Syntax Error")
}

func TestExecute_MissingUserIsNullNotError(t *testing.T) {
	gw := newTestGateway(t)
	resp := exec(t, gw, memory.New(), `{ user(id: "`+uuid.New().String()+`") { id name } }`, nil)

	d := data(t, resp)
	require.Contains(t, d, "user")
	require.Nil(t, d["user"])
}

func TestExecute_MalformedUUIDRejectedBeforeStore(t *testing.T) {
	gw := newTestGateway(t)
	resp := exec(t, gw, memory.New(), `{ user(id: "definitely-not-a-uuid") { id } }`, nil)

	require.Nil(t, resp.Data)
	require.NotEmpty(t, resp.Errors)
}

func TestExecute_EmptyListsAreEmptyNotNull(t *testing.T) {
	gw := newTestGateway(t)
	d := data(t, exec(t, gw, memory.New(), `{ users { id } posts { id } profiles { id } }`, nil))

	require.Equal(t, []any{}, d["users"])
	require.Equal(t, []any{}, d["posts"])
	require.Equal(t, []any{}, d["profiles"])
}

func TestExecute_MemberTypesAreSeeded(t *testing.T) {
	gw := newTestGateway(t)
	d := data(t, exec(t, gw, memory.New(), `{ memberTypes { id discount postsLimitPerMonth } }`, nil))

	require.Len(t, d["memberTypes"], 2)

	d = data(t, exec(t, gw, memory.New(), `{ memberType(id: BASIC) { id discount postsLimitPerMonth } }`, nil))
	mt := d["memberType"].(map[string]any)
	require.Equal(t, "BASIC", mt["id"])
	require.Equal(t, 2.5, mt["discount"])
	require.Equal(t, 5, mt["postsLimitPerMonth"])
}

func TestExecute_CreateUserReturnsRecord(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()

	d := data(t, exec(t, gw, store,
		`mutation { createUser(dto: { name: "alice", balance: 12.5 }) { id name balance } }`, nil))

	created := d["createUser"].(map[string]any)
	require.Equal(t, "alice", created["name"])
	require.Equal(t, 12.5, created["balance"])
	require.NotEmpty(t, created["id"])

	id := created["id"].(string)
	d = data(t, exec(t, gw, store, `query ($id: UUID!) { user(id: $id) { id name } }`,
		map[string]any{"id": id}))
	fetched := d["user"].(map[string]any)
	require.Equal(t, id, fetched["id"])
	require.Equal(t, "alice", fetched["name"])
}

func TestExecute_CreatePostRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	author := seedUser(t, store, "author", 0)

	d := data(t, exec(t, gw, store,
		`mutation ($dto: CreatePostInput!) { createPost(dto: $dto) { id title content } }`,
		map[string]any{"dto": map[string]any{
			"title":    "hello",
			"content":  "world",
			"authorId": author.ID,
		}}))
	created := d["createPost"].(map[string]any)

	d = data(t, exec(t, gw, store, `query ($id: UUID!) { post(id: $id) { id title content } }`,
		map[string]any{"id": created["id"]}))
	require.Equal(t, created, d["post"])
}

func TestExecute_ChangeUserIsPartial(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	u := seedUser(t, store, "before", 42)

	d := data(t, exec(t, gw, store,
		`mutation ($id: UUID!) { changeUser(id: $id, dto: { name: "after" }) { id name balance } }`,
		map[string]any{"id": u.ID}))

	changed := d["changeUser"].(map[string]any)
	require.Equal(t, "after", changed["name"])
	require.Equal(t, 42.0, changed["balance"])
}

func TestExecute_ChangeUserMissingIDErrors(t *testing.T) {
	gw := newTestGateway(t)
	resp := exec(t, gw, memory.New(),
		`mutation ($id: UUID!) { changeUser(id: $id, dto: { name: "x" }) { id } }`,
		map[string]any{"id": uuid.New().String()})

	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "user not found", resp.Errors[0].Message)
}

func TestExecute_DeleteUserTwiceErrors(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	u := seedUser(t, store, "victim", 0)
	vars := map[string]any{"id": u.ID}

	d := data(t, exec(t, gw, store, `mutation ($id: UUID!) { deleteUser(id: $id) }`, vars))
	require.Equal(t, "Deleted", d["deleteUser"])

	resp := exec(t, gw, store, `mutation ($id: UUID!) { deleteUser(id: $id) }`, vars)
	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "user not found", resp.Errors[0].Message)
}

func TestExecute_CreateProfileUnknownUserErrors(t *testing.T) {
	gw := newTestGateway(t)
	resp := exec(t, gw, memory.New(),
		`mutation ($dto: CreateProfileInput!) { createProfile(dto: $dto) { id } }`,
		map[string]any{"dto": map[string]any{
			"isMale":       true,
			"yearOfBirth":  1990,
			"memberTypeId": "BASIC",
			"userId":       uuid.New().String(),
		}})

	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "profile references a missing record", resp.Errors[0].Message)
}

func TestExecute_NestedTraversalMatchesDirectQueries(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	ctx := context.Background()

	u := seedUser(t, store, "nested", 7)
	profile, err := store.CreateProfile(ctx, storage.CreateProfileParams{
		IsMale: true, YearOfBirth: 1988, UserID: u.ID, MemberTypeID: storage.MemberTypeBusiness,
	})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, storage.CreatePostParams{Title: "t1", Content: "c1", AuthorID: u.ID})
	require.NoError(t, err)
	_, err = store.CreatePost(ctx, storage.CreatePostParams{Title: "t2", Content: "c2", AuthorID: u.ID})
	require.NoError(t, err)

	d := data(t, exec(t, gw, store, `query ($id: UUID!) {
		user(id: $id) {
			id
			profile { id memberType { id discount postsLimitPerMonth } }
			posts { id title content }
		}
	}`, map[string]any{"id": u.ID}))
	nested := d["user"].(map[string]any)

	direct := data(t, exec(t, gw, store, `query ($id: UUID!) { profile(id: $id) { id memberType { id discount postsLimitPerMonth } } }`,
		map[string]any{"id": profile.ID}))
	require.Equal(t, direct["profile"], nested["profile"])

	directMT := data(t, exec(t, gw, store, `{ memberType(id: BUSINESS) { id discount postsLimitPerMonth } }`, nil))
	require.Equal(t, directMT["memberType"], nested["profile"].(map[string]any)["memberType"])

	directPosts := data(t, exec(t, gw, store, `{ posts { id title content } }`, nil))
	require.ElementsMatch(t, directPosts["posts"], nested["posts"])
}

func TestExecute_SubscribeUnsubscribeRoundTrip(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	subscriber := seedUser(t, store, "subscriber", 0)
	author := seedUser(t, store, "author", 0)
	vars := map[string]any{"userId": subscriber.ID, "authorId": author.ID}

	d := data(t, exec(t, gw, store,
		`mutation ($userId: UUID!, $authorId: UUID!) { subscribeTo(userId: $userId, authorId: $authorId) }`, vars))
	require.Equal(t, "Subscribed", d["subscribeTo"])

	// Both inverse views must expose the same join row.
	d = data(t, exec(t, gw, store, `query ($userId: UUID!) { user(id: $userId) { userSubscribedTo { id } } }`,
		map[string]any{"userId": subscriber.ID}))
	require.Equal(t, []any{map[string]any{"id": author.ID}}, d["user"].(map[string]any)["userSubscribedTo"])

	d = data(t, exec(t, gw, store, `query ($authorId: UUID!) { user(id: $authorId) { subscribedToUser { id } } }`,
		map[string]any{"authorId": author.ID}))
	require.Equal(t, []any{map[string]any{"id": subscriber.ID}}, d["user"].(map[string]any)["subscribedToUser"])

	d = data(t, exec(t, gw, store,
		`mutation ($userId: UUID!, $authorId: UUID!) { unsubscribeFrom(userId: $userId, authorId: $authorId) }`, vars))
	require.Equal(t, "Unsubscribed", d["unsubscribeFrom"])

	// The join is back in its original state; a repeat unsubscribe errors.
	resp := exec(t, gw, store,
		`mutation ($userId: UUID!, $authorId: UUID!) { unsubscribeFrom(userId: $userId, authorId: $authorId) }`, vars)
	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "subscription not found", resp.Errors[0].Message)
}

func TestExecute_DuplicateSubscribeErrors(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	subscriber := seedUser(t, store, "subscriber", 0)
	author := seedUser(t, store, "author", 0)
	vars := map[string]any{"userId": subscriber.ID, "authorId": author.ID}
	query := `mutation ($userId: UUID!, $authorId: UUID!) { subscribeTo(userId: $userId, authorId: $authorId) }`

	data(t, exec(t, gw, store, query, vars))
	resp := exec(t, gw, store, query, vars)
	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "subscription already exists", resp.Errors[0].Message)
}

func TestExecute_PartialFailureKeepsSiblingResults(t *testing.T) {
	gw := newTestGateway(t)
	store := memory.New()
	author := seedUser(t, store, "author", 0)
	post, err := store.CreatePost(context.Background(), storage.CreatePostParams{
		Title: "t", Content: "c", AuthorID: author.ID,
	})
	require.NoError(t, err)

	resp := exec(t, gw, store,
		`mutation ($post: UUID!, $missing: UUID!) {
			ok: deletePost(id: $post)
			bad: deleteProfile(id: $missing)
		}`,
		map[string]any{"post": post.ID, "missing": uuid.New().String()})

	require.Len(t, resp.Errors, 1)
	require.Equal(t, "profile not found", resp.Errors[0].Message)

	d, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Deleted", d["ok"])
	require.Nil(t, d["bad"])
}
