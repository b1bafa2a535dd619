package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vilkasts/graphql-basics/internal/storage/memory"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	return NewHandler(newTestGateway(t), memory.New())
}

func postGraphQL(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandler_QueryReturnsData(t *testing.T) {
	rec := postGraphQL(t, newTestHandler(t), `{"query": "{ memberTypes { id } }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	require.NotContains(t, body, "errors")
	require.Len(t, body["data"].(map[string]any)["memberTypes"], 2)
}

func TestHandler_ErrorsStillReturn200(t *testing.T) {
	rec := postGraphQL(t, newTestHandler(t), `{"query": "{ nope }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.NotContains(t, body, "data")
	require.NotEmpty(t, body["errors"])
}

func TestHandler_DepthViolationReturns200WithErrors(t *testing.T) {
	query := `{ users { userSubscribedTo { userSubscribedTo { userSubscribedTo { posts { id } } } } } }`
	payload, err := json.Marshal(map[string]any{"query": query})
	require.NoError(t, err)

	rec := postGraphQL(t, newTestHandler(t), string(payload))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	message := errs[0].(map[string]any)["message"].(string)
	require.Contains(t, message, "maximum operation depth of 5")
}

func TestHandler_InvalidBodyReturnsErrorList(t *testing.T) {
	rec := postGraphQL(t, newTestHandler(t), `{not json`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	require.Equal(t, "invalid request body", errs[0].(map[string]any)["message"])
}

func TestHandler_GetIsRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	rec := httptest.NewRecorder()
	newTestHandler(t).ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandler_VariablesArePassedThrough(t *testing.T) {
	h := newTestHandler(t)

	rec := postGraphQL(t, h, `{
		"query": "mutation ($dto: CreateUserInput!) { createUser(dto: $dto) { name balance } }",
		"variables": {"dto": {"name": "bob", "balance": 3.5}}
	}`)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	created := body["data"].(map[string]any)["createUser"].(map[string]any)
	require.Equal(t, "bob", created["name"])
	require.Equal(t, 3.5, created["balance"])
}
