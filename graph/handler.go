package graph

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/graphql-go/graphql/gqlerrors"

	"github.com/vilkasts/graphql-basics/internal/storage"
)

// internalErrorMessage is the only text exposed for unexpected failures.
const internalErrorMessage = "500: Internal server error"

// Handler is the HTTP ingress: POST {query, variables} in, {data}/{errors}
// out. Failures of every class are reported in the structured error list
// with a 200 status; only the transport itself (wrong method, unreadable
// body) deviates.
type Handler struct {
	gateway *Gateway
	store   storage.Store
}

// NewHandler wires the gateway to a store.
func NewHandler(gateway *Gateway, store storage.Store) *Handler {
	return &Handler{gateway: gateway, store: store}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("POST is the only supported method"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusOK, errorResponse("invalid request body"))
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic serving graphql request: %v", rec)
			writeJSON(w, http.StatusOK, errorResponse(internalErrorMessage))
		}
	}()

	resp := h.gateway.Execute(r.Context(), h.store, req)
	writeJSON(w, http.StatusOK, resp)
}

func errorResponse(message string) *Response {
	return &Response{
		Errors: []gqlerrors.FormattedError{{Message: message}},
	}
}

func writeJSON(w http.ResponseWriter, status int, body *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("failed to write graphql response: %v", err)
	}
}
