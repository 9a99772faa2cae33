// Package api exposes the aggregator over HTTP: one search endpoint behind
// a bearer-token gate, with permissive CORS for browser callers.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/sells-group/prospect-search/internal/auth"
	"github.com/sells-group/prospect-search/internal/model"
)

// SearchService runs one aggregated company search.
type SearchService interface {
	Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, error)
}

// Server holds the handler dependencies.
type Server struct {
	search   SearchService
	verifier auth.Verifier
}

// NewServer creates the API server.
func NewServer(search SearchService, verifier auth.Verifier) *Server {
	return &Server{search: search, verifier: verifier}
}

// Router builds the chi router with CORS, request-id, and logging middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(accessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "apikey"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/industry-search", s.handleSearch)

	return r
}
