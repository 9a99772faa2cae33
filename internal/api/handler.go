package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/auth"
	"github.com/sells-group/prospect-search/internal/model"
	"github.com/sells-group/prospect-search/internal/search"
)

// handleSearch gates the request on the bearer token, decodes the query,
// and runs the aggregation. Only auth and missing-provider configuration
// fail the request; everything else degrades inside the aggregator.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing bearer token")
		return
	}

	identity, err := s.verifier.Verify(r.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		zap.L().Error("api: token verification failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	// An empty body is a valid empty query; anything else that fails to
	// decode falls into the generic catch-all.
	var query model.SearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil && err != io.EOF {
		zap.L().Error("api: decode request body failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp, err := s.search.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, search.ErrNoProviders) {
			writeError(w, http.StatusInternalServerError,
				"no data providers configured; set at least one provider API key")
			return
		}
		zap.L().Error("api: search failed",
			zap.String("user", identity.ID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	zap.L().Info("api: search complete",
		zap.String("user", identity.ID),
		zap.String("provider", resp.Provider),
		zap.Int("companies", len(resp.Companies)),
	)
	writeJSON(w, http.StatusOK, resp)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Warn("api: write response failed", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.SearchResponse{
		Success:   false,
		Companies: []model.CompanyRecord{},
		Provider:  "none",
		Error:     message,
	})
}
