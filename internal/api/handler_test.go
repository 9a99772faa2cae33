package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-search/internal/auth"
	"github.com/sells-group/prospect-search/internal/model"
	"github.com/sells-group/prospect-search/internal/search"
)

// fakeSearch implements SearchService.
type fakeSearch struct {
	resp    *model.SearchResponse
	err     error
	lastQry model.SearchQuery
}

func (f *fakeSearch) Search(_ context.Context, q model.SearchQuery) (*model.SearchResponse, error) {
	f.lastQry = q
	return f.resp, f.err
}

// fakeVerifier implements auth.Verifier.
type fakeVerifier struct {
	identity *auth.Identity
	err      error
}

func (f *fakeVerifier) Verify(_ context.Context, _ string) (*auth.Identity, error) {
	return f.identity, f.err
}

func okResponse() *model.SearchResponse {
	return &model.SearchResponse{
		Success:   true,
		Companies: []model.CompanyRecord{{Name: "Acme", Domain: "acme.com"}},
		Total:     1,
		Provider:  "apollo",
		Pagination: model.Pagination{
			Page: 1, Limit: 25, Total: 1,
		},
	}
}

func doRequest(t *testing.T, handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearch_Success(t *testing.T) {
	svc := &fakeSearch{resp: okResponse()}
	srv := NewServer(svc, &fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "tok",
		`{"industry": "fintech", "limit": 5}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "fintech", svc.lastQry.Industry)
	assert.Equal(t, 5, svc.lastQry.Limit)

	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "apollo", resp.Provider)
	require.Len(t, resp.Companies, 1)
	assert.Equal(t, "Acme", resp.Companies[0].Name)
}

func TestHandleSearch_MissingToken(t *testing.T) {
	svc := &fakeSearch{resp: okResponse()}
	srv := NewServer(svc, &fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "missing bearer token", resp.Error)
}

func TestHandleSearch_InvalidToken(t *testing.T) {
	srv := NewServer(&fakeSearch{}, &fakeVerifier{err: auth.ErrUnauthorized})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "bad", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSearch_EmptyBodyIsValidQuery(t *testing.T) {
	svc := &fakeSearch{resp: okResponse()}
	srv := NewServer(svc, &fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "tok", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SearchQuery{}, svc.lastQry)
}

func TestHandleSearch_MalformedBody(t *testing.T) {
	srv := NewServer(&fakeSearch{}, &fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "tok", `{not json`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Error)
}

func TestHandleSearch_NoProvidersConfigured(t *testing.T) {
	srv := NewServer(&fakeSearch{err: search.ErrNoProviders},
		&fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "tok", `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "no data providers configured")
}

func TestHandleSearch_UnexpectedErrorIsGeneric(t *testing.T) {
	srv := NewServer(&fakeSearch{err: eris.New("something leaked")},
		&fakeVerifier{identity: &auth.Identity{ID: "u1"}})

	rec := doRequest(t, srv.Router(), http.MethodPost, "/v1/industry-search", "tok", `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var resp model.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal error", resp.Error)
	assert.NotContains(t, rec.Body.String(), "something leaked")
}

func TestHealth(t *testing.T) {
	srv := NewServer(&fakeSearch{}, &fakeVerifier{})

	rec := doRequest(t, srv.Router(), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	srv := NewServer(&fakeSearch{}, &fakeVerifier{})

	req := httptest.NewRequest(http.MethodOptions, "/v1/industry-search", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRequestIDAssigned(t *testing.T) {
	srv := NewServer(&fakeSearch{}, &fakeVerifier{})

	rec := doRequest(t, srv.Router(), http.MethodGet, "/health", "", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "propagated")
	rec2 := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec2, req)
	assert.Equal(t, "propagated", rec2.Header().Get("X-Request-ID"))
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, bearerToken(req), "header %q", tt.header)
	}
}
