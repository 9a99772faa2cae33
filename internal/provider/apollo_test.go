package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-search/internal/model"
)

func TestApollo_Search(t *testing.T) {
	var gotReq apolloRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/mixed_companies/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"organizations": [{
				"name": "Acme Corp",
				"primary_domain": "acme.com",
				"website_url": "https://www.acme.com",
				"linkedin_url": "https://linkedin.com/company/acme",
				"industry": "Software Development",
				"estimated_num_employees": 120,
				"annual_revenue": 25000000,
				"founded_year": 2012,
				"short_description": "Acme does widgets.",
				"city": "Austin",
				"state": "TX",
				"country": "US",
				"technology_names": ["AWS", "React"],
				"keywords": ["widgets"],
				"phone": "+1 512 555 0100",
				"logo_url": "https://logo.test/acme.png"
			}],
			"pagination": {"total_entries": 240, "total_pages": 10}
		}`))
	}))
	defer srv.Close()

	adapter := NewApollo("test-key", WithBaseURL(srv.URL))
	result, err := adapter.Search(context.Background(), model.SearchQuery{
		Industry:    "software, fintech",
		EmployeeMin: 50,
		EmployeeMax: 500,
		Location:    "Austin",
		Page:        2,
		Limit:       25,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// Query translation.
	assert.Equal(t, []string{"software", "fintech"}, gotReq.KeywordTags)
	assert.Equal(t, []string{"50,500"}, gotReq.NumEmployeesRanges)
	assert.Equal(t, []string{"Austin"}, gotReq.Locations)
	assert.Equal(t, 2, gotReq.Page)
	assert.Equal(t, 25, gotReq.PerPage)

	// Response normalization.
	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Acme Corp", rec.Name)
	assert.Equal(t, "acme.com", rec.Domain)
	assert.Equal(t, "Software Development", rec.Industry)
	assert.Equal(t, 120, rec.EmployeeCount)
	assert.Equal(t, 2012, rec.FoundedYear)
	assert.Equal(t, "Austin", rec.City)
	assert.Equal(t, []string{"AWS", "React"}, rec.Technologies)
	assert.Equal(t, "https://linkedin.com/company/acme", rec.Socials["linkedin"])
	assert.Equal(t, "apollo", rec.Provider)

	require.NotNil(t, result.Page)
	assert.Equal(t, 240, result.Page.TotalEntries)
	assert.Equal(t, 10, result.Page.TotalPages)
}

func TestApollo_Search_AccountsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"accounts": [{"name": "Only Account", "primary_domain": "only.io"}]}`))
	}))
	defer srv.Close()

	adapter := NewApollo("k", WithBaseURL(srv.URL))
	result, err := adapter.Search(context.Background(), model.SearchQuery{})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "Only Account", result.Records[0].Name)
	assert.Nil(t, result.Page)
}

func TestApollo_Search_NoData(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty_results", http.StatusOK, `{"organizations": [], "pagination": {"total_entries": 0}}`},
		{"unauthorized", http.StatusUnauthorized, `{"error": "invalid api key"}`},
		{"server_error", http.StatusInternalServerError, `boom`},
		{"malformed_payload", http.StatusOK, `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			adapter := NewApollo("k", WithBaseURL(srv.URL))
			result, err := adapter.Search(context.Background(), model.SearchQuery{})
			assert.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestApollo_Search_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // closed before use

	adapter := NewApollo("k", WithBaseURL(srv.URL))
	result, err := adapter.Search(context.Background(), model.SearchQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apollo: send request")
	assert.Nil(t, result)
}

func TestApolloEmployeeRanges(t *testing.T) {
	tests := []struct {
		name  string
		query model.SearchQuery
		want  []string
	}{
		{"none", model.SearchQuery{}, nil},
		{"min_and_max", model.SearchQuery{EmployeeMin: 10, EmployeeMax: 200}, []string{"10,200"}},
		{"min_only", model.SearchQuery{EmployeeMin: 100}, []string{"100,1000000"}},
		{"max_only", model.SearchQuery{EmployeeMax: 50}, []string{"1,50"}},
		{"size_buckets", model.SearchQuery{CompanySizes: []string{"11-50", "10001+"}}, []string{"11,50", "10001,1000000"}},
		{"buckets_win_over_range", model.SearchQuery{CompanySizes: []string{"1-10"}, EmployeeMin: 500}, []string{"1,10"}},
		{"unknown_bucket_ignored", model.SearchQuery{CompanySizes: []string{"huge"}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apolloEmployeeRanges(tt.query))
		})
	}
}
