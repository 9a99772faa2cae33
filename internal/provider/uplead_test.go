package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-search/internal/model"
)

func TestUpLead_Search(t *testing.T) {
	var gotParams url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/company-search", r.URL.Path)
		assert.Equal(t, "uplead-key", r.Header.Get("Authorization"))
		gotParams = r.URL.Query()

		_, _ = w.Write([]byte(`{
			"data": {
				"results": [{
					"company_name": "Initech",
					"domain": "initech.com",
					"website": "https://initech.com",
					"linkedin_url": "https://linkedin.com/company/initech",
					"industry": "Software",
					"employee_count": 300,
					"employee_range": "201-500",
					"annual_revenue": 45000000,
					"founded_year": 1997,
					"description": "TPS report automation.",
					"city": "Dallas",
					"state": "TX",
					"country": "US",
					"phone": "+1 214 555 0111"
				}],
				"total_results": 12,
				"total_pages": 1
			}
		}`))
	}))
	defer srv.Close()

	adapter := NewUpLead("uplead-key", WithBaseURL(srv.URL))
	result, err := adapter.Search(context.Background(), model.SearchQuery{
		Industry:     "software",
		Location:     "Texas",
		EmployeeMin:  100,
		EmployeeMax:  1000,
		Technologies: []string{"Salesforce"},
		Limit:        10,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "software", gotParams.Get("industry"))
	assert.Equal(t, "Texas", gotParams.Get("location"))
	assert.Equal(t, "100", gotParams.Get("min_employees"))
	assert.Equal(t, "1000", gotParams.Get("max_employees"))
	assert.Equal(t, "Salesforce", gotParams.Get("technology"))
	assert.Equal(t, "1", gotParams.Get("page"))
	assert.Equal(t, "10", gotParams.Get("per_page"))

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "Initech", rec.Name)
	assert.Equal(t, "initech.com", rec.Domain)
	assert.Equal(t, 300, rec.EmployeeCount)
	assert.Equal(t, "201-500", rec.CompanySize)
	assert.Equal(t, "https://linkedin.com/company/initech", rec.Socials["linkedin"])
	assert.Equal(t, "uplead", rec.Provider)

	require.NotNil(t, result.Page)
	assert.Equal(t, 12, result.Page.TotalEntries)
}

func TestUpLead_Search_NoData(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"empty", http.StatusOK, `{"data": {"results": [], "total_results": 0}}`},
		{"forbidden", http.StatusForbidden, `{"error": "quota exceeded"}`},
		{"malformed", http.StatusOK, `<html>offline</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			adapter := NewUpLead("k", WithBaseURL(srv.URL))
			result, err := adapter.Search(context.Background(), model.SearchQuery{})
			assert.NoError(t, err)
			assert.Nil(t, result)
		})
	}
}
