package provider

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/model"
)

const upleadDefaultBaseURL = "https://api.uplead.com"

// UpLead adapts the UpLead contact-discovery company search API, a GET
// endpoint with flat query parameters.
type UpLead struct {
	apiKey string
	cfg    clientConfig
}

// NewUpLead creates an UpLead adapter.
func NewUpLead(apiKey string, opts ...Option) *UpLead {
	return &UpLead{
		apiKey: apiKey,
		cfg:    newClientConfig(upleadDefaultBaseURL, opts...),
	}
}

// Name returns the provider identifier.
func (u *UpLead) Name() string { return "uplead" }

type upleadCompany struct {
	CompanyName   string  `json:"company_name"`
	Domain        string  `json:"domain"`
	Website       string  `json:"website"`
	LinkedinURL   string  `json:"linkedin_url"`
	Industry      string  `json:"industry"`
	EmployeeCount int     `json:"employee_count"`
	EmployeeRange string  `json:"employee_range"`
	AnnualRevenue float64 `json:"annual_revenue"`
	FoundedYear   int     `json:"founded_year"`
	Description   string  `json:"description"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Country       string  `json:"country"`
	Phone         string  `json:"phone"`
	LogoURL       string  `json:"logo_url"`
}

type upleadResponse struct {
	Data struct {
		Results      []upleadCompany `json:"results"`
		TotalResults int             `json:"total_results"`
		TotalPages   int             `json:"total_pages"`
	} `json:"data"`
}

// Search translates the common query into UpLead's flat parameters and
// normalizes the results into CompanyRecords.
func (u *UpLead) Search(ctx context.Context, query model.SearchQuery) (*Result, error) {
	params := url.Values{}
	if query.Industry != "" {
		params.Set("industry", query.Industry)
	}
	if query.Location != "" {
		params.Set("location", query.Location)
	}
	if query.ExcludeLocations != "" {
		params.Set("exclude_location", query.ExcludeLocations)
	}
	if query.Keywords != "" {
		params.Set("keyword", query.Keywords)
	}
	if query.EmployeeMin > 0 {
		params.Set("min_employees", strconv.Itoa(query.EmployeeMin))
	}
	if query.EmployeeMax > 0 {
		params.Set("max_employees", strconv.Itoa(query.EmployeeMax))
	}
	if len(query.Technologies) > 0 {
		params.Set("technology", strings.Join(query.Technologies, ","))
	}
	if len(query.SICCodes) > 0 {
		params.Set("sic_code", strings.Join(query.SICCodes, ","))
	}
	params.Set("page", strconv.Itoa(query.EffectivePage()))
	params.Set("per_page", strconv.Itoa(query.EffectiveLimit()))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		u.cfg.baseURL+"/v2/company-search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "uplead: create request")
	}
	httpReq.Header.Set("Authorization", u.apiKey)

	resp, err := u.cfg.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "uplead: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "uplead: read response")
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("uplead: non-200 response",
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	var parsed upleadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		zap.L().Debug("uplead: malformed response", zap.Error(err))
		return nil, nil
	}
	if len(parsed.Data.Results) == 0 {
		return nil, nil
	}

	records := make([]model.CompanyRecord, 0, len(parsed.Data.Results))
	for _, c := range parsed.Data.Results {
		records = append(records, c.toRecord())
	}

	result := &Result{Records: records}
	if parsed.Data.TotalResults > 0 {
		result.Page = &model.PageInfo{
			TotalEntries: parsed.Data.TotalResults,
			TotalPages:   parsed.Data.TotalPages,
		}
	}
	return result, nil
}

func (c upleadCompany) toRecord() model.CompanyRecord {
	var socials map[string]string
	if c.LinkedinURL != "" {
		socials = map[string]string{"linkedin": c.LinkedinURL}
	}

	return model.CompanyRecord{
		Name:          c.CompanyName,
		Domain:        c.Domain,
		Website:       c.Website,
		LinkedInURL:   c.LinkedinURL,
		Industry:      c.Industry,
		EmployeeCount: c.EmployeeCount,
		CompanySize:   c.EmployeeRange,
		AnnualRevenue: c.AnnualRevenue,
		FoundedYear:   c.FoundedYear,
		Description:   c.Description,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Socials:       socials,
		Phone:         c.Phone,
		LogoURL:       c.LogoURL,
		Provider:      "uplead",
	}
}
