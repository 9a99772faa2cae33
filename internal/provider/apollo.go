package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/model"
)

const apolloDefaultBaseURL = "https://api.apollo.io"

// Apollo adapts the Apollo.io company-graph search API.
type Apollo struct {
	apiKey string
	cfg    clientConfig
}

// NewApollo creates an Apollo adapter.
func NewApollo(apiKey string, opts ...Option) *Apollo {
	return &Apollo{
		apiKey: apiKey,
		cfg:    newClientConfig(apolloDefaultBaseURL, opts...),
	}
}

// Name returns the provider identifier.
func (a *Apollo) Name() string { return "apollo" }

// apolloRequest is the POST body for /v1/mixed_companies/search.
type apolloRequest struct {
	KeywordTags         []string `json:"q_organization_keyword_tags,omitempty"`
	NotKeywordTags      []string `json:"q_not_organization_keyword_tags,omitempty"`
	NumEmployeesRanges  []string `json:"organization_num_employees_ranges,omitempty"`
	Locations           []string `json:"organization_locations,omitempty"`
	NotLocations        []string `json:"organization_not_locations,omitempty"`
	TechnologyUIDs      []string `json:"currently_using_any_of_technology_uids,omitempty"`
	LatestFundingStages []string `json:"organization_latest_funding_stage_cd,omitempty"`
	Page                int      `json:"page,omitempty"`
	PerPage             int      `json:"per_page,omitempty"`
}

type apolloOrganization struct {
	Name             string   `json:"name"`
	PrimaryDomain    string   `json:"primary_domain"`
	WebsiteURL       string   `json:"website_url"`
	LinkedinURL      string   `json:"linkedin_url"`
	FacebookURL      string   `json:"facebook_url"`
	TwitterURL       string   `json:"twitter_url"`
	Industry         string   `json:"industry"`
	EstimatedNumEmps int      `json:"estimated_num_employees"`
	AnnualRevenue    float64  `json:"annual_revenue"`
	FoundedYear      int      `json:"founded_year"`
	ShortDescription string   `json:"short_description"`
	City             string   `json:"city"`
	State            string   `json:"state"`
	Country          string   `json:"country"`
	TechnologyNames  []string `json:"technology_names"`
	Keywords         []string `json:"keywords"`
	Phone            string   `json:"phone"`
	LogoURL          string   `json:"logo_url"`
}

type apolloResponse struct {
	Organizations []apolloOrganization `json:"organizations"`
	Accounts      []apolloOrganization `json:"accounts"`
	Pagination    struct {
		TotalEntries int `json:"total_entries"`
		TotalPages   int `json:"total_pages"`
	} `json:"pagination"`
}

// Search translates the common query into Apollo's filter arrays and
// normalizes organizations/accounts into CompanyRecords.
func (a *Apollo) Search(ctx context.Context, query model.SearchQuery) (*Result, error) {
	reqBody := apolloRequest{
		KeywordTags:         append(query.IndustryTerms(), query.KeywordTerms()...),
		NotKeywordTags:      append(query.ExcludedIndustryTerms(), model.SplitTerms(query.ExcludeKeywords)...),
		NumEmployeesRanges:  apolloEmployeeRanges(query),
		Locations:           query.LocationTerms(),
		NotLocations:        query.ExcludedLocationTerms(),
		TechnologyUIDs:      lowerAll(query.Technologies),
		LatestFundingStages: lowerAll(model.SplitTerms(query.FundingStage)),
		Page:                query.EffectivePage(),
		PerPage:             query.EffectiveLimit(),
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.cfg.baseURL+"/v1/mixed_companies/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "apollo: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("X-Api-Key", a.apiKey)

	resp, err := a.cfg.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "apollo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("apollo: non-200 response",
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	var parsed apolloResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		zap.L().Debug("apollo: malformed response", zap.Error(err))
		return nil, nil
	}

	orgs := parsed.Organizations
	if len(orgs) == 0 {
		orgs = parsed.Accounts
	}
	if len(orgs) == 0 {
		return nil, nil
	}

	records := make([]model.CompanyRecord, 0, len(orgs))
	for _, org := range orgs {
		records = append(records, org.toRecord())
	}

	result := &Result{Records: records}
	if parsed.Pagination.TotalEntries > 0 {
		result.Page = &model.PageInfo{
			TotalEntries: parsed.Pagination.TotalEntries,
			TotalPages:   parsed.Pagination.TotalPages,
		}
	}
	return result, nil
}

func (o apolloOrganization) toRecord() model.CompanyRecord {
	socials := map[string]string{}
	if o.LinkedinURL != "" {
		socials["linkedin"] = o.LinkedinURL
	}
	if o.FacebookURL != "" {
		socials["facebook"] = o.FacebookURL
	}
	if o.TwitterURL != "" {
		socials["twitter"] = o.TwitterURL
	}
	if len(socials) == 0 {
		socials = nil
	}

	return model.CompanyRecord{
		Name:          o.Name,
		Domain:        o.PrimaryDomain,
		Website:       o.WebsiteURL,
		LinkedInURL:   o.LinkedinURL,
		Industry:      o.Industry,
		EmployeeCount: o.EstimatedNumEmps,
		AnnualRevenue: o.AnnualRevenue,
		FoundedYear:   o.FoundedYear,
		Description:   o.ShortDescription,
		City:          o.City,
		State:         o.State,
		Country:       o.Country,
		Technologies:  o.TechnologyNames,
		Keywords:      o.Keywords,
		Socials:       socials,
		Phone:         o.Phone,
		LogoURL:       o.LogoURL,
		Provider:      "apollo",
	}
}

// apolloSizeRanges maps common size bucket labels to Apollo's "min,max" form.
var apolloSizeRanges = map[string]string{
	"1-10":       "1,10",
	"11-50":      "11,50",
	"51-200":     "51,200",
	"201-500":    "201,500",
	"501-1000":   "501,1000",
	"1001-5000":  "1001,5000",
	"5001-10000": "5001,10000",
	"10001+":     "10001,1000000",
}

// apolloEmployeeRanges rewrites the query's employee filters into Apollo's
// "min,max" range strings.
func apolloEmployeeRanges(query model.SearchQuery) []string {
	var ranges []string
	for _, size := range query.CompanySizes {
		if r, ok := apolloSizeRanges[strings.TrimSpace(size)]; ok {
			ranges = append(ranges, r)
		}
	}
	if len(ranges) > 0 {
		return ranges
	}

	if query.EmployeeMin > 0 || query.EmployeeMax > 0 {
		min := query.EmployeeMin
		if min <= 0 {
			min = 1
		}
		max := query.EmployeeMax
		if max <= 0 {
			return []string{fmt.Sprintf("%d,1000000", min)}
		}
		return []string{strconv.Itoa(min) + "," + strconv.Itoa(max)}
	}
	return nil
}

func lowerAll(terms []string) []string {
	if len(terms) == 0 {
		return nil
	}
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToLower(t)
	}
	return out
}
