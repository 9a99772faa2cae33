package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/model"
)

const pdlDefaultBaseURL = "https://api.peopledatalabs.com"

// PeopleDataLabs adapts the People Data Labs firmographic search API, which
// takes a SQL-like filter clause rather than structured filter arrays.
type PeopleDataLabs struct {
	apiKey string
	cfg    clientConfig
}

// NewPeopleDataLabs creates a People Data Labs adapter.
func NewPeopleDataLabs(apiKey string, opts ...Option) *PeopleDataLabs {
	return &PeopleDataLabs{
		apiKey: apiKey,
		cfg:    newClientConfig(pdlDefaultBaseURL, opts...),
	}
}

// Name returns the provider identifier.
func (p *PeopleDataLabs) Name() string { return "peopledatalabs" }

type pdlRequest struct {
	SQL  string `json:"sql"`
	Size int    `json:"size"`
	From int    `json:"from,omitempty"`
}

type pdlCompany struct {
	DisplayName   string   `json:"display_name"`
	Name          string   `json:"name"`
	Website       string   `json:"website"`
	LinkedinURL   string   `json:"linkedin_url"`
	FacebookURL   string   `json:"facebook_url"`
	TwitterURL    string   `json:"twitter_url"`
	Industry      string   `json:"industry"`
	EmployeeCount int      `json:"employee_count"`
	Size          string   `json:"size"`
	Founded       int      `json:"founded"`
	Summary       string   `json:"summary"`
	Tags          []string `json:"tags"`
	Phone         string   `json:"phone"`
	Location      struct {
		Locality string `json:"locality"`
		Region   string `json:"region"`
		Country  string `json:"country"`
	} `json:"location"`
}

type pdlResponse struct {
	Status int          `json:"status"`
	Data   []pdlCompany `json:"data"`
	Total  int          `json:"total"`
}

// Search builds a SQL WHERE clause from the common query and normalizes the
// returned companies into CompanyRecords.
func (p *PeopleDataLabs) Search(ctx context.Context, query model.SearchQuery) (*Result, error) {
	limit := query.EffectiveLimit()
	reqBody := pdlRequest{
		SQL:  buildPDLSQL(query),
		Size: limit,
		From: (query.EffectivePage() - 1) * limit,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, eris.Wrap(err, "peopledatalabs: marshal request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.baseURL+"/v5/company/search", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "peopledatalabs: create request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Api-Key", p.apiKey)

	resp, err := p.cfg.http.Do(httpReq)
	if err != nil {
		return nil, eris.Wrap(err, "peopledatalabs: send request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "peopledatalabs: read response")
	}

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("peopledatalabs: non-200 response",
			zap.Int("status", resp.StatusCode),
		)
		return nil, nil
	}

	var parsed pdlResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		zap.L().Debug("peopledatalabs: malformed response", zap.Error(err))
		return nil, nil
	}
	if len(parsed.Data) == 0 {
		return nil, nil
	}

	records := make([]model.CompanyRecord, 0, len(parsed.Data))
	for _, c := range parsed.Data {
		records = append(records, c.toRecord())
	}

	result := &Result{Records: records}
	if parsed.Total > 0 {
		result.Page = &model.PageInfo{
			TotalEntries: parsed.Total,
			TotalPages:   (parsed.Total + limit - 1) / limit,
		}
	}
	return result, nil
}

func (c pdlCompany) toRecord() model.CompanyRecord {
	name := c.DisplayName
	if name == "" {
		name = c.Name
	}

	socials := map[string]string{}
	if c.LinkedinURL != "" {
		socials["linkedin"] = c.LinkedinURL
	}
	if c.FacebookURL != "" {
		socials["facebook"] = c.FacebookURL
	}
	if c.TwitterURL != "" {
		socials["twitter"] = c.TwitterURL
	}
	if len(socials) == 0 {
		socials = nil
	}

	return model.CompanyRecord{
		Name:          name,
		Domain:        c.Website,
		Website:       c.Website,
		LinkedInURL:   c.LinkedinURL,
		Industry:      c.Industry,
		EmployeeCount: c.EmployeeCount,
		CompanySize:   c.Size,
		FoundedYear:   c.Founded,
		Description:   c.Summary,
		City:          c.Location.Locality,
		State:         c.Location.Region,
		Country:       c.Location.Country,
		Keywords:      c.Tags,
		Socials:       socials,
		Phone:         c.Phone,
		Provider:      "peopledatalabs",
	}
}

// buildPDLSQL rewrites the common query as PDL's SQL-like filter clause.
func buildPDLSQL(query model.SearchQuery) string {
	var conds []string

	if terms := query.IndustryTerms(); len(terms) > 0 {
		conds = append(conds, orLikeClause("industry", terms))
	}
	if terms := query.ExcludedIndustryTerms(); len(terms) > 0 {
		conds = append(conds, "NOT "+orLikeClause("industry", terms))
	}
	if terms := query.KeywordTerms(); len(terms) > 0 {
		conds = append(conds, orLikeClause("summary", terms))
	}
	if terms := model.SplitTerms(query.ExcludeKeywords); len(terms) > 0 {
		conds = append(conds, "NOT "+orLikeClause("summary", terms))
	}
	if terms := query.LocationTerms(); len(terms) > 0 {
		conds = append(conds, orLikeClause("location.name", terms))
	}
	if terms := query.ExcludedLocationTerms(); len(terms) > 0 {
		conds = append(conds, "NOT "+orLikeClause("location.name", terms))
	}
	if len(query.CompanySizes) > 0 {
		quoted := make([]string, 0, len(query.CompanySizes))
		for _, s := range query.CompanySizes {
			quoted = append(quoted, "'"+escapeSQL(strings.TrimSpace(s))+"'")
		}
		conds = append(conds, "size IN ("+strings.Join(quoted, ", ")+")")
	}
	if query.EmployeeMin > 0 {
		conds = append(conds, fmt.Sprintf("employee_count >= %d", query.EmployeeMin))
	}
	if query.EmployeeMax > 0 {
		conds = append(conds, fmt.Sprintf("employee_count <= %d", query.EmployeeMax))
	}
	if len(query.SICCodes) > 0 {
		quoted := make([]string, 0, len(query.SICCodes))
		for _, c := range query.SICCodes {
			quoted = append(quoted, "'"+escapeSQL(strings.TrimSpace(c))+"'")
		}
		conds = append(conds, "sic_code IN ("+strings.Join(quoted, ", ")+")")
	}
	if len(query.CompanyTypes) > 0 {
		quoted := make([]string, 0, len(query.CompanyTypes))
		for _, t := range query.CompanyTypes {
			quoted = append(quoted, "'"+escapeSQL(strings.ToLower(strings.TrimSpace(t)))+"'")
		}
		conds = append(conds, "type IN ("+strings.Join(quoted, ", ")+")")
	}
	if query.RevenueRange != "" {
		conds = append(conds, "inferred_revenue = '"+escapeSQL(strings.TrimSpace(query.RevenueRange))+"'")
	}
	if len(query.Signals) > 0 {
		conds = append(conds, orLikeClause("tags", query.Signals))
	}
	if query.FundingStage != "" {
		stage := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(query.FundingStage)), " ", "_")
		conds = append(conds, "latest_funding_stage = '"+escapeSQL(stage)+"'")
	}

	sql := "SELECT * FROM company"
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	return sql
}

// orLikeClause builds "(field LIKE '%a%' OR field LIKE '%b%')".
func orLikeClause(field string, terms []string) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		parts = append(parts, field+" LIKE '%"+escapeSQL(strings.ToLower(t))+"%'")
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
