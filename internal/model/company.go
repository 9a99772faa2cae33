package model

// CompanyRecord is the canonical merged unit returned by the aggregator.
// Provider adapters normalize their native response shapes into this record;
// the merge engine and everything downstream only ever sees this type.
type CompanyRecord struct {
	Name          string            `json:"name"`
	Domain        string            `json:"domain,omitempty"`
	Website       string            `json:"website,omitempty"`
	LinkedInURL   string            `json:"linkedinUrl,omitempty"`
	Industry      string            `json:"industry,omitempty"`
	EmployeeCount int               `json:"employeeCount,omitempty"`
	CompanySize   string            `json:"companySize,omitempty"`
	AnnualRevenue float64           `json:"annualRevenue,omitempty"`
	FoundedYear   int               `json:"foundedYear,omitempty"`
	Description   string            `json:"description,omitempty"`
	City          string            `json:"city,omitempty"`
	State         string            `json:"state,omitempty"`
	Country       string            `json:"country,omitempty"`
	Technologies  []string          `json:"technologies,omitempty"`
	Keywords      []string          `json:"keywords,omitempty"`
	Socials       map[string]string `json:"socials,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	LogoURL       string            `json:"logoUrl,omitempty"`
	Provider      string            `json:"provider,omitempty"`
}

// PageInfo carries provider-reported pagination totals.
type PageInfo struct {
	TotalEntries int `json:"total_entries"`
	TotalPages   int `json:"total_pages"`
}

// Pagination echoes the effective paging parameters back to the caller.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// SearchResponse is the assembled output of one aggregation call.
type SearchResponse struct {
	Success    bool            `json:"success"`
	Companies  []CompanyRecord `json:"companies"`
	Total      int             `json:"total"`
	Provider   string          `json:"provider"`
	Pagination Pagination      `json:"pagination"`
	Error      string          `json:"error,omitempty"`
}
