// Package model holds the provider-neutral query and record types shared by
// the adapters, the aggregation flow, and the API surface.
package model

import "strings"

// Paging bounds applied when the caller omits or overshoots them.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// SearchQuery is the common, provider-neutral search input. String filters
// hold comma-separated terms; each adapter translates them into its own
// native filter shape.
type SearchQuery struct {
	Industry          string   `json:"industry,omitempty"`
	ExcludeIndustries string   `json:"excludeIndustries,omitempty"`
	Keywords          string   `json:"keywords,omitempty"`
	ExcludeKeywords   string   `json:"excludeKeywords,omitempty"`
	Location          string   `json:"location,omitempty"`
	ExcludeLocations  string   `json:"excludeLocations,omitempty"`
	EmployeeMin       int      `json:"employeeMin,omitempty"`
	EmployeeMax       int      `json:"employeeMax,omitempty"`
	CompanySizes      []string `json:"companySizes,omitempty"`
	CompanyTypes      []string `json:"companyTypes,omitempty"`
	Technologies      []string `json:"technologies,omitempty"`
	SICCodes          []string `json:"sicCodes,omitempty"`
	RevenueRange      string   `json:"revenueRange,omitempty"`
	FundingStage      string   `json:"fundingStage,omitempty"`
	Signals           []string `json:"signals,omitempty"`
	Page              int      `json:"page,omitempty"`
	Limit             int      `json:"limit,omitempty"`
}

// SplitTerms splits a comma-separated filter string into trimmed, non-empty
// terms. Returns nil for a blank input.
func SplitTerms(s string) []string {
	var terms []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// IndustryTerms returns the industry filter as individual terms.
func (q SearchQuery) IndustryTerms() []string {
	return SplitTerms(q.Industry)
}

// ExcludedIndustryTerms returns the industry exclusions as individual terms.
func (q SearchQuery) ExcludedIndustryTerms() []string {
	return SplitTerms(q.ExcludeIndustries)
}

// KeywordTerms returns the keyword filter as individual terms.
func (q SearchQuery) KeywordTerms() []string {
	return SplitTerms(q.Keywords)
}

// LocationTerms returns the location filter as individual terms.
func (q SearchQuery) LocationTerms() []string {
	return SplitTerms(q.Location)
}

// ExcludedLocationTerms returns the location exclusions as individual terms.
func (q SearchQuery) ExcludedLocationTerms() []string {
	return SplitTerms(q.ExcludeLocations)
}

// EffectiveLimit clamps the requested page size into [1, MaxLimit], falling
// back to DefaultLimit when unset.
func (q SearchQuery) EffectiveLimit() int {
	if q.Limit <= 0 {
		return DefaultLimit
	}
	if q.Limit > MaxLimit {
		return MaxLimit
	}
	return q.Limit
}

// EffectivePage returns the requested page, minimum 1.
func (q SearchQuery) EffectivePage() int {
	if q.Page <= 0 {
		return 1
	}
	return q.Page
}
