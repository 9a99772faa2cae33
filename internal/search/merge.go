package search

import (
	"strings"

	"github.com/sells-group/prospect-search/internal/model"
)

// Contribution is one provider's share of a search: its name, the records it
// returned, and any pagination totals it reported.
type Contribution struct {
	Provider string
	Records  []model.CompanyRecord
	Page     *model.PageInfo
}

// NormalizeDomain lowercases a domain or URL and strips the scheme, any
// leading "www.", and any path, query, or fragment. Prefixes are stripped
// until none remain so the result is idempotent even for inputs like
// "www.www.example.com".
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	for {
		stripped := strings.TrimPrefix(d, "https://")
		stripped = strings.TrimPrefix(stripped, "http://")
		stripped = strings.TrimPrefix(stripped, "www.")
		if stripped == d {
			break
		}
		d = stripped
	}
	for _, sep := range []string{"/", "?", "#"} {
		if i := strings.Index(d, sep); i >= 0 {
			d = d[:i]
		}
	}
	return d
}

// mergeKey computes a record's dedup identity: the normalized domain, or the
// lowercased name when no domain parses. Returns "" for unkeyable records.
func mergeKey(rec model.CompanyRecord) string {
	if d := NormalizeDomain(rec.Domain); d != "" {
		return d
	}
	if d := NormalizeDomain(rec.Website); d != "" {
		return d
	}
	return strings.ToLower(strings.TrimSpace(rec.Name))
}

// Merge deduplicates records across contributions keyed by normalized domain
// (name fallback). The merge is left-biased: the first provider to introduce
// a company is primary, and later providers only fill its empty fields.
// Unkeyable records are dropped. Insertion order is preserved.
func Merge(contribs []Contribution) []model.CompanyRecord {
	byKey := make(map[string]int)
	var merged []model.CompanyRecord

	for _, contrib := range contribs {
		for _, rec := range contrib.Records {
			key := mergeKey(rec)
			if key == "" {
				continue
			}
			if i, ok := byKey[key]; ok {
				fillRecord(&merged[i], rec)
				continue
			}
			byKey[key] = len(merged)
			merged = append(merged, rec)
		}
	}
	return merged
}

// fillRecord copies values from src into dst's empty fields only. Populated
// fields on dst always win. List fields are replaced wholesale when dst's
// list is empty, never concatenated.
func fillRecord(dst *model.CompanyRecord, src model.CompanyRecord) {
	if dst.Name == "" {
		dst.Name = src.Name
	}
	if dst.Domain == "" {
		dst.Domain = src.Domain
	}
	if dst.Website == "" {
		dst.Website = src.Website
	}
	if dst.LinkedInURL == "" {
		dst.LinkedInURL = src.LinkedInURL
	}
	if dst.Industry == "" {
		dst.Industry = src.Industry
	}
	if dst.EmployeeCount == 0 {
		dst.EmployeeCount = src.EmployeeCount
	}
	if dst.CompanySize == "" {
		dst.CompanySize = src.CompanySize
	}
	if dst.AnnualRevenue == 0 {
		dst.AnnualRevenue = src.AnnualRevenue
	}
	if dst.FoundedYear == 0 {
		dst.FoundedYear = src.FoundedYear
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.City == "" {
		dst.City = src.City
	}
	if dst.State == "" {
		dst.State = src.State
	}
	if dst.Country == "" {
		dst.Country = src.Country
	}
	if len(dst.Technologies) == 0 {
		dst.Technologies = src.Technologies
	}
	if len(dst.Keywords) == 0 {
		dst.Keywords = src.Keywords
	}
	if len(dst.Socials) == 0 {
		dst.Socials = src.Socials
	}
	if dst.Phone == "" {
		dst.Phone = src.Phone
	}
	if dst.LogoURL == "" {
		dst.LogoURL = src.LogoURL
	}
	// Provider stays the first contributor's name.
}
