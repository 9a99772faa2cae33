package search

import (
	"strings"

	"github.com/sells-group/prospect-search/internal/model"
)

// FilterByIndustry applies the relevance heuristic from the query's industry
// terms. Records with no industry label are kept (they may be labeled during
// enrichment). A labeled record survives when its label matches at least one
// include term, and is dropped when it matches any exclude term. The policy
// favors recall over precision.
func FilterByIndustry(records []model.CompanyRecord, includeTerms, excludeTerms []string) []model.CompanyRecord {
	if len(includeTerms) == 0 && len(excludeTerms) == 0 {
		return records
	}

	kept := make([]model.CompanyRecord, 0, len(records))
	for _, rec := range records {
		label := rec.Industry
		if label != "" && len(excludeTerms) > 0 && matchesAny(label, excludeTerms, false) {
			continue
		}
		if label != "" && len(includeTerms) > 0 && !matchesAny(label, includeTerms, true) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept
}

// matchesAny reports whether the label matches at least one term. Exclusion
// uses plain substring matching; inclusion additionally falls back to word
// overlap so e.g. "softwares" still matches "software development".
func matchesAny(label string, terms []string, wordOverlap bool) bool {
	for _, term := range terms {
		if industryMatches(label, term, wordOverlap) {
			return true
		}
	}
	return false
}

// industryMatches checks a case-insensitive bidirectional substring match
// between an industry label and one requested term, with an optional
// overlap fallback on words of four or more characters.
func industryMatches(label, term string, wordOverlap bool) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	t := strings.ToLower(strings.TrimSpace(term))
	if l == "" || t == "" {
		return false
	}
	if strings.Contains(l, t) || strings.Contains(t, l) {
		return true
	}
	if !wordOverlap {
		return false
	}
	for _, lw := range strings.Fields(l) {
		if len(lw) < 4 {
			continue
		}
		for _, tw := range strings.Fields(t) {
			if len(tw) < 4 {
				continue
			}
			if strings.Contains(lw, tw) || strings.Contains(tw, lw) {
				return true
			}
		}
	}
	return false
}
