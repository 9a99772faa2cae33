package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/prospect-search/internal/model"
)

func recs(industries ...string) []model.CompanyRecord {
	out := make([]model.CompanyRecord, len(industries))
	for i, ind := range industries {
		out[i] = model.CompanyRecord{Name: "c", Industry: ind}
	}
	return out
}

func industries(records []model.CompanyRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Industry
	}
	return out
}

func TestFilterByIndustry(t *testing.T) {
	tests := []struct {
		name    string
		records []model.CompanyRecord
		include []string
		exclude []string
		want    []string
	}{
		{
			name:    "no_terms_keeps_everything",
			records: recs("Software", "Retail"),
			want:    []string{"Software", "Retail"},
		},
		{
			name:    "substring_match_retained",
			records: recs("Software Development"),
			include: []string{"software"},
			want:    []string{"Software Development"},
		},
		{
			name:    "reverse_substring_match_retained",
			records: recs("software"),
			include: []string{"Software Development"},
			want:    []string{"software"},
		},
		{
			name:    "word_overlap_fallback",
			records: recs("Enterprise Softwares"),
			include: []string{"software vendors"},
			want:    []string{"Enterprise Softwares"},
		},
		{
			name:    "short_words_do_not_overlap",
			records: recs("AI Lab"),
			include: []string{"IT Ops"},
			want:    []string{},
		},
		{
			name:    "non_matching_dropped",
			records: recs("Retail", "Fintech"),
			include: []string{"fintech"},
			want:    []string{"Fintech"},
		},
		{
			name:    "unlabeled_record_kept",
			records: recs("", "Retail"),
			include: []string{"fintech"},
			want:    []string{""},
		},
		{
			name:    "excluded_industry_dropped",
			records: recs("retail clothing", "Fintech"),
			exclude: []string{"Retail"},
			want:    []string{"Fintech"},
		},
		{
			name:    "unlabeled_survives_exclusion",
			records: recs("", "retail"),
			exclude: []string{"retail"},
			want:    []string{""},
		},
		{
			name:    "exclusion_beats_inclusion",
			records: recs("retail software"),
			include: []string{"software"},
			exclude: []string{"retail"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterByIndustry(tt.records, tt.include, tt.exclude)
			assert.Equal(t, tt.want, industries(got))
		})
	}
}

func TestIndustryMatches(t *testing.T) {
	assert.True(t, industryMatches("Software Development", "software", true))
	assert.True(t, industryMatches("fin", "Fintech", true))
	assert.True(t, industryMatches("softwares", "software", true))
	assert.False(t, industryMatches("Retail", "software", true))
	assert.False(t, industryMatches("", "software", true))
	assert.False(t, industryMatches("Retail", "", true))
}
