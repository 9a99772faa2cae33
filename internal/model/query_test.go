package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace_only", "   ", nil},
		{"single", "fintech", []string{"fintech"}},
		{"multiple", "software, fintech,healthcare", []string{"software", "fintech", "healthcare"}},
		{"trailing_comma", "retail,", []string{"retail"}},
		{"empty_segments", "a,,  ,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTerms(tt.input))
		})
	}
}

func TestEffectiveLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, SearchQuery{}.EffectiveLimit())
	assert.Equal(t, DefaultLimit, SearchQuery{Limit: -3}.EffectiveLimit())
	assert.Equal(t, 5, SearchQuery{Limit: 5}.EffectiveLimit())
	assert.Equal(t, MaxLimit, SearchQuery{Limit: 10_000}.EffectiveLimit())
}

func TestEffectivePage(t *testing.T) {
	assert.Equal(t, 1, SearchQuery{}.EffectivePage())
	assert.Equal(t, 1, SearchQuery{Page: -1}.EffectivePage())
	assert.Equal(t, 7, SearchQuery{Page: 7}.EffectivePage())
}

func TestQueryTermAccessors(t *testing.T) {
	q := SearchQuery{
		Industry:          "software, fintech",
		ExcludeIndustries: "retail",
		Keywords:          "b2b, saas",
		Location:          "Austin, TX",
		ExcludeLocations:  "India",
	}

	assert.Equal(t, []string{"software", "fintech"}, q.IndustryTerms())
	assert.Equal(t, []string{"retail"}, q.ExcludedIndustryTerms())
	assert.Equal(t, []string{"b2b", "saas"}, q.KeywordTerms())
	assert.Equal(t, []string{"Austin", "TX"}, q.LocationTerms())
	assert.Equal(t, []string{"India"}, q.ExcludedLocationTerms())
}
