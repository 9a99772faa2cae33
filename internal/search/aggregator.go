// Package search implements the company search aggregation flow: concurrent
// provider fan-out, merge by normalized domain, industry relevance filtering,
// best-effort gap-fill, and response assembly.
package search

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-search/internal/model"
	"github.com/sells-group/prospect-search/internal/provider"
)

// ErrNoProviders is returned when no provider credentials are configured at
// all. It is the one fatal precondition of a search; everything else
// degrades gracefully.
var ErrNoProviders = eris.New("search: no providers configured")

// Enricher fills missing fields on records in place, best-effort. A failed
// enrichment pass never fails the search.
type Enricher interface {
	Fill(ctx context.Context, records []model.CompanyRecord)
}

// Aggregator coordinates one stateless search across all registered
// providers.
type Aggregator struct {
	registry  *provider.Registry
	enrichers []Enricher
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithEnricher appends a best-effort enrichment pass, run in order after
// merge and filtering.
func WithEnricher(e Enricher) AggregatorOption {
	return func(a *Aggregator) {
		a.enrichers = append(a.enrichers, e)
	}
}

// NewAggregator creates an aggregator over the given provider registry.
func NewAggregator(registry *provider.Registry, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{registry: registry}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Search fans the query out to every registered provider, waits for all of
// them to settle, then merges, filters, enriches, and assembles the result.
func (a *Aggregator) Search(ctx context.Context, query model.SearchQuery) (*model.SearchResponse, error) {
	providers := a.registry.Providers()
	if len(providers) == 0 {
		return nil, ErrNoProviders
	}

	contribs := a.fanOut(ctx, providers, query)
	if len(contribs) == 0 {
		zap.L().Info("search: no provider returned data")
		return a.assemble(query, nil, nil), nil
	}

	records := Merge(contribs)
	records = FilterByIndustry(records, query.IndustryTerms(), query.ExcludedIndustryTerms())
	if limit := query.EffectiveLimit(); len(records) > limit {
		records = records[:limit]
	}

	for _, e := range a.enrichers {
		e.Fill(ctx, records)
	}

	return a.assemble(query, records, contribs), nil
}

// fanOut calls every provider concurrently and waits for all of them,
// success or failure. A failed or empty provider contributes nothing.
func (a *Aggregator) fanOut(ctx context.Context, providers []provider.Provider, query model.SearchQuery) []Contribution {
	results := make([]*provider.Result, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			res, err := p.Search(gctx, query)
			if err != nil {
				zap.L().Warn("search: provider failed",
					zap.String("provider", p.Name()),
					zap.Error(err),
				)
				return nil // never abort the other providers
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait() // workers always return nil

	var contribs []Contribution
	for i, res := range results {
		if res == nil || len(res.Records) == 0 {
			zap.L().Debug("search: provider contributed nothing",
				zap.String("provider", providers[i].Name()),
			)
			continue
		}
		contribs = append(contribs, Contribution{
			Provider: providers[i].Name(),
			Records:  res.Records,
			Page:     res.Page,
		})
	}
	return contribs
}

// assemble packages the final record list with pagination metadata and the
// set of contributing providers.
func (a *Aggregator) assemble(query model.SearchQuery, records []model.CompanyRecord, contribs []Contribution) *model.SearchResponse {
	if records == nil {
		records = []model.CompanyRecord{}
	}

	providerName := "none"
	total := len(records)
	if len(contribs) > 0 {
		names := make([]string, 0, len(contribs))
		for _, c := range contribs {
			names = append(names, c.Provider)
		}
		providerName = strings.Join(names, "+")

		// The first provider reporting non-zero totals wins.
		for _, c := range contribs {
			if c.Page != nil && c.Page.TotalEntries > 0 {
				total = c.Page.TotalEntries
				break
			}
		}
	}

	return &model.SearchResponse{
		Success:   true,
		Companies: records,
		Total:     total,
		Provider:  providerName,
		Pagination: model.Pagination{
			Page:  query.EffectivePage(),
			Limit: query.EffectiveLimit(),
			Total: total,
		},
	}
}
