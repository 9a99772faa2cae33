package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/prospect-search/internal/config"
	"github.com/sells-group/prospect-search/internal/enrich"
	"github.com/sells-group/prospect-search/internal/provider"
	"github.com/sells-group/prospect-search/internal/search"
	"github.com/sells-group/prospect-search/pkg/anthropic"
)

// buildAggregator wires the provider registry and enrichment passes from
// config. Providers without an API key are simply not registered; the
// aggregator reports ErrNoProviders if the registry ends up empty.
func buildAggregator(cfg *config.Config) *search.Aggregator {
	registry := provider.NewRegistry()

	if cfg.Apollo.Key != "" {
		registry.Register(provider.NewApollo(cfg.Apollo.Key,
			provider.WithBaseURL(cfg.Apollo.BaseURL)))
	}
	if cfg.PDL.Key != "" {
		registry.Register(provider.NewPeopleDataLabs(cfg.PDL.Key,
			provider.WithBaseURL(cfg.PDL.BaseURL)))
	}
	if cfg.UpLead.Key != "" {
		registry.Register(provider.NewUpLead(cfg.UpLead.Key,
			provider.WithBaseURL(cfg.UpLead.BaseURL)))
	}
	zap.L().Info("providers configured", zap.Strings("providers", registry.Names()))

	var opts []search.AggregatorOption

	if cfg.Anthropic.Key != "" {
		client := anthropic.NewClient(cfg.Anthropic.Key)
		opts = append(opts, search.WithEnricher(enrich.NewEnricher(
			client,
			cfg.Anthropic.Model,
			enrich.WithBatchSize(cfg.Anthropic.BatchSize),
		)))
	} else {
		zap.L().Info("anthropic key not set, gap-fill enrichment disabled")
	}

	opts = append(opts, search.WithEnricher(enrich.NewSocialFiller(
		enrich.WithTimeout(time.Duration(cfg.Scrape.TimeoutSecs)*time.Second),
		enrich.WithMaxTargets(cfg.Scrape.MaxTargets),
		enrich.WithRate(cfg.Scrape.RatePerSec),
		enrich.WithConcurrency(cfg.Scrape.Concurrency),
	)))

	return search.NewAggregator(registry, opts...)
}
