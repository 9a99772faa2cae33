package enrich

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/prospect-search/internal/model"
)

const (
	defaultScrapeTimeout = 5 * time.Second
	defaultMaxTargets    = 15
	defaultConcurrency   = 5
	maxBodyBytes         = 512 * 1024
)

// socialPatterns matches profile URLs for the platforms we care about.
var socialPatterns = map[string]*regexp.Regexp{
	"linkedin":  regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/company/[A-Za-z0-9_.-]+`),
	"facebook":  regexp.MustCompile(`https?://(?:www\.)?facebook\.com/[A-Za-z0-9_.-]+`),
	"twitter":   regexp.MustCompile(`https?://(?:www\.)?(?:twitter|x)\.com/[A-Za-z0-9_]+`),
	"instagram": regexp.MustCompile(`https?://(?:www\.)?instagram\.com/[A-Za-z0-9_.]+`),
	"youtube":   regexp.MustCompile(`https?://(?:www\.)?youtube\.com/(?:channel|user|c|@)[A-Za-z0-9_/@.-]*`),
}

// SocialFiller scrapes company homepages for social-profile links. Targets
// arbitrary third-party sites, so every fetch runs under a hard timeout and
// a rate limiter, and every failure is swallowed per company.
type SocialFiller struct {
	client      *http.Client
	limiter     *rate.Limiter
	maxTargets  int
	concurrency int
	scheme      string
}

// SocialOption configures a SocialFiller.
type SocialOption func(*SocialFiller)

// WithTimeout overrides the default 5s per-request timeout.
func WithTimeout(d time.Duration) SocialOption {
	return func(s *SocialFiller) {
		s.client.Timeout = d
	}
}

// WithMaxTargets caps how many records are scraped per search.
func WithMaxTargets(n int) SocialOption {
	return func(s *SocialFiller) {
		if n > 0 {
			s.maxTargets = n
		}
	}
}

// WithRate overrides the default request rate.
func WithRate(perSec float64) SocialOption {
	return func(s *SocialFiller) {
		if perSec > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(perSec), int(perSec))
		}
	}
}

// WithConcurrency overrides the default fetch parallelism.
func WithConcurrency(n int) SocialOption {
	return func(s *SocialFiller) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// withScheme switches homepage URLs to plain http; used by tests.
func withScheme(scheme string) SocialOption {
	return func(s *SocialFiller) {
		s.scheme = scheme
	}
}

// NewSocialFiller creates a social-link scraper with bounded defaults.
func NewSocialFiller(opts ...SocialOption) *SocialFiller {
	s := &SocialFiller{
		client: &http.Client{
			Timeout: defaultScrapeTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: defaultScrapeTimeout,
				}).DialContext,
				TLSHandshakeTimeout: defaultScrapeTimeout,
			},
		},
		limiter:     rate.NewLimiter(5, 5),
		maxTargets:  defaultMaxTargets,
		concurrency: defaultConcurrency,
		scheme:      "https",
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fill scrapes the homepages of the first maxTargets records that have a
// domain, filling each record's social map in place. Failures leave the
// record untouched.
func (s *SocialFiller) Fill(ctx context.Context, records []model.CompanyRecord) {
	var targets []int
	for i := range records {
		if records[i].Domain == "" {
			continue
		}
		targets = append(targets, i)
		if len(targets) == s.maxTargets {
			break
		}
	}
	if len(targets) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, idx := range targets {
		g.Go(func() error {
			if err := s.limiter.Wait(gctx); err != nil {
				return nil
			}
			socials := s.scrapeHomepage(gctx, records[idx].Domain)
			if len(socials) == 0 {
				return nil
			}
			if records[idx].Socials == nil {
				records[idx].Socials = make(map[string]string, len(socials))
			}
			for platform, url := range socials {
				if records[idx].Socials[platform] == "" {
					records[idx].Socials[platform] = url
				}
			}
			if records[idx].LinkedInURL == "" {
				records[idx].LinkedInURL = records[idx].Socials["linkedin"]
			}
			return nil
		})
	}
	_ = g.Wait()
}

// scrapeURL builds the homepage URL for a record's domain field, which some
// providers populate with a full website URL rather than a bare host.
func (s *SocialFiller) scrapeURL(domain string) string {
	d := strings.TrimSpace(domain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	return s.scheme + "://" + d
}

// scrapeHomepage fetches one homepage and extracts the first match per
// platform. Any failure returns nil.
func (s *SocialFiller) scrapeHomepage(ctx context.Context, domain string) map[string]string {
	url := s.scrapeURL(domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ProspectBot/1.0)")

	resp, err := s.client.Do(req)
	if err != nil {
		zap.L().Debug("social: homepage fetch failed",
			zap.String("domain", domain),
			zap.Error(err),
		)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("social: homepage non-200",
			zap.String("domain", domain),
			zap.Int("status", resp.StatusCode),
		)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil
	}

	var socials map[string]string
	for platform, re := range socialPatterns {
		if m := re.Find(body); m != nil {
			if socials == nil {
				socials = make(map[string]string)
			}
			socials[platform] = string(m)
		}
	}
	return socials
}
