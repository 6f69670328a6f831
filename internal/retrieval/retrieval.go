// Package retrieval aggregates up-to-date context snippets from external
// sources (news, arXiv, GitHub releases, RSS feeds, scholarly APIs,
// conference proceedings) to
// ground the council's stage-1 answers.
package retrieval

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/varbhar/llm-council/internal/models"
)

// Default endpoints; overridable for tests.
const (
	DefaultNewsAPIBaseURL     = "https://newsapi.org/v2"
	DefaultArxivAPIURL        = "https://export.arxiv.org/api/query"
	DefaultGitHubAPIURL       = "https://api.github.com"
	DefaultSemanticScholarURL = "https://api.semanticscholar.org/graph/v1/paper/search"
	DefaultCrossrefURL        = "https://api.crossref.org/works"
)

const defaultUserAgent = "llm-council/1.0 (+https://github.com/varbhar/llm-council)"

// Client fetches context items from the configured providers.
type Client struct {
	httpClient *http.Client
	feedParser *gofeed.Parser

	newsAPIKey       string
	githubToken      string
	rssFeeds         []string
	proceedingsFeeds []ProceedingsFeed

	newsBaseURL   string
	arxivURL      string
	githubBaseURL string
	semanticURL   string
	crossrefURL   string
	maxAgeDays    int
	logf          func(format string, args ...any)
}

// Option configures a retrieval Client.
type Option func(*Client)

// WithNewsAPIKey enables the NewsAPI provider.
func WithNewsAPIKey(key string) Option {
	return func(c *Client) { c.newsAPIKey = key }
}

// WithGitHubToken sets an optional GitHub token for higher rate limits.
func WithGitHubToken(token string) Option {
	return func(c *Client) { c.githubToken = token }
}

// WithRSSFeeds sets the RSS feeds searched for matching posts.
func WithRSSFeeds(feeds []string) Option {
	return func(c *Client) { c.rssFeeds = feeds }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.feedParser.Client = hc
	}
}

// WithLogger sets a verbose logging function. The default discards.
// Fetch runs providers in parallel, so logf may be called from several
// goroutines at once and must be safe for concurrent use.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *Client) { c.logf = logf }
}

// WithProceedingsFeeds replaces the conference proceedings feeds.
func WithProceedingsFeeds(feeds []ProceedingsFeed) Option {
	return func(c *Client) { c.proceedingsFeeds = feeds }
}

// WithNewsBaseURL overrides the NewsAPI endpoint (tests).
func WithNewsBaseURL(u string) Option {
	return func(c *Client) { c.newsBaseURL = u }
}

// WithArxivURL overrides the arXiv endpoint (tests).
func WithArxivURL(u string) Option {
	return func(c *Client) { c.arxivURL = u }
}

// WithGitHubBaseURL overrides the GitHub endpoint (tests).
func WithGitHubBaseURL(u string) Option {
	return func(c *Client) { c.githubBaseURL = u }
}

// WithSemanticScholarURL overrides the Semantic Scholar endpoint (tests).
func WithSemanticScholarURL(u string) Option {
	return func(c *Client) { c.semanticURL = u }
}

// WithCrossrefURL overrides the Crossref endpoint (tests).
func WithCrossrefURL(u string) Option {
	return func(c *Client) { c.crossrefURL = u }
}

// NewClient creates a retrieval client.
func NewClient(opts ...Option) *Client {
	hc := &http.Client{Timeout: 10 * time.Second}
	fp := gofeed.NewParser()
	fp.Client = hc
	fp.UserAgent = defaultUserAgent

	c := &Client{
		httpClient:       hc,
		feedParser:       fp,
		proceedingsFeeds: defaultProceedingsFeeds,
		newsBaseURL:      DefaultNewsAPIBaseURL,
		arxivURL:         DefaultArxivAPIURL,
		githubBaseURL:    DefaultGitHubAPIURL,
		semanticURL:      DefaultSemanticScholarURL,
		crossrefURL:      DefaultCrossrefURL,
		maxAgeDays:       365,
		logf:             func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type provider struct {
	name  string
	fetch func(ctx context.Context, query string) ([]models.ContextSource, error)
}

func (c *Client) providers() []provider {
	return []provider{
		{"newsapi", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchNewsArticles(ctx, q, 4)
		}},
		{"arxiv", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchArxivPapers(ctx, q, 3)
		}},
		{"github", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchGitHubReleases(ctx, q, 2)
		}},
		{"rss", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchRSSArticles(ctx, q, 3)
		}},
		{"semantic_scholar", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchSemanticScholarPapers(ctx, q, 3)
		}},
		{"crossref", func(ctx context.Context, q string) ([]models.ContextSource, error) {
			return c.fetchCrossrefWorks(ctx, q, 3)
		}},
		{"proceedings", func(ctx context.Context, _ string) ([]models.ContextSource, error) {
			return c.fetchConferenceProceedings(ctx, 3)
		}},
	}
}

// Fetch aggregates context snippets for the query from every provider.
// Individual provider failures are logged and skipped; the remaining
// results are deduplicated by URL (newest wins), sorted newest-first and
// truncated to limit.
func (c *Client) Fetch(ctx context.Context, query string, limit int) ([]models.ContextSource, error) {
	if limit <= 0 {
		limit = 8
	}

	var (
		mu      sync.Mutex
		results []models.ContextSource
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range c.providers() {
		g.Go(func() error {
			items, err := p.fetch(ctx, query)
			if err != nil {
				c.logf("context fetch failed for %s: %v", p.name, err)
				return nil // tolerate individual provider failures
			}
			mu.Lock()
			results = append(results, items...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dedupeAndSort(results, limit), nil
}

// dedupeAndSort removes duplicate items by URL (falling back to
// title::source), keeping the most recently published copy, then orders
// newest-first.
func dedupeAndSort(items []models.ContextSource, limit int) []models.ContextSource {
	deduped := make(map[string]models.ContextSource, len(items))
	order := make([]string, 0, len(items))

	for _, item := range items {
		key := item.URL
		if key == "" {
			key = item.Title + "::" + item.Source
		}
		existing, ok := deduped[key]
		if !ok {
			deduped[key] = item
			order = append(order, key)
			continue
		}
		if parseTimestamp(item.PublishedAt).After(parseTimestamp(existing.PublishedAt)) {
			deduped[key] = item
		}
	}

	sorted := make([]models.ContextSource, 0, len(deduped))
	for _, key := range order {
		sorted = append(sorted, deduped[key])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseTimestamp(sorted[i].PublishedAt).After(parseTimestamp(sorted[j].PublishedAt))
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
