package retrieval

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/varbhar/llm-council/internal/models"
)

// ProceedingsFeed pairs a conference venue with its proceedings feed URL.
type ProceedingsFeed struct {
	Provider string
	URL      string
}

// defaultProceedingsFeeds lists the major ML venue proceedings polled on
// every fetch. Unlike the RSS provider these are not filtered by the
// query: freshly published papers are useful context regardless of
// wording.
var defaultProceedingsFeeds = []ProceedingsFeed{
	{Provider: "neurips", URL: "https://papers.nips.cc/paper_files/paper/2024/rss"},
	{Provider: "iclr", URL: "https://iclr.cc/virtual/2025/overview/rss"},
	{Provider: "icml", URL: "https://proceedings.mlr.press/rss.xml"},
}

// fetchConferenceProceedings pulls recent papers from the configured
// conference feeds. Entries older than the recency cutoff are dropped;
// the rest are ordered newest-first and truncated to maxItems.
func (c *Client) fetchConferenceProceedings(ctx context.Context, maxItems int) ([]models.ContextSource, error) {
	if len(c.proceedingsFeeds) == 0 {
		return nil, nil
	}

	type feedResult struct {
		provider string
		url      string
		feed     *gofeed.Feed
		err      error
	}

	results := make([]feedResult, len(c.proceedingsFeeds))
	var wg sync.WaitGroup
	for i, pf := range c.proceedingsFeeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed, err := c.feedParser.ParseURLWithContext(pf.URL, ctx)
			results[i] = feedResult{provider: pf.Provider, url: pf.URL, feed: feed, err: err}
		}()
	}
	wg.Wait()

	cutoff := time.Now().UTC().AddDate(0, 0, -c.maxAgeDays)
	var papers []models.ContextSource

	for _, res := range results {
		if res.err != nil {
			c.logf("proceedings fetch failed for %s: %v", res.url, res.err)
			continue
		}

		feedTitle := res.feed.Title
		if feedTitle == "" {
			feedTitle = strings.ToUpper(res.provider)
		}

		for _, entry := range res.feed.Items {
			published := entry.PublishedParsed
			if published == nil {
				published = entry.UpdatedParsed
			}
			if published != nil && published.Before(cutoff) {
				continue
			}

			summary := entry.Description
			if summary == "" {
				summary = entry.Content
			}
			summary = stripHTML(summary)

			papers = append(papers, buildItem(
				res.provider,
				feedTitle,
				entry.Title,
				summary,
				entry.Link,
				formatTime(published),
				summary,
			))
		}
	}

	sort.SliceStable(papers, func(i, j int) bool {
		return parseTimestamp(papers[i].PublishedAt).After(parseTimestamp(papers[j].PublishedAt))
	})
	if len(papers) > maxItems {
		papers = papers[:maxItems]
	}
	return papers, nil
}
