package retrieval

import (
	"context"
	"strings"
	"sync"

	"github.com/mmcdole/gofeed"

	"github.com/varbhar/llm-council/internal/models"
)

// fetchRSSArticles searches the configured RSS feeds for posts whose
// title or summary contains the query (case-insensitive).
func (c *Client) fetchRSSArticles(ctx context.Context, query string, maxArticles int) ([]models.ContextSource, error) {
	if len(c.rssFeeds) == 0 || query == "" {
		return nil, nil
	}

	type feedResult struct {
		url  string
		feed *gofeed.Feed
		err  error
	}

	results := make([]feedResult, len(c.rssFeeds))
	var wg sync.WaitGroup
	for i, feedURL := range c.rssFeeds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			feed, err := c.feedParser.ParseURLWithContext(feedURL, ctx)
			results[i] = feedResult{url: feedURL, feed: feed, err: err}
		}()
	}
	wg.Wait()

	queryLower := strings.ToLower(query)
	var matched []models.ContextSource

	for _, res := range results {
		if res.err != nil {
			c.logf("rss fetch failed for %s: %v", res.url, res.err)
			continue
		}

		feedTitle := res.feed.Title
		if feedTitle == "" {
			feedTitle = "RSS Feed"
		}

		for _, entry := range res.feed.Items {
			summary := entry.Description
			if summary == "" {
				summary = entry.Content
			}
			summary = stripHTML(summary)

			haystack := strings.ToLower(entry.Title + " " + summary)
			if !strings.Contains(haystack, queryLower) {
				continue
			}

			published := entry.PublishedParsed
			if published == nil {
				published = entry.UpdatedParsed
			}

			matched = append(matched, buildItem(
				"rss",
				feedTitle,
				entry.Title,
				summary,
				entry.Link,
				formatTime(published),
				summary,
			))
			if len(matched) >= maxArticles {
				return matched, nil
			}
		}
	}

	return matched, nil
}
