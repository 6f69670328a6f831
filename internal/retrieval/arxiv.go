package retrieval

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/varbhar/llm-council/internal/models"
)

// fetchArxivPapers fetches the most recently submitted arXiv papers
// matching the query. The arXiv API answers with an Atom feed.
func (c *Client) fetchArxivPapers(ctx context.Context, query string, maxResults int) ([]models.ContextSource, error) {
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("search_query", "all:"+query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	feed, err := c.feedParser.ParseURLWithContext(c.arxivURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("arxiv feed parse failed: %w", err)
	}

	var results []models.ContextSource
	for _, entry := range feed.Items {
		summary := strings.TrimSpace(entry.Description)
		published := entry.UpdatedParsed
		if published == nil {
			published = entry.PublishedParsed
		}
		results = append(results, buildItem(
			"arxiv",
			"arXiv",
			strings.TrimSpace(entry.Title),
			summary,
			entry.Link,
			formatTime(published),
			summary,
		))
		if len(results) >= maxResults {
			break
		}
	}

	return results, nil
}
