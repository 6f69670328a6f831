package retrieval

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	apierrors "github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/models"
)

// fetchNewsArticles retrieves recent news articles via NewsAPI. Without
// an API key the provider is silently disabled.
func (c *Client) fetchNewsArticles(ctx context.Context, query string, maxResults int) ([]models.ContextSource, error) {
	if c.newsAPIKey == "" || query == "" {
		return nil, nil
	}

	endpoint := c.newsBaseURL + "/everything"
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", fmt.Sprintf("%d", maxResults))

	body, err := c.getJSON(ctx, endpoint+"?"+params.Encode(), map[string]string{
		"X-Api-Key": c.newsAPIKey,
	})
	if err != nil {
		return nil, err
	}

	var results []models.ContextSource
	gjson.GetBytes(body, "articles").ForEach(func(_, article gjson.Result) bool {
		results = append(results, buildItem(
			"newsapi",
			article.Get("source.name").String(),
			article.Get("title").String(),
			article.Get("description").String(),
			article.Get("url").String(),
			formatTimestamp(article.Get("publishedAt").String()),
			article.Get("content").String(),
		))
		return len(results) < maxResults
	})

	return results, nil
}

// getJSON issues a GET and returns the response body, converting HTTP
// failures into structured API errors.
func (c *Client) getJSON(ctx context.Context, endpoint string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apierrors.NewAPIError(resp.StatusCode, endpoint, http.StatusText(resp.StatusCode))
	}

	return body, nil
}
