package retrieval

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tidwall/gjson"

	apierrors "github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/models"
)

// fetchGitHubReleases finds repositories matching the query and reports
// their latest release. Repositories without releases are skipped.
func (c *Client) fetchGitHubReleases(ctx context.Context, query string, maxRepos int) ([]models.ContextSource, error) {
	if query == "" {
		return nil, nil
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github+json",
		"User-Agent": "llm-council",
	}
	if c.githubToken != "" {
		headers["Authorization"] = "Bearer " + c.githubToken
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "updated")
	params.Set("order", "desc")
	params.Set("per_page", fmt.Sprintf("%d", maxRepos))

	searchBody, err := c.getJSON(ctx, c.githubBaseURL+"/search/repositories?"+params.Encode(), headers)
	if err != nil {
		return nil, err
	}

	var releases []models.ContextSource
	repos := gjson.GetBytes(searchBody, "items").Array()
	for i, repo := range repos {
		if i >= maxRepos {
			break
		}
		owner := repo.Get("owner.login").String()
		name := repo.Get("name").String()

		releaseURL := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.githubBaseURL, owner, name)
		releaseBody, err := c.getJSON(ctx, releaseURL, headers)
		if err != nil {
			// 404 just means the repo has no releases
			if apierrors.GetHTTPStatus(err) == 404 {
				continue
			}
			c.logf("release fetch failed for %s/%s: %v", owner, name, err)
			continue
		}

		release := gjson.ParseBytes(releaseBody)
		publishedAt := release.Get("published_at").String()
		if publishedAt == "" {
			publishedAt = release.Get("created_at").String()
		}

		title := release.Get("name").String()
		if title == "" {
			title = repo.Get("full_name").String()
		}
		summary := release.Get("body").String()
		if summary == "" {
			summary = repo.Get("description").String()
		}
		htmlURL := release.Get("html_url").String()
		if htmlURL == "" {
			htmlURL = repo.Get("html_url").String()
		}

		releases = append(releases, buildItem(
			"github",
			owner+"/"+name,
			title,
			summary,
			htmlURL,
			formatTimestamp(publishedAt),
			release.Get("body").String(),
		))
	}

	return releases, nil
}
