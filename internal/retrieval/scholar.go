package retrieval

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"github.com/varbhar/llm-council/internal/models"
)

// fetchSemanticScholarPapers searches Semantic Scholar for recent
// Computer Science papers. Papers older than the recency cutoff are
// dropped.
func (c *Client) fetchSemanticScholarPapers(ctx context.Context, query string, maxResults int) ([]models.ContextSource, error) {
	if query == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("fieldsOfStudy", "Computer Science")
	params.Set("sort", "publicationDate:desc")
	params.Set("limit", fmt.Sprintf("%d", maxResults*2))
	params.Set("offset", "0")
	params.Set("fields", "title,abstract,url,venue,publicationDate,year")

	body, err := c.getJSON(ctx, c.semanticURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -c.maxAgeDays)
	var results []models.ContextSource

	gjson.GetBytes(body, "data").ForEach(func(_, paper gjson.Result) bool {
		rawDate := paper.Get("publicationDate").String()
		if rawDate == "" {
			rawDate = paper.Get("year").String()
		}
		published, ok := parseTime(rawDate)
		if ok && published.Before(cutoff) {
			return true
		}

		source := paper.Get("venue").String()
		if source == "" {
			source = "Semantic Scholar"
		}

		results = append(results, buildItem(
			"semantic_scholar",
			source,
			paper.Get("title").String(),
			paper.Get("abstract").String(),
			paper.Get("url").String(),
			formatTimestamp(rawDate),
			paper.Get("abstract").String(),
		))
		return len(results) < maxResults
	})

	return results, nil
}

// fetchCrossrefWorks fetches recent works metadata from Crossref.
func (c *Client) fetchCrossrefWorks(ctx context.Context, query string, maxResults int) ([]models.ContextSource, error) {
	if query == "" {
		return nil, nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -c.maxAgeDays)
	params := url.Values{}
	params.Set("query", query)
	params.Set("filter", "from-pub-date:"+cutoff.Format("2006-01-02"))
	params.Set("sort", "published")
	params.Set("order", "desc")
	params.Set("rows", fmt.Sprintf("%d", maxResults*2))

	body, err := c.getJSON(ctx, c.crossrefURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var results []models.ContextSource
	gjson.GetBytes(body, "message.items").ForEach(func(_, item gjson.Result) bool {
		published := crossrefDate(item)
		if published != nil && published.Before(cutoff) {
			return true
		}

		source := item.Get("container-title.0").String()
		if source == "" {
			source = "Crossref"
		}
		summary := stripHTML(item.Get("abstract").String())

		results = append(results, buildItem(
			"crossref",
			source,
			item.Get("title.0").String(),
			summary,
			item.Get("URL").String(),
			formatTime(published),
			summary,
		))
		return len(results) < maxResults
	})

	return results, nil
}

// crossrefDate extracts the best publication date from a Crossref work.
// Crossref encodes dates as [[year, month, day]] parts, month and day
// optional.
func crossrefDate(item gjson.Result) *time.Time {
	for _, key := range []string{"published-online", "published-print", "issued", "created"} {
		parts := item.Get(key + ".date-parts.0").Array()
		if len(parts) == 0 {
			continue
		}
		year := int(parts[0].Int())
		if year == 0 {
			continue
		}
		month, day := 1, 1
		if len(parts) > 1 {
			month = int(parts[1].Int())
		}
		if len(parts) > 2 {
			day = int(parts[2].Int())
		}
		ts := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		return &ts
	}
	return nil
}
