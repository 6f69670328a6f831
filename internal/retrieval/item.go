package retrieval

import (
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/varbhar/llm-council/internal/models"
)

// TimestampLayout is the normalized display format for published dates.
const TimestampLayout = "2006-01-02 15:04 UTC"

// UnknownDate is the fallback when no publication date can be resolved.
const UnknownDate = "Unknown date"

// buildItem assembles a ContextSource with the standard fallbacks: the
// provider stands in for a missing outlet, "Untitled" for a missing
// title, the summary doubles as content.
func buildItem(provider, source, title, summary, url, publishedAt, content string) models.ContextSource {
	if source == "" {
		source = provider
	}
	if title == "" {
		title = "Untitled"
	}
	if publishedAt == "" {
		publishedAt = UnknownDate
	}
	if content == "" {
		content = summary
	}
	return models.ContextSource{
		Provider:    provider,
		Source:      source,
		Title:       title,
		Summary:     summary,
		URL:         url,
		PublishedAt: publishedAt,
		Content:     content,
	}
}

// formatTimestamp normalizes a raw timestamp to TimestampLayout. Raw
// values that cannot be parsed are passed through unchanged; empty input
// yields UnknownDate.
func formatTimestamp(raw string) string {
	if raw == "" {
		return UnknownDate
	}
	if ts, ok := parseTime(raw); ok {
		return ts.UTC().Format(TimestampLayout)
	}
	return raw
}

// formatTime renders a parsed time in the normalized layout.
func formatTime(t *time.Time) string {
	if t == nil {
		return UnknownDate
	}
	return t.UTC().Format(TimestampLayout)
}

// parseTimestamp resolves a normalized or raw timestamp to a time for
// ordering. Unparseable values sort last.
func parseTimestamp(raw string) time.Time {
	if raw == "" || raw == UnknownDate {
		return time.Time{}
	}
	if ts, ok := parseTime(raw); ok {
		return ts
	}
	return time.Time{}
}

var timeLayouts = []string{
	TimestampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02",
	"2006",
}

func parseTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// stripHTML reduces an HTML fragment to its text content. Feed summaries
// frequently arrive with embedded markup.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return strings.TrimSpace(fragment)
	}

	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(tokenizer.Text())
			sb.WriteByte(' ')
		}
	}
}
