package retrieval

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "Unknown date"},
		{"2024-12-01T10:30:00Z", "2024-12-01 10:30 UTC"},
		{"2024-12-01 10:30 UTC", "2024-12-01 10:30 UTC"},
		{"Mon, 02 Jan 2006 15:04:05 GMT", "2006-01-02 15:04 UTC"},
		{"2024-06-15", "2024-06-15 00:00 UTC"},
		{"not a date", "not a date"},
	}

	for _, tt := range tests {
		if got := formatTimestamp(tt.raw); got != tt.want {
			t.Errorf("formatTimestamp(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(nil); got != UnknownDate {
		t.Errorf("formatTime(nil) = %q", got)
	}

	ts := time.Date(2025, 3, 9, 18, 45, 0, 0, time.UTC)
	if got := formatTime(&ts); got != "2025-03-09 18:45 UTC" {
		t.Errorf("formatTime = %q", got)
	}
}

func TestParseTimestampOrdering(t *testing.T) {
	newer := parseTimestamp("2025-01-02 00:00 UTC")
	older := parseTimestamp("2024-01-02 00:00 UTC")
	unknown := parseTimestamp(UnknownDate)

	if !newer.After(older) {
		t.Error("newer should sort after older")
	}
	if !older.After(unknown) {
		t.Error("any parseable date should sort after unknown")
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"<p>hello <b>bold</b> world</p>", "hello bold world"},
		{"line<br/>break", "line break"},
		{"a &amp; b", "a & b"},
	}

	for _, tt := range tests {
		if got := stripHTML(tt.in); got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildItemFallbacks(t *testing.T) {
	item := buildItem("rss", "", "", "", "", "", "")

	if item.Source != "rss" {
		t.Errorf("missing source should fall back to provider, got %q", item.Source)
	}
	if item.Title != "Untitled" {
		t.Errorf("missing title should fall back to Untitled, got %q", item.Title)
	}
	if item.PublishedAt != UnknownDate {
		t.Errorf("missing date should fall back to %q, got %q", UnknownDate, item.PublishedAt)
	}
}

func TestBuildItemContentFallsBackToSummary(t *testing.T) {
	item := buildItem("arxiv", "arXiv", "Title", "the abstract", "https://x", "2024", "")
	if item.Content != "the abstract" {
		t.Errorf("content should fall back to summary, got %q", item.Content)
	}
}
