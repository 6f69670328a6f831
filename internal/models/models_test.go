package models

import (
	"encoding/json"
	"testing"
)

func TestTabLabel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"openai/gpt-4", "gpt-4"},
		{"openai/gpt-5.1", "gpt-5.1"},
		{"x-ai/grok-4", "grok-4"},
		{"local-model", "local-model"},
		{"a/b/c", "b"},
		{"", ""},
		{"/leading", "leading"},
		{"trailing/", ""},
	}

	for _, tt := range tests {
		if got := TabLabel(tt.model); got != tt.want {
			t.Errorf("TabLabel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestResponseLabel(t *testing.T) {
	r := Response{Model: "anthropic/claude-sonnet-4.5"}
	if got := r.Label(); got != "claude-sonnet-4.5" {
		t.Errorf("Label() = %q, want %q", got, "claude-sonnet-4.5")
	}
}

func TestContextSourceJSONShape(t *testing.T) {
	src := ContextSource{
		Provider:    "newsapi",
		Source:      "Example Outlet",
		Title:       "A Title",
		Summary:     "A summary",
		URL:         "https://example.com/a",
		PublishedAt: "2024-12-01 00:00 UTC",
	}

	data, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["published_at"] != "2024-12-01 00:00 UTC" {
		t.Errorf("expected published_at key, got %v", decoded)
	}
	if _, ok := decoded["content"]; ok {
		t.Error("empty content should be omitted")
	}
}

func TestDefaultCouncilModels(t *testing.T) {
	if len(DefaultCouncilModels) == 0 {
		t.Fatal("council must have at least one member")
	}
	for _, m := range DefaultCouncilModels {
		if TabLabel(m) == m {
			t.Errorf("council model %q should carry a provider prefix", m)
		}
	}
}
