package council

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"

	apierrors "github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/models"
)

func TestStage1SystemPromptGuardrails(t *testing.T) {
	system, _ := BuildStage1Messages("What is new in AI?", nil)
	lower := strings.ToLower(system)

	for _, phrase := range []string{"do not claim", "knowledge cutoff", "lack browsing"} {
		if !strings.Contains(lower, phrase) {
			t.Errorf("system prompt missing %q", phrase)
		}
	}
}

func TestStage1UserMessageWithoutSources(t *testing.T) {
	_, user := BuildStage1Messages("Tell me", nil)
	if user != "Tell me" {
		t.Errorf("user message should be the bare question, got %q", user)
	}
}

func TestStage1UserMessageContextBlock(t *testing.T) {
	sources := []models.ContextSource{
		{
			Title:       "Fresh News",
			Source:      "NewsAPI",
			Summary:     "Summary text",
			Content:     "Full text",
			PublishedAt: "2024-12-01 00:00 UTC",
			URL:         "https://example.com/fresh",
		},
	}

	_, user := BuildStage1Messages("Tell me", sources)

	for _, want := range []string{"CONTEXT:", "Fresh News", "NewsAPI", "2024-12-01 00:00 UTC", "Full text", "https://example.com/fresh", "QUESTION:", "Tell me"} {
		if !strings.Contains(user, want) {
			t.Errorf("user message missing %q:\n%s", want, user)
		}
	}
}

func TestStage1ContextFallbacks(t *testing.T) {
	sources := []models.ContextSource{
		{Provider: "rss", Summary: "only a summary"},
	}

	_, user := BuildStage1Messages("Q", sources)
	if !strings.Contains(user, "Untitled") {
		t.Errorf("missing title should render as Untitled:\n%s", user)
	}
	if !strings.Contains(user, "(rss)") {
		t.Errorf("missing outlet should fall back to provider:\n%s", user)
	}
	if !strings.Contains(user, "only a summary") {
		t.Errorf("summary should stand in for missing content:\n%s", user)
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient("  "); !errors.Is(err, apierrors.ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestNewClientRejectsEmptyCouncil(t *testing.T) {
	if _, err := NewClient("key", WithMembers(nil)); !errors.Is(err, apierrors.ErrCouncilEmpty) {
		t.Errorf("expected ErrCouncilEmpty, got %v", err)
	}
}

func TestClientDefaultsToCouncilModels(t *testing.T) {
	c, err := NewClient("key")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	got := c.Members()
	if len(got) != len(models.DefaultCouncilModels) {
		t.Fatalf("got %d members, want %d", len(got), len(models.DefaultCouncilModels))
	}
	for i, want := range models.DefaultCouncilModels {
		if got[i] != want {
			t.Errorf("member %d = %q, want %q", i, got[i], want)
		}
	}
}

// completionServer answers chat completion requests per model: models in
// the failing set get a 500, everyone else echoes a canned answer.
func completionServer(t *testing.T, failing map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if failing[req.Model] {
			http.Error(w, `{"error": {"message": "member down"}}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "cmpl-1",
			"object": "chat.completion",
			"model": %q,
			"choices": [
				{"index": 0, "finish_reason": "stop",
				 "message": {"role": "assistant", "content": "answer from %s"}}
			]
		}`, req.Model, req.Model)
	}))
}

func TestDispatchKeepsCouncilOrderAndDropsFailures(t *testing.T) {
	srv := completionServer(t, map[string]bool{"bad/member": true})
	defer srv.Close()

	c, err := NewClient("key",
		WithBaseURL(srv.URL),
		WithMembers([]string{"good/first", "bad/member", "good/second"}),
		WithRequestOption(option.WithMaxRetries(0)),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	responses, failures, err := c.Dispatch(context.Background(), "question", nil)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if len(responses) != 2 {
		t.Fatalf("got %d responses, want 2", len(responses))
	}
	if responses[0].Model != "good/first" || responses[1].Model != "good/second" {
		t.Errorf("responses out of council order: %+v", responses)
	}
	if responses[0].Response != "answer from good/first" {
		t.Errorf("unexpected answer: %q", responses[0].Response)
	}

	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if model := apierrors.GetMemberModel(failures[0]); model != "bad/member" {
		t.Errorf("failure attributed to %q, want bad/member", model)
	}
}

func TestDispatchAllMembersFailing(t *testing.T) {
	srv := completionServer(t, map[string]bool{"a/one": true, "b/two": true})
	defer srv.Close()

	c, err := NewClient("key",
		WithBaseURL(srv.URL),
		WithMembers([]string{"a/one", "b/two"}),
		WithRequestOption(option.WithMaxRetries(0)),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, failures, err := c.Dispatch(context.Background(), "question", nil)
	if !errors.Is(err, apierrors.ErrAllMembersFailed) {
		t.Fatalf("expected ErrAllMembersFailed, got %v", err)
	}
	if len(failures) != 2 {
		t.Errorf("got %d failures, want 2", len(failures))
	}
}
