// Package models contains data types and constants for the LLM council.
package models

import "strings"

// Response is a single council member's stage-1 answer.
type Response struct {
	// Model is the OpenRouter identifier, conventionally "<provider>/<name>".
	Model string `json:"model"`
	// Response is the markdown-formatted answer body.
	Response string `json:"response"`
}

// Label returns the display label for the response's tab: the segment
// after the first "/" of the model identifier, or the full identifier
// when it contains no separator.
//
//	"openai/gpt-4" -> "gpt-4"
//	"a/b/c"        -> "b"
//	"local-model"  -> "local-model"
func (r Response) Label() string {
	return TabLabel(r.Model)
}

// TabLabel derives a short tab label from a model identifier.
func TabLabel(model string) string {
	_, after, found := strings.Cut(model, "/")
	if !found {
		return model
	}
	// "a/b/c" labels as "b": only the first separator splits.
	if i := strings.Index(after, "/"); i >= 0 {
		return after[:i]
	}
	return after
}

// ContextSource is a retrieved snippet used to ground stage-1 answers.
// Every field may be empty; display code applies fallbacks.
type ContextSource struct {
	Provider    string `json:"provider,omitempty"`
	Source      string `json:"source,omitempty"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	URL         string `json:"url,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
	Content     string `json:"content,omitempty"`
}
