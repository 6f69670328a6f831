package council

import (
	"fmt"
	"strings"

	"github.com/varbhar/llm-council/internal/models"
)

// stage1SystemPrompt keeps council members from refusing fresh questions.
// Members frequently disclaim a knowledge cutoff even when the user
// message already carries current reporting, so the prompt forbids it.
const stage1SystemPrompt = `You are one member of an LLM council. Several models receive the same question and answer it independently; the answers are compared afterwards.

Answer the question directly and thoroughly in well-structured markdown.

If the user message includes a CONTEXT block, it contains reporting and papers retrieved for this question moments ago. Treat it as current ground truth: do not claim you are limited by a knowledge cutoff, and do not say you lack browsing capabilities. Cite the context's sources where they support your answer.`

// BuildStage1Messages assembles the system and user messages for a
// stage-1 request. Retrieved sources are rendered into a CONTEXT block
// ahead of the question; with no sources the user message is the bare
// question.
func BuildStage1Messages(question string, sources []models.ContextSource) (system, user string) {
	if len(sources) == 0 {
		return stage1SystemPrompt, question
	}

	var sb strings.Builder
	sb.WriteString("CONTEXT:\n\n")
	for i, src := range sources {
		title := src.Title
		if title == "" {
			title = "Untitled"
		}
		outlet := src.Source
		if outlet == "" {
			outlet = src.Provider
		}

		fmt.Fprintf(&sb, "[%d] %s", i+1, title)
		if outlet != "" {
			fmt.Fprintf(&sb, " (%s", outlet)
			if src.PublishedAt != "" {
				fmt.Fprintf(&sb, ", %s", src.PublishedAt)
			}
			sb.WriteString(")")
		}
		sb.WriteString("\n")

		body := src.Content
		if body == "" {
			body = src.Summary
		}
		if body != "" {
			sb.WriteString(body)
			sb.WriteString("\n")
		}
		if src.URL != "" {
			sb.WriteString(src.URL)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("QUESTION:\n\n")
	sb.WriteString(question)
	return stage1SystemPrompt, sb.String()
}
