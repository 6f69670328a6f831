package models

// OpenRouter API endpoint (OpenAI-compatible)
const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// DefaultCouncilModels is the default council membership, in display order.
var DefaultCouncilModels = []string{
	"openai/gpt-5.1",
	"google/gemini-3-pro-preview",
	"anthropic/claude-sonnet-4.5",
	"x-ai/grok-4",
}
