// Package config handles user configuration for the llm-council CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/varbhar/llm-council/internal/models"
)

// MarkdownConfig configures markdown rendering options
type MarkdownConfig struct {
	Style            string `json:"style"`              // "dark", "light", or path to JSON theme
	EnableEmoji      bool   `json:"enable_emoji"`       // Convert :emoji: to unicode
	PreserveNewLines bool   `json:"preserve_newlines"`  // Preserve original line breaks
	TableWrap        bool   `json:"table_wrap"`         // Enable word wrap in table cells
	InlineTableLinks bool   `json:"inline_table_links"` // Render links inline in tables
}

// Config represents the user configuration
type Config struct {
	// CouncilModels lists the OpenRouter model identifiers queried in
	// stage 1, in display order.
	CouncilModels []string `json:"council_models"`
	// OpenRouterAPIKey authenticates against OpenRouter. The
	// OPENROUTER_API_KEY environment variable takes precedence.
	OpenRouterAPIKey string `json:"openrouter_api_key,omitempty"`
	// NewsAPIKey enables the NewsAPI retrieval provider. The NEWSAPI_KEY
	// environment variable takes precedence.
	NewsAPIKey string `json:"newsapi_key,omitempty"`
	// GitHubToken is optional; it raises GitHub API rate limits. The
	// GITHUB_TOKEN environment variable takes precedence.
	GitHubToken string `json:"github_token,omitempty"`
	// RSSFeeds are polled for posts matching the question. The
	// TECH_RSS_FEEDS environment variable (comma-separated) overrides.
	RSSFeeds []string `json:"rss_feeds,omitempty"`
	// ContextLimit caps the number of retrieved context sources.
	ContextLimit int `json:"context_limit"`
	// Verbose enables detailed logging output during operations.
	Verbose         bool           `json:"verbose"`
	CopyToClipboard bool           `json:"copy_to_clipboard"`
	TUITheme        string         `json:"tui_theme,omitempty"` // TUI color theme
	Markdown        MarkdownConfig `json:"markdown,omitempty"`
}

// DefaultRSSFeeds mirrors the feeds the council polls out of the box.
var DefaultRSSFeeds = []string{
	"https://openai.com/blog/rss/",
	"https://deepmind.google/discover/rss.xml",
	"https://huggingface.co/blog/feed",
}

// DefaultMarkdownConfig returns the default markdown configuration
func DefaultMarkdownConfig() MarkdownConfig {
	return MarkdownConfig{
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
		InlineTableLinks: false,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		CouncilModels:   append([]string(nil), models.DefaultCouncilModels...),
		RSSFeeds:        append([]string(nil), DefaultRSSFeeds...),
		ContextLimit:    8,
		Verbose:         false,
		CopyToClipboard: false,
		TUITheme:        "tokyonight",
		Markdown:        DefaultMarkdownConfig(),
	}
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, ".llm-council"), nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist
func EnsureConfigDir() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}

	// 0o700: the config file may contain API keys
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the configuration from disk and applies environment
// variable overrides.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	configPath, err := GetConfigPath()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil // Use defaults if config doesn't exist
		}
		return applyEnv(cfg), fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return applyEnv(DefaultConfig()), fmt.Errorf("failed to parse config file: %w", err)
	}

	if len(cfg.CouncilModels) == 0 {
		cfg.CouncilModels = append([]string(nil), models.DefaultCouncilModels...)
	}
	if cfg.ContextLimit <= 0 {
		cfg.ContextLimit = 8
	}

	return applyEnv(cfg), nil
}

// SaveConfig saves the configuration to disk
func SaveConfig(cfg Config) error {
	configDir, err := EnsureConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0o600: the config file may contain API keys
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnv overlays environment variables onto a loaded config.
func applyEnv(cfg Config) Config {
	if key := os.Getenv("OPENROUTER_API_KEY"); key != "" {
		cfg.OpenRouterAPIKey = key
	}
	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		cfg.NewsAPIKey = key
	}
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHubToken = token
	}
	if feeds := os.Getenv("TECH_RSS_FEEDS"); feeds != "" {
		cfg.RSSFeeds = splitFeeds(feeds)
	}
	return cfg
}

func splitFeeds(raw string) []string {
	var feeds []string
	for _, feed := range strings.Split(raw, ",") {
		if feed = strings.TrimSpace(feed); feed != "" {
			feeds = append(feeds, feed)
		}
	}
	return feeds
}
