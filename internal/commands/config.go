package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/varbhar/llm-council/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		path, _ := config.GetConfigPath()
		printConfig(cmd.OutOrStdout(), cfg, path)
		return nil
	},
}

// printConfig writes the resolved settings. Secrets are shown as
// present or unset, never echoed.
func printConfig(w io.Writer, cfg config.Config, path string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	valStyle := lipgloss.NewStyle().Foreground(colorText)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	row := func(name, value string) {
		fmt.Fprintf(w, "%s %s\n", keyStyle.Render(name+":"), valStyle.Render(value))
	}

	fmt.Fprintln(w, dimStyle.Render("Config file: "+path))
	row("Council", strings.Join(cfg.CouncilModels, ", "))
	row("Context limit", fmt.Sprintf("%d", cfg.ContextLimit))
	row("RSS feeds", fmt.Sprintf("%d configured", len(cfg.RSSFeeds)))
	row("OpenRouter key", secretStatus(cfg.OpenRouterAPIKey))
	row("NewsAPI key", secretStatus(cfg.NewsAPIKey))
	row("GitHub token", secretStatus(cfg.GitHubToken))
	row("TUI theme", orDefault(cfg.TUITheme, "tokyonight"))
	row("Markdown style", orDefault(cfg.Markdown.Style, "dark"))
	row("Verbose", fmt.Sprintf("%t", cfg.Verbose))
	row("Copy to clipboard", fmt.Sprintf("%t", cfg.CopyToClipboard))
}

func secretStatus(secret string) string {
	if strings.TrimSpace(secret) == "" {
		return "unset"
	}
	return "set"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
