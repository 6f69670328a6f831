package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/varbhar/llm-council/internal/config"
	"github.com/varbhar/llm-council/internal/models"
	"github.com/varbhar/llm-council/internal/retrieval"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources <question>",
	Short: "Retrieve and print context sources without asking the council",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSources(args[0])
	},
}

func runSources(question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	cfg, _ := config.LoadConfig()

	logf := func(string, ...any) {}
	if cfg.Verbose {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
		}
	}

	limit := cfg.ContextLimit
	if contextLimitFlag > 0 {
		limit = contextLimitFlag
	}

	spin := newSpinner("Gathering context")
	spin.start()

	retr := retrieval.NewClient(
		retrieval.WithNewsAPIKey(cfg.NewsAPIKey),
		retrieval.WithGitHubToken(cfg.GitHubToken),
		retrieval.WithRSSFeeds(cfg.RSSFeeds),
		retrieval.WithLogger(logf),
	)

	ctx, cancel := context.WithTimeout(context.Background(), retrievalTimeout)
	defer cancel()

	sources, err := retr.Fetch(ctx, question, limit)
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("retrieval failed: %w", err)
	}
	spin.stopWithSuccess(fmt.Sprintf("Found %d context sources", len(sources)))

	if len(sources) == 0 {
		fmt.Println("No context sources found.")
		return nil
	}

	for i, src := range sources {
		fmt.Println(formatSource(i, src))
	}
	return nil
}

// formatSource renders one retrieved source with the same fallbacks the
// TUI's context panel uses.
func formatSource(i int, src models.ContextSource) string {
	labelStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(colorTextMute)
	titleStyle := lipgloss.NewStyle().Foreground(colorText).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	date := src.PublishedAt
	if date == "" {
		date = "Unknown date"
	}
	title := src.Title
	if title == "" {
		title = "Untitled"
	}
	outlet := src.Source
	if outlet == "" {
		outlet = "Unknown outlet"
	}

	var sb strings.Builder
	sb.WriteString(labelStyle.Render(fmt.Sprintf("Source #%d", i+1)))
	sb.WriteString("  ")
	sb.WriteString(metaStyle.Render(date))
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render(title + " — " + outlet))
	if src.Summary != "" {
		width := getTerminalWidth() - 2
		if width > 100 {
			width = 100
		}
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Width(width).Render(src.Summary))
	}
	if src.URL != "" {
		sb.WriteString("\n")
		sb.WriteString(dimStyle.Render(src.URL))
	}
	sb.WriteString("\n")
	return sb.String()
}
