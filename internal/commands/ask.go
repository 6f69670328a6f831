package commands

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/varbhar/llm-council/internal/config"
	"github.com/varbhar/llm-council/internal/council"
	apierrors "github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/models"
	"github.com/varbhar/llm-council/internal/render"
	"github.com/varbhar/llm-council/internal/retrieval"
	"github.com/varbhar/llm-council/internal/tui"
)

const (
	retrievalTimeout = 30 * time.Second
	dispatchTimeout  = 3 * time.Minute
)

// runAsk retrieves context, fans the question out to the council and
// shows the answers.
func runAsk(question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("question cannot be empty")
	}

	// Load config for keys, membership and verbose logging
	cfg, _ := config.LoadConfig()

	if cfg.TUITheme != "" && render.SetTUITheme(cfg.TUITheme) {
		tui.UpdateTheme()
	}

	logf := func(string, ...any) {}
	if cfg.Verbose && !rawFlag {
		logf = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
		}
	}

	members := cfg.CouncilModels
	if len(modelsFlag) > 0 {
		members = modelsFlag
	}
	logf("Council: %s", strings.Join(members, ", "))

	limit := cfg.ContextLimit
	if contextLimitFlag > 0 {
		limit = contextLimitFlag
	}

	// Gather grounding context unless disabled
	var sources []models.ContextSource
	if !noContextFlag {
		var spin *spinner
		if !rawFlag {
			spin = newSpinner("Gathering context")
			spin.start()
		}

		retr := retrieval.NewClient(
			retrieval.WithNewsAPIKey(cfg.NewsAPIKey),
			retrieval.WithGitHubToken(cfg.GitHubToken),
			retrieval.WithRSSFeeds(cfg.RSSFeeds),
			retrieval.WithLogger(logf),
		)

		ctx, cancel := context.WithTimeout(context.Background(), retrievalTimeout)
		fetched, err := retr.Fetch(ctx, question, limit)
		cancel()

		if err != nil {
			// the council still works without context
			if !rawFlag {
				spin.stopWithError()
				warn(fmt.Sprintf("Context retrieval failed: %v", err))
			}
		} else {
			sources = fetched
			if !rawFlag {
				spin.stopWithSuccess(fmt.Sprintf("Found %d context sources", len(sources)))
			}
		}
	}

	client, err := council.NewClient(cfg.OpenRouterAPIKey,
		council.WithMembers(members),
		council.WithLogger(logf),
	)
	if err != nil {
		return err
	}

	var spin *spinner
	if !rawFlag {
		spin = newSpinner("Consulting the council")
		spin.start()
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	startTime := time.Now()
	responses, failures, err := client.Dispatch(ctx, question, sources)
	if err != nil {
		if !rawFlag {
			spin.stopWithError()
		}
		return fmt.Errorf("council failed: %w", err)
	}
	if !rawFlag {
		spin.stopWithSuccess(fmt.Sprintf("%d of %d members answered in %s",
			len(responses), len(members), time.Since(startTime).Round(time.Second)))
		for _, failure := range failures {
			warn(fmt.Sprintf("Dropped %s: %v", apierrors.GetMemberModel(failure), failure))
		}
	}

	combined := combineResponses(responses)

	if copyFlag || cfg.CopyToClipboard {
		if err := clipboard.WriteAll(combined); err != nil {
			warn(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		} else if !rawFlag {
			note("Copied to clipboard")
		}
	}

	if outputFlag != "" {
		if err := os.WriteFile(outputFlag, []byte(combined), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !rawFlag {
			note(fmt.Sprintf("Answers saved to %s", outputFlag))
		}
		return nil
	}

	if rawFlag || !isStdoutTTY() {
		fmt.Print(combined)
		return nil
	}

	return tui.RunStage1(responses, sources, render.LoadOptionsFromConfigWithWidth(getTerminalWidth()))
}

// combineResponses flattens the council's answers into one markdown
// document, one section per member.
func combineResponses(responses []models.Response) string {
	var sb strings.Builder
	for i, resp := range responses {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n", resp.Model)
		sb.WriteString(strings.TrimRight(resp.Response, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

func warn(message string) {
	fmt.Fprintln(os.Stderr, lipgloss.NewStyle().Foreground(colorWarn).Render("⚠ "+message))
}

func note(message string) {
	fmt.Fprintln(os.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ "+message))
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
