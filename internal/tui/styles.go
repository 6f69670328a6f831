// Package tui provides the terminal user interface for llm-council.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/varbhar/llm-council/internal/errors"
	"github.com/varbhar/llm-council/internal/render"
)

// Color variables (updated from theme)
var (
	// Base colors
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	// Accent colors
	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	// Text colors
	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes). The names mirror the
// stage-1 presentation hooks so styling stays a stable contract:
// stage, stage-title, tabs, tab, tab active, tab-content, model-name,
// response-text, context-panel, context-list, context-item,
// context-header, context-label, context-meta, context-title,
// context-summary, context-link.
var (
	// Outer stage panel
	stageStyle lipgloss.Style

	// Stage title
	stageTitleStyle lipgloss.Style

	// Tab strip and individual tabs
	tabsStyle      lipgloss.Style
	tabStyle       lipgloss.Style
	tabActiveStyle lipgloss.Style

	// Selected response area
	tabContentStyle lipgloss.Style

	// Full model identifier above the response body
	modelNameStyle lipgloss.Style

	// Rendered markdown body
	responseTextStyle lipgloss.Style

	// Context sources panel
	contextPanelStyle   lipgloss.Style
	contextListStyle    lipgloss.Style
	contextItemStyle    lipgloss.Style
	contextHeaderStyle  lipgloss.Style
	contextLabelStyle   lipgloss.Style
	contextMetaStyle    lipgloss.Style
	contextTitleStyle   lipgloss.Style
	contextSummaryStyle lipgloss.Style
	contextLinkStyle    lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	// Loading/spinner style
	loadingStyle lipgloss.Style

	// Error style
	errorStyle lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	// Update color variables
	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	// Rebuild all styles with new colors
	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	stageStyle = lipgloss.NewStyle().
		Padding(0, 1)

	stageTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginBottom(1)

	tabsStyle = lipgloss.NewStyle().
		MarginBottom(1)

	tabStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	tabActiveStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(0, 1)

	tabContentStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	modelNameStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginBottom(1)

	responseTextStyle = lipgloss.NewStyle().
		Foreground(colorText)

	contextPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderLeft(true).
		PaddingLeft(1).
		MarginTop(1)

	contextListStyle = lipgloss.NewStyle().
		MarginTop(1)

	contextItemStyle = lipgloss.NewStyle().
		MarginBottom(1)

	contextHeaderStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	contextLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	contextMetaStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	contextTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	contextSummaryStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	contextLinkStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Underline(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		MarginTop(1)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// FormatError returns a styled error message with additional context.
// It extracts details from structured error types if available.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	// Use colors from theme
	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	// Extract additional context from structured errors
	if model := errors.GetMemberModel(err); model != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Council member: %s", model)))
	}

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	// Provide helpful hints based on error type
	switch {
	case errors.IsAuthError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check OPENROUTER_API_KEY or the api key in ~/.llm-council/config.json"))
	case errors.IsRateLimitError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: You've hit a rate limit. Try again later or trim the council"))
	case errors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check your internet connection and try again"))
	case errors.IsTimeoutError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Request timed out. Try again or check your connection"))
	}

	return sb.String()
}

// PrintError prints a styled error message to stderr.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
