// Package commands provides CLI commands for llm-council.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/varbhar/llm-council/internal/tui"
)

var (
	// Global flags
	fileFlag         string
	outputFlag       string
	rawFlag          bool
	noContextFlag    bool
	copyFlag         bool
	modelsFlag       []string
	contextLimitFlag int

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "council [question]",
	Short: "Ask a council of LLMs and compare their answers",
	Long: `council sends one question to several models over OpenRouter, grounds
them with freshly retrieved context (news, arXiv, GitHub releases, RSS,
scholarly APIs) and opens a tab view to compare the independent answers.

Examples:
  council "What changed in AI this week?"   Ask the council
  council -f question.md                    Read the question from a file
  cat question.md | council                 Read the question from stdin
  council "..." --raw                       Print raw markdown instead of the TUI
  council "..." -o answers.md               Save all answers to a file
  council sources "kubernetes"              Show retrieved context only
  council members                           List the council`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check for version flag
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("council %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		// Check for file input
		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runAsk(string(data))
		}

		// Check for positional argument
		if len(args) > 0 {
			return runAsk(args[0])
		}

		// Check for stdin
		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runAsk(string(data))
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command. Errors are rendered with their
// structured context (member, HTTP status, hints) before exiting.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save all answers to file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print raw markdown to stdout instead of opening the TUI")
	rootCmd.Flags().BoolVar(&noContextFlag, "no-context", false, "Skip context retrieval")
	rootCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy all answers to the clipboard")
	rootCmd.Flags().StringSliceVarP(&modelsFlag, "model", "m", nil, "Override council membership (repeatable)")
	rootCmd.Flags().IntVar(&contextLimitFlag, "context-limit", 0, "Max context sources to retrieve (default from config)")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(configCmd)
}
