package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/varbhar/llm-council/internal/config"
	"github.com/varbhar/llm-council/internal/models"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the council members",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := config.LoadConfig()
		printMembers(cmd.OutOrStdout(), cfg.CouncilModels)
		return nil
	},
}

// printMembers lists the council with the tab label each member gets in
// the stage-1 view.
func printMembers(w io.Writer, members []string) {
	labelStyle := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	idStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	for i, member := range members {
		fmt.Fprintf(w, "%d. %s  %s\n",
			i+1,
			labelStyle.Render(models.TabLabel(member)),
			idStyle.Render(member),
		)
	}
}
