package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/codetrackhq/codetrack/utils"
	"github.com/spf13/cobra"
)

var resetBaselineCmd = &cobra.Command{
	Use:   "reset-baseline",
	Short: "Discard the cached snapshot baseline and pending session state",
	Long: `Removes the locally cached snapshot manifest and any pending session record.
The next snapshot will report the whole tracked tree as added, exactly like a
first run. Nothing on the server is touched.`,
	Run: func(cmd *cobra.Command, args []string) {
		force, _ := cmd.Flags().GetBool("force")
		deps := handleRootCommand(cmd)

		if !force {
			reader := bufio.NewReader(os.Stdin)
			confirmed, err := utils.ConfirmPrompt("Discard the local baseline?", reader)
			if err != nil {
				exitWithError(err)
			}
			if !confirmed {
				fmt.Println(lipgloss.Yellow.Render("Reset cancelled."))
				return
			}
		}

		if err := deps.Store.Reset(); err != nil {
			exitWithError(err)
		}
		fmt.Println(lipgloss.Green.Render("✓ Baseline reset; the next snapshot will be a first run."))
	},
}

func init() {
	resetBaselineCmd.Flags().BoolP("force", "f", false, "Reset without confirmation")
	rootCmd.AddCommand(resetBaselineCmd)
}
