package cmd

import (
	"fmt"
	"os"

	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/codetrackhq/codetrack/tracker/models"
	"github.com/codetrackhq/codetrack/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const previewLines = 20

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show pending changes against the last snapshot (dry run)",
	Long: `Scans the tracked files and lists what the next snapshot would report:
added, modified, and deleted files relative to the last persisted baseline.
Nothing is reported to the server and the baseline is not advanced.`,
	Run: func(cmd *cobra.Command, args []string) {
		deps := handleRootCommand(cmd)
		preview, _ := cmd.Flags().GetBool("preview")

		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true)

		spinnerInstance, _ := spinner.Start("Scanning tracked files...")
		changes, err := deps.Service.PendingChanges()
		spinnerInstance.Stop()
		fmt.Print("\r")

		if err != nil {
			exitWithError(err)
		}

		if len(changes) == 0 {
			fmt.Println(lipgloss.Green.Render("✓ No changes since the last snapshot."))
			return
		}

		var added, modified, deleted int
		for _, change := range changes {
			switch change.Type {
			case models.ChangeAdded:
				added++
				fmt.Println(lipgloss.Green.Render(fmt.Sprintf("  A %s (+%d lines)", change.Path, change.LinesAdded)))
			case models.ChangeModified:
				modified++
				fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("  M %s (%d lines now)", change.Path, change.LinesAdded)))
			case models.ChangeDeleted:
				deleted++
				fmt.Println(lipgloss.Red.Render(fmt.Sprintf("  D %s", change.Path)))
			}

			if preview && change.Type != models.ChangeDeleted {
				head := utils.HeadLines(change.Content, previewLines)
				language := utils.DetectLanguage(change.Path)
				if err := utils.HighlightContent(os.Stdout, head+"\n", language, deps.Config.Theme); err != nil {
					fmt.Println(change.Content)
				}
			}
		}

		fmt.Println()
		summary := fmt.Sprintf("%d added, %d modified, %d deleted", added, modified, deleted)
		fmt.Println(lipgloss.BoxStyle.Render(summary))
	},
}

func init() {
	changesCmd.Flags().Bool("preview", false, "Show highlighted content of added and modified files")
	rootCmd.AddCommand(changesCmd)
}
