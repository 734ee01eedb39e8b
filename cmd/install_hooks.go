package cmd

import (
	"fmt"

	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/codetrackhq/codetrack/hooks"
	"github.com/spf13/cobra"
)

var installHooksCmd = &cobra.Command{
	Use:   "install-hooks",
	Short: "Install the Claude Code hooks for automatic snapshots",
	Long: `Writes (or merges into) .claude/settings.json so that Claude Code invokes
codetrack before and after every interaction. Existing settings and unrelated
hooks are preserved.`,
	Run: func(cmd *cobra.Command, args []string) {
		root := projectRoot(cmd)

		if err := hooks.Install(root); err != nil {
			exitWithError(err)
		}

		fmt.Println(lipgloss.Green.Render("🎉 Hooks installed"))
		fmt.Printf("✅ %s\n", hooks.SettingsFile(root))
		fmt.Println()
		fmt.Println("Next steps:")
		fmt.Println("  1. codetrack init --server http://localhost:5000")
		fmt.Println("  2. codetrack register   (or codetrack login)")
		fmt.Println("  3. codetrack project-create --project-name 'MyProject'")
		fmt.Println()
		fmt.Println(lipgloss.Gray.Render("Snapshots are now taken automatically around every prompt."))
	},
}

func init() {
	rootCmd.AddCommand(installHooksCmd)
}
