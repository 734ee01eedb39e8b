package cmd

import (
	"fmt"

	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize codetrack for the current project",
	Long: `Creates the .codetracker directory with a default configuration. The server
URL can be given with --server or the CODETRACKER_SERVER environment variable.`,
	Run: func(cmd *cobra.Command, args []string) {
		root := projectRoot(cmd)
		serverURL, _ := cmd.Flags().GetString("server")

		cfg, err := config.Init(root, serverURL)
		if err != nil {
			exitWithError(err)
		}

		fmt.Println(lipgloss.Green.Render("✅ codetrack initialized"))
		fmt.Printf("🌐 Server URL: %s\n", cfg.ServerURL)
		fmt.Println("🤖 Automatic snapshots around AI interactions: enabled")
		fmt.Println(lipgloss.Gray.Render("Next: 'codetrack register' or 'codetrack login', then 'codetrack project-create'."))
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
