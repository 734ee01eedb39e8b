package cmd

import (
	"context"
	"fmt"

	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show account statistics from the snapshot server",
	Run: func(cmd *cobra.Command, args []string) {
		deps := handleRootCommand(cmd)
		deps.requireAuth()

		spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
			WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
			WithDelay(100).WithRemoveWhenDone(true)

		spinnerInstance, _ := spinner.Start("Fetching statistics...")
		stats, err := deps.Client.UserStats(context.Background())
		spinnerInstance.Stop()
		fmt.Print("\r")

		if err != nil {
			exitWithError(fmt.Errorf("status request failed: %w", err))
		}

		fmt.Println(lipgloss.Info.Render("\n📊 codetrack status"))
		fmt.Println(lipgloss.Gray.Render("════════════════════════════════════════════"))
		fmt.Printf("👤 User: %s\n", deps.Creds.Username)
		fmt.Printf("🌐 Server: %s\n", deps.Config.ServerURL)
		fmt.Printf("📁 Project path: %s\n", deps.Root)

		fmt.Println("\nStatistics:")
		fmt.Printf("  📂 Projects: %d\n", stats.TotalProjects)
		fmt.Printf("  📸 Snapshots: %d\n", stats.TotalSnapshots)
		fmt.Printf("  🤖 AI interactions: %d\n", stats.TotalInteractions)
		fmt.Printf("  💬 AI prompts: %d\n", stats.TotalPrompts)
		fmt.Printf("  ✅ Accepted responses: %d\n", stats.AcceptedResponses)
		fmt.Printf("  📊 Acceptance rate: %.1f%%\n", stats.AcceptanceRate)

		fmt.Println("\n💾 Storage:")
		fmt.Printf("  File versions: %d\n", stats.Storage.UniqueVersions)
		fmt.Printf("  Original size: %.1f MB\n", stats.Storage.TotalSizeMB)
		fmt.Printf("  Compressed: %.1f MB\n", stats.Storage.CompressedSizeMB)
		fmt.Printf("  Compression ratio: %.1fx\n", stats.Storage.CompressionRatio)

		if len(stats.AIToolUsage) > 0 {
			fmt.Println("\nAI tool usage:")
			for _, usage := range stats.AIToolUsage {
				fmt.Printf("  - %s: %d\n", usage.AITool, usage.Count)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
