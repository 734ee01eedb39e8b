package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	clientmodels "github.com/codetrackhq/codetrack/client/models"
	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/codetrackhq/codetrack/credentials"
	"github.com/spf13/cobra"
)

var projectCreateCmd = &cobra.Command{
	Use:   "project-create",
	Short: "Create a project on the snapshot server and select it",
	Run: func(cmd *cobra.Command, args []string) {
		deps := handleRootCommand(cmd)
		deps.requireAuth()

		reader := bufio.NewReader(os.Stdin)
		name := flagOrPrompt(cmd, "project-name", "Project name: ", reader)
		description, _ := cmd.Flags().GetString("description")

		projectID, err := deps.Client.CreateProject(context.Background(), clientmodels.CreateProjectRequest{
			ProjectName: name,
			ProjectPath: deps.Root,
			Description: description,
		})
		if err != nil {
			exitWithError(fmt.Errorf("project creation failed: %w", err))
		}

		creds := *deps.Creds
		creds.CurrentProjectID = projectID
		if err := credentials.Save(config.CredentialsFile(deps.Root), creds); err != nil {
			exitWithError(err)
		}

		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✅ Project created: %s (id %d)", name, projectID)))
	},
}

func init() {
	projectCreateCmd.Flags().String("project-name", "", "Name of the project")
	projectCreateCmd.Flags().String("description", "", "Project description")
	rootCmd.AddCommand(projectCreateCmd)
}
