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
	"github.com/codetrackhq/codetrack/utils"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new user with the snapshot server",
	Run: func(cmd *cobra.Command, args []string) {
		deps := handleRootCommand(cmd)
		reader := bufio.NewReader(os.Stdin)

		username := flagOrPrompt(cmd, "username", "Username: ", reader)
		email := flagOrPrompt(cmd, "email", "Email: ", reader)
		password := flagOrPrompt(cmd, "password", "Password: ", reader)
		org, _ := cmd.Flags().GetString("org")

		auth, err := deps.Client.Register(context.Background(), clientmodels.RegisterRequest{
			Username:     username,
			Email:        email,
			Password:     password,
			Organization: org,
		})
		if err != nil {
			exitWithError(fmt.Errorf("registration failed: %w", err))
		}

		saveAuth(deps, auth.APIKey, username, email)
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✅ Registered as %s", username)))
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the snapshot server",
	Run: func(cmd *cobra.Command, args []string) {
		deps := handleRootCommand(cmd)
		reader := bufio.NewReader(os.Stdin)

		username := flagOrPrompt(cmd, "username", "Username: ", reader)
		password := flagOrPrompt(cmd, "password", "Password: ", reader)

		auth, err := deps.Client.Login(context.Background(), clientmodels.LoginRequest{
			Username: username,
			Password: password,
		})
		if err != nil {
			exitWithError(fmt.Errorf("login failed: %w", err))
		}

		saveAuth(deps, auth.APIKey, username, auth.Email)
		fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✅ Logged in as %s", username)))
	},
}

// saveAuth persists a fresh API key, keeping the current project selection of
// any previous credentials.
func saveAuth(deps *RootDependencies, apiKey, username, email string) {
	creds := credentials.Credentials{
		APIKey:   apiKey,
		Username: username,
		Email:    email,
	}
	if deps.Creds != nil {
		creds.CurrentProjectID = deps.Creds.CurrentProjectID
	}
	if err := credentials.Save(config.CredentialsFile(deps.Root), creds); err != nil {
		exitWithError(err)
	}
}

func flagOrPrompt(cmd *cobra.Command, flag, label string, reader *bufio.Reader) string {
	value, _ := cmd.Flags().GetString(flag)
	if value != "" {
		return value
	}
	value, err := utils.ReadLine(label, reader)
	if err != nil {
		exitWithError(err)
	}
	if value == "" {
		exitWithError(fmt.Errorf("%s is required", flag))
	}
	return value
}

func init() {
	for _, c := range []*cobra.Command{registerCmd, loginCmd} {
		c.Flags().StringP("username", "u", "", "Username")
		c.Flags().StringP("password", "p", "", "Password")
	}
	registerCmd.Flags().StringP("email", "e", "", "Email address")
	registerCmd.Flags().String("org", "", "Organization (optional)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}
