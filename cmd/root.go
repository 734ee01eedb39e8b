package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codetrackhq/codetrack/client"
	"github.com/codetrackhq/codetrack/client/contracts"
	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/constants/lipgloss"
	"github.com/codetrackhq/codetrack/credentials"
	"github.com/codetrackhq/codetrack/tracker"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codetrack",
	Short: "Track code changes around AI coding-assistant interactions.",
	Long: `codetrack snapshots the tracked source files of a project before and after
every AI coding-assistant interaction, computes the file-level diff against
the previous snapshot, and reports it to a snapshot server together with the
prompt, duration, and number of files modified.`,
}

// RootDependencies wires everything the subcommands need for an initialized
// project.
type RootDependencies struct {
	Root    string
	Config  *config.Config
	Creds   *credentials.Credentials
	Store   *tracker.SnapshotStore
	Client  contracts.ISnapshotClient
	Service *tracker.Service
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd)
}

// projectRoot resolves the --path flag to an absolute project root.
func projectRoot(cmd *cobra.Command) string {
	path, _ := cmd.Flags().GetString("path")
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		exitWithError(fmt.Errorf("invalid project path %q: %w", path, err))
	}
	return abs
}

// handleRootCommand builds the dependency graph for commands that require an
// initialized project. Missing credentials are fine here; commands that need
// authentication check for it themselves.
func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	root := projectRoot(cmd)

	cfg, err := config.Load(cmd.Root(), root)
	if err != nil {
		exitWithError(err)
	}

	creds, _ := credentials.Load(config.CredentialsFile(root))

	store, err := tracker.NewSnapshotStore(config.CacheDir(root))
	if err != nil {
		exitWithError(err)
	}

	apiKey := ""
	if creds.Authenticated() {
		apiKey = creds.APIKey
	}
	apiClient := client.NewAPIClient(cfg.ServerURL, apiKey)
	engine := tracker.NewEngine(root)

	return &RootDependencies{
		Root:    root,
		Config:  cfg,
		Creds:   creds,
		Store:   store,
		Client:  apiClient,
		Service: tracker.NewService(cfg, creds, engine, store, apiClient),
	}
}

// requireAuth exits loudly when no API key is stored.
func (d *RootDependencies) requireAuth() {
	if !d.Creds.Authenticated() {
		exitWithError(fmt.Errorf("not logged in; run 'codetrack login' first"))
	}
}

func exitWithError(err error) {
	fmt.Println(lipgloss.Red.Render(fmt.Sprintf("❌ %v", err)))
	os.Exit(1)
}
