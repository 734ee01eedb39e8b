package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/codetrackhq/codetrack/client"
	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/credentials"
	"github.com/codetrackhq/codetrack/tracker"
	"github.com/spf13/cobra"
)

// hookPayload is the JSON Claude Code pipes to hook commands on stdin.
type hookPayload struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

// The hook commands run inside the AI workflow: they must never fail
// visibly, block, or write anything to the terminal. Every error path is a
// silent no-op with exit status 0.
var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Automatic snapshot hooks (invoked by Claude Code)",
	Hidden: true,
}

var hookPreCmd = &cobra.Command{
	Use:   "pre-prompt",
	Short: "Snapshot the project before a prompt is handled",
	Run: func(cmd *cobra.Command, args []string) {
		payload, ok := readHookPayload()
		if !ok || strings.TrimSpace(payload.Prompt) == "" {
			return
		}

		service, ok := hookService()
		if !ok {
			return
		}
		service.PrePromptSnapshot(context.Background(), payload.Prompt, payload.SessionID, payload.Timestamp)
	},
}

var hookPostCmd = &cobra.Command{
	Use:   "post-prompt",
	Short: "Snapshot the project after a prompt finished",
	Run: func(cmd *cobra.Command, args []string) {
		payload, ok := readHookPayload()
		if !ok {
			return
		}

		service, ok := hookService()
		if !ok {
			return
		}
		service.PostPromptSnapshot(context.Background(), payload.Timestamp)
	},
}

func readHookPayload() (hookPayload, bool) {
	var payload hookPayload
	if err := json.NewDecoder(os.Stdin).Decode(&payload); err != nil {
		return hookPayload{}, false
	}
	return payload, true
}

// hookService builds the snapshot service from ambient state. Any missing
// piece (no config, no credentials, unusable cache directory) means the hook
// has nothing to do.
func hookService() (*tracker.Service, bool) {
	root := os.Getenv("CLAUDE_PROJECT_DIR")
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, false
	}

	cfg, err := config.Load(nil, abs)
	if err != nil {
		return nil, false
	}

	creds, _ := credentials.Load(config.CredentialsFile(abs))

	store, err := tracker.NewSnapshotStore(config.CacheDir(abs))
	if err != nil {
		return nil, false
	}

	apiKey := ""
	if creds.Authenticated() {
		apiKey = creds.APIKey
	}
	apiClient := client.NewAPIClient(cfg.ServerURL, apiKey)

	return tracker.NewService(cfg, creds, tracker.NewEngine(abs), store, apiClient), true
}

func init() {
	hookCmd.AddCommand(hookPreCmd)
	hookCmd.AddCommand(hookPostCmd)
	rootCmd.AddCommand(hookCmd)
}
