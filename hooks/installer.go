package hooks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Hook event names used by the Claude Code settings file.
const (
	EventUserPromptSubmit = "UserPromptSubmit"
	EventStop             = "Stop"
)

// Install writes (or merges into) <root>/.claude/settings.json so that the
// surrounding AI workflow invokes codetrack around every interaction. The
// binary itself is the hook; no scripts are copied. Existing settings and
// unrelated hooks are preserved.
func Install(root string) error {
	claudeDir := filepath.Join(root, ".claude")
	if err := os.MkdirAll(claudeDir, 0755); err != nil {
		return fmt.Errorf("failed to create .claude directory: %w", err)
	}

	settingsFile := filepath.Join(claudeDir, "settings.json")

	settings := make(map[string]json.RawMessage)
	if data, err := os.ReadFile(settingsFile); err == nil {
		if err := json.Unmarshal(data, &settings); err != nil {
			return fmt.Errorf("existing settings.json is not valid JSON: %w", err)
		}
	}

	hooksSection := make(map[string]json.RawMessage)
	if raw, ok := settings["hooks"]; ok {
		if err := json.Unmarshal(raw, &hooksSection); err != nil {
			return fmt.Errorf("existing hooks section is not valid JSON: %w", err)
		}
	}

	for event, command := range map[string]string{
		EventUserPromptSubmit: "codetrack hook pre-prompt",
		EventStop:             "codetrack hook post-prompt",
	} {
		entry, err := json.Marshal(hookConfig(command))
		if err != nil {
			return fmt.Errorf("failed to encode hook entry: %w", err)
		}
		hooksSection[event] = entry
	}

	rawHooks, err := json.Marshal(hooksSection)
	if err != nil {
		return fmt.Errorf("failed to encode hooks section: %w", err)
	}
	settings["hooks"] = rawHooks

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(settingsFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings.json: %w", err)
	}
	return nil
}

// SettingsFile returns the path of the settings file Install writes.
func SettingsFile(root string) string {
	return filepath.Join(root, ".claude", "settings.json")
}

type hookEntry struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

type hookGroup struct {
	Hooks []hookEntry `json:"hooks"`
}

func hookConfig(command string) []hookGroup {
	return []hookGroup{{
		Hooks: []hookEntry{{Type: "command", Command: command}},
	}}
}
