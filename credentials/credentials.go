package credentials

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Credentials holds the locally stored authentication state. Absence of the
// file (or an unparseable one) means "not yet authenticated" and is a valid
// state, not an error.
type Credentials struct {
	APIKey           string `json:"api_key"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	CurrentProjectID int64  `json:"current_project_id,omitempty"`
}

// Authenticated reports whether the stored state carries an API key.
func (c *Credentials) Authenticated() bool {
	return c != nil && c.APIKey != ""
}

// HasProject reports whether a current project has been selected.
func (c *Credentials) HasProject() bool {
	return c != nil && c.CurrentProjectID != 0
}

// Load reads the credentials file. ok=false means no usable credentials.
func Load(path string) (*Credentials, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, false
	}
	return &creds, true
}

// Save writes the credentials file, restricting permissions to the owner on
// platforms that support it.
func Save(path string, creds Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	if runtime.GOOS != "windows" {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to restrict credentials permissions: %w", err)
		}
	}
	return nil
}
