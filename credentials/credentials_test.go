package credentials

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	err := Save(path, Credentials{
		APIKey:           "secret",
		Username:         "dev",
		Email:            "dev@example.com",
		CurrentProjectID: 7,
	})
	require.NoError(t, err)

	creds, ok := Load(path)
	require.True(t, ok)
	assert.Equal(t, "secret", creds.APIKey)
	assert.Equal(t, "dev", creds.Username)
	assert.Equal(t, int64(7), creds.CurrentProjectID)
	assert.True(t, creds.Authenticated())
	assert.True(t, creds.HasProject())
}

func TestSaveRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, Save(path, Credentials{APIKey: "secret"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadMissingFile(t *testing.T) {
	creds, ok := Load(filepath.Join(t.TempDir(), "credentials.json"))
	assert.False(t, ok)
	assert.Nil(t, creds)

	// A nil receiver is a valid "not authenticated" state.
	assert.False(t, creds.Authenticated())
	assert.False(t, creds.HasProject())
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, ok := Load(path)
	assert.False(t, ok)
}

func TestAuthenticatedWithoutProject(t *testing.T) {
	creds := &Credentials{APIKey: "secret"}
	assert.True(t, creds.Authenticated())
	assert.False(t, creds.HasProject())
}
