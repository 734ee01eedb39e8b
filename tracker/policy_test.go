package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPolicy() FilterPolicy {
	return FilterPolicy{
		IgnorePatterns:    []string{"*.pyc", "__pycache__", ".git", "build/", "secret?.py", "[ab].md"},
		TrackedExtensions: []string{".py", ".go", ".md"},
		MaxFileSize:       1024,
	}
}

func TestShouldTrack_Extensions(t *testing.T) {
	policy := testPolicy()

	assert.True(t, policy.ShouldTrack("main.py"))
	assert.True(t, policy.ShouldTrack("pkg/server.go"))
	assert.False(t, policy.ShouldTrack("image.png"))
	assert.False(t, policy.ShouldTrack("Makefile"))
}

// The ignore check always wins over the extension allowlist.
func TestShouldTrack_IgnorePrecedence(t *testing.T) {
	policy := testPolicy()

	assert.False(t, policy.ShouldTrack("build/output.py"))
	assert.False(t, policy.ShouldTrack("cached.pyc"))
}

// Patterns match the bare filename as well as the relative path.
func TestShouldTrack_BasenameMatch(t *testing.T) {
	policy := testPolicy()

	assert.False(t, policy.ShouldTrack("deep/nested/cached.pyc"))
	assert.False(t, policy.ShouldTrack("pkg/secret1.py"))
	assert.False(t, policy.ShouldTrack("a.md"))
	assert.True(t, policy.ShouldTrack("c.md"))
}

func TestShouldSkipDir(t *testing.T) {
	policy := testPolicy()

	assert.True(t, policy.ShouldSkipDir("__pycache__"))
	assert.True(t, policy.ShouldSkipDir("src/__pycache__"))
	assert.True(t, policy.ShouldSkipDir(".git"))
	assert.True(t, policy.ShouldSkipDir("build"))
	assert.False(t, policy.ShouldSkipDir("src"))
}
