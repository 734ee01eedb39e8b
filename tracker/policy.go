package tracker

import (
	"path/filepath"
	"strings"
)

// FilterPolicy controls which files under the project root are tracked.
type FilterPolicy struct {
	IgnorePatterns    []string
	TrackedExtensions []string
	MaxFileSize       int64
}

// ShouldTrack reports whether a file with the given root-relative path is
// eligible for tracking. Ignore patterns are shell globs matched against both
// the relative path and the bare filename; a match on any pattern excludes the
// file regardless of its extension.
func (p FilterPolicy) ShouldTrack(relativePath string) bool {
	name := filepath.Base(relativePath)

	for _, pattern := range p.IgnorePatterns {
		if matchPattern(pattern, relativePath) || matchPattern(pattern, name) {
			return false
		}
	}

	ext := filepath.Ext(relativePath)
	for _, tracked := range p.TrackedExtensions {
		if ext == tracked {
			return true
		}
	}

	return false
}

// ShouldSkipDir reports whether a directory matches an ignore pattern, so the
// walk can prune its whole subtree instead of testing every file below it.
func (p FilterPolicy) ShouldSkipDir(relativePath string) bool {
	name := filepath.Base(relativePath)
	for _, pattern := range p.IgnorePatterns {
		if matchPattern(pattern, relativePath) || matchPattern(pattern, name) {
			return true
		}
		// A "dir/" pattern names the directory itself without the slash.
		if strings.TrimSuffix(pattern, "/") == relativePath || strings.TrimSuffix(pattern, "/") == name {
			return true
		}
	}
	return false
}

// matchPattern applies shell-glob matching (*, ?, [seq]). Patterns ending in
// "/" ignore a whole directory subtree, mirroring common ignore-file usage.
func matchPattern(pattern, path string) bool {
	if ok, err := filepath.Match(pattern, path); err == nil && ok {
		return true
	}
	if strings.HasSuffix(pattern, "/") && strings.HasPrefix(path, pattern) {
		return true
	}
	return false
}
