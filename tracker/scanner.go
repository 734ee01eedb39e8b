package tracker

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codetrackhq/codetrack/tracker/models"
)

// Engine walks a project tree and turns it into tracked-file state.
type Engine struct {
	Root string
}

// NewEngine initializes an engine rooted at the given project directory.
func NewEngine(root string) *Engine {
	return &Engine{Root: root}
}

// ScanTrackedFiles enumerates every regular file under the root, applies the
// filter policy and returns the eligible files keyed by root-relative path.
//
// Individual file errors (permission denied, a file deleted mid-walk) are
// swallowed: the file is simply absent from the result and the scan continues.
// The scan as a whole only fails when the root itself is unreadable.
func (e *Engine) ScanTrackedFiles(policy FilterPolicy) (map[string]models.TrackedFile, error) {
	tracked := make(map[string]models.TrackedFile)

	err := filepath.WalkDir(e.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == e.Root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == e.Root {
			return nil
		}

		relativePath, err := filepath.Rel(e.Root, path)
		if err != nil {
			return nil
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if d.IsDir() {
			if policy.ShouldSkipDir(relativePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !policy.ShouldTrack(relativePath) {
			return nil
		}

		if file, ok := scanOne(path, relativePath, policy.MaxFileSize); ok {
			tracked[relativePath] = file
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return tracked, nil
}

// scanOne stats, reads and fingerprints a single file. The ok result is false
// for oversized or unreadable files; no error ever escapes this boundary.
func scanOne(path, relativePath string, maxSize int64) (models.TrackedFile, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return models.TrackedFile{}, false
	}
	if maxSize > 0 && info.Size() > maxSize {
		return models.TrackedFile{}, false
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return models.TrackedFile{}, false
	}

	sum := sha256.Sum256(content)

	return models.TrackedFile{
		RelativePath: relativePath,
		Hash:         hex.EncodeToString(sum[:]),
		Size:         info.Size(),
		Content:      content,
	}, true
}
