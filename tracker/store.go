package tracker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/codetrackhq/codetrack/tracker/models"
	"github.com/zeebo/xxh3"
)

const (
	manifestFileName = "last_snapshot.json"
	sessionFileName  = "current_session.json"
)

// SnapshotStore persists the snapshot manifest and the pending-session
// correlation record under the project cache directory. The baseline file is
// an unprotected shared resource between overlapping invocations; the
// surrounding hook workflow serializes access, and last-write-wins otherwise.
type SnapshotStore struct {
	cacheDir string
	mutex    sync.Mutex
}

// NewSnapshotStore creates a store rooted at cacheDir, creating the directory
// on demand.
func NewSnapshotStore(cacheDir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &SnapshotStore{cacheDir: cacheDir}, nil
}

// LoadBaseline reads the persisted manifest. A missing or unparseable
// manifest is reported as ok=false, meaning "no prior baseline"; it is never
// an error.
func (s *SnapshotStore) LoadBaseline() (map[string]models.ManifestEntry, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := os.ReadFile(filepath.Join(s.cacheDir, manifestFileName))
	if err != nil {
		return nil, false
	}

	var manifest map[string]models.ManifestEntry
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, false
	}
	return manifest, true
}

// PersistBaseline overwrites the manifest with the given scan result, content
// dropped. Callers must report the diff before advancing the baseline;
// persisting first would silently lose an unreported change on the next
// cycle. Rewriting is skipped when the manifest signature is unchanged.
func (s *SnapshotStore) PersistBaseline(current map[string]models.TrackedFile) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	manifest := make(map[string]models.ManifestEntry, len(current))
	for path, file := range current {
		manifest[path] = models.ManifestEntry{Hash: file.Hash, Size: file.Size}
	}

	if previous, ok := s.readManifestLocked(); ok {
		if manifestSignature(previous) == manifestSignature(manifest) {
			return nil
		}
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.cacheDir, manifestFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// BaselineAge returns how long ago the baseline was last persisted, or
// ok=false when there is no baseline.
func (s *SnapshotStore) BaselineAge() (time.Duration, bool) {
	info, err := os.Stat(filepath.Join(s.cacheDir, manifestFileName))
	if err != nil {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

// LoadSession reads the pending-session record left behind by a pre-prompt
// snapshot. ok=false means no interaction is in flight.
func (s *SnapshotStore) LoadSession() (*models.SessionState, bool) {
	data, err := os.ReadFile(filepath.Join(s.cacheDir, sessionFileName))
	if err != nil {
		return nil, false
	}

	var state models.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false
	}
	return &state, true
}

// SaveSession persists the pending-session record for the matching
// post-prompt invocation.
func (s *SnapshotStore) SaveSession(state models.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.cacheDir, sessionFileName), data, 0644); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

// ClearSession removes the pending-session record. Missing files are fine.
func (s *SnapshotStore) ClearSession() {
	_ = os.Remove(filepath.Join(s.cacheDir, sessionFileName))
}

// Reset removes the baseline manifest and any pending session state. The next
// scan will behave as a first run.
func (s *SnapshotStore) Reset() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := os.Remove(filepath.Join(s.cacheDir, manifestFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove manifest: %w", err)
	}
	_ = os.Remove(filepath.Join(s.cacheDir, sessionFileName))
	return nil
}

func (s *SnapshotStore) readManifestLocked() (map[string]models.ManifestEntry, bool) {
	data, err := os.ReadFile(filepath.Join(s.cacheDir, manifestFileName))
	if err != nil {
		return nil, false
	}
	var manifest map[string]models.ManifestEntry
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, false
	}
	return manifest, true
}

// manifestSignature produces a fast order-independent fingerprint of a
// manifest, used to detect when a rewrite can be skipped.
func manifestSignature(manifest map[string]models.ManifestEntry) uint64 {
	paths := make([]string, 0, len(manifest))
	for path := range manifest {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	hasher := xxh3.New()
	for _, path := range paths {
		entry := manifest[path]
		_, _ = hasher.WriteString(path)
		_, _ = hasher.WriteString("\x00")
		_, _ = hasher.WriteString(entry.Hash)
		_, _ = hasher.WriteString("\n")
	}
	return hasher.Sum64()
}
