package models

// TrackedFile holds the state of one eligible file observed during a scan.
// Content is held only for the duration of a single scan pass; it is carried
// into outgoing change records but never persisted in the manifest.
type TrackedFile struct {
	RelativePath string
	Hash         string
	Size         int64
	Content      []byte
}

// ManifestEntry is the persisted per-file record of the last snapshot.
type ManifestEntry struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// ChangeType classifies a single entry of a computed diff.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeModified ChangeType = "modified"
	ChangeDeleted  ChangeType = "deleted"
)

// ChangeRecord is one file-level change since the last snapshot. Field names
// match the wire format the snapshot server expects.
type ChangeRecord struct {
	Path         string     `json:"path"`
	Type         ChangeType `json:"type"`
	Hash         string     `json:"hash,omitempty"`
	Content      string     `json:"content,omitempty"`
	Size         int64      `json:"size,omitempty"`
	PreviousHash string     `json:"previous_hash,omitempty"`
	LinesAdded   int        `json:"lines_added"`
	LinesRemoved int        `json:"lines_removed"`
}

// SessionState correlates a pre-prompt snapshot with its matching post-prompt
// snapshot. It is persisted between the two hook invocations; its absence
// means no pre-prompt snapshot was taken for the current interaction.
type SessionState struct {
	PreSnapshotID int64  `json:"pre_snapshot_id"`
	Prompt        string `json:"prompt"`
	SessionID     string `json:"claude_session_id"`
	StartedAt     string `json:"started_at"`
}
