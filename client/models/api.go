package models

import trackermodels "github.com/codetrackhq/codetrack/tracker/models"

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Organization string `json:"organization,omitempty"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse carries the opaque API key issued by the server.
type AuthResponse struct {
	APIKey string `json:"api_key"`
	Email  string `json:"email"`
}

// CreateProjectRequest registers a local project path with the server.
type CreateProjectRequest struct {
	ProjectName string `json:"project_name"`
	ProjectPath string `json:"project_path"`
	Description string `json:"description,omitempty"`
}

// SnapshotRequest submits a computed change set.
type SnapshotRequest struct {
	ProjectID        int64                        `json:"project_id"`
	Message          string                       `json:"message"`
	Changes          []trackermodels.ChangeRecord `json:"changes"`
	SessionID        string                       `json:"claude_session_id,omitempty"`
	ParentSnapshotID int64                        `json:"parent_snapshot_id,omitempty"`
}

// InteractionRequest records one AI interaction linking two snapshots.
type InteractionRequest struct {
	ProjectID       int64   `json:"project_id"`
	PromptText      string  `json:"prompt_text"`
	SessionID       string  `json:"claude_session_id,omitempty"`
	PreSnapshotID   int64   `json:"pre_snapshot_id"`
	PostSnapshotID  int64   `json:"post_snapshot_id"`
	FilesModified   int     `json:"files_modified"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// StorageStats summarizes server-side storage for the status report.
type StorageStats struct {
	UniqueVersions   int     `json:"unique_versions"`
	TotalSizeMB      float64 `json:"total_size_mb"`
	CompressedSizeMB float64 `json:"compressed_size_mb"`
	CompressionRatio float64 `json:"compression_ratio"`
}

// ToolUsage counts interactions per AI tool.
type ToolUsage struct {
	AITool string `json:"ai_tool"`
	Count  int    `json:"count"`
}

// UserStats is the aggregate report behind the status command.
type UserStats struct {
	TotalProjects     int          `json:"total_projects"`
	TotalSnapshots    int          `json:"total_snapshots"`
	TotalInteractions int          `json:"total_interactions"`
	TotalPrompts      int          `json:"total_prompts"`
	AcceptedResponses int          `json:"accepted_responses"`
	AcceptanceRate    float64      `json:"acceptance_rate"`
	Storage           StorageStats `json:"storage"`
	AIToolUsage       []ToolUsage  `json:"ai_tool_usage"`
}

// APIError is the error body returned by the server on non-2xx responses.
type APIError struct {
	Error string `json:"error"`
}
