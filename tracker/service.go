package tracker

import (
	"context"
	"strings"
	"time"

	"github.com/codetrackhq/codetrack/client/contracts"
	clientmodels "github.com/codetrackhq/codetrack/client/models"
	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/credentials"
	"github.com/codetrackhq/codetrack/tracker/models"
)

// Service drives the snapshot engine around AI interactions: it decides when
// a snapshot is warranted, reports the change set, and only then advances the
// baseline. Both entry points sit on the automated hook path and therefore
// never return an error, only (id, ok).
type Service struct {
	Config *config.Config
	Creds  *credentials.Credentials
	Engine *Engine
	Store  *SnapshotStore
	Client contracts.ISnapshotClient
}

// NewService wires a service for the given project root.
func NewService(cfg *config.Config, creds *credentials.Credentials, engine *Engine, store *SnapshotStore, client contracts.ISnapshotClient) *Service {
	return &Service{
		Config: cfg,
		Creds:  creds,
		Engine: engine,
		Store:  store,
		Client: client,
	}
}

// Policy builds the filter policy from the loaded configuration.
func (s *Service) Policy() FilterPolicy {
	return FilterPolicy{
		IgnorePatterns:    s.Config.IgnorePatterns,
		TrackedExtensions: s.Config.TrackExtensions,
		MaxFileSize:       s.Config.MaxFileSize,
	}
}

// PendingChanges scans the project and diffs it against the current baseline
// without reporting or advancing anything. Used by the changes command.
func (s *Service) PendingChanges() ([]models.ChangeRecord, error) {
	current, err := s.Engine.ScanTrackedFiles(s.Policy())
	if err != nil {
		return nil, err
	}
	baseline, ok := s.Store.LoadBaseline()
	return ComputeDiff(current, baseline, ok), nil
}

// PrePromptSnapshot captures the project state before an AI interaction and
// leaves a session record behind for the matching post-prompt invocation.
// ok=false covers every skip and failure condition; none of them may disturb
// the surrounding workflow.
func (s *Service) PrePromptSnapshot(ctx context.Context, prompt, sessionID, timestamp string) (int64, bool) {
	if !s.Creds.Authenticated() || !s.Creds.HasProject() {
		return 0, false
	}

	auto := s.Config.AutoSnapshot
	if !auto.Enabled {
		return 0, false
	}
	if matchesSkipPattern(prompt, auto.SkipPatterns) {
		return 0, false
	}
	if auto.MinIntervalSeconds > 0 {
		if age, ok := s.Store.BaselineAge(); ok && age < time.Duration(auto.MinIntervalSeconds)*time.Second {
			return 0, false
		}
	}

	current, err := s.Engine.ScanTrackedFiles(s.Policy())
	if err != nil {
		return 0, false
	}
	baseline, hasBaseline := s.Store.LoadBaseline()
	changes := ComputeDiff(current, baseline, hasBaseline)

	if len(changes) == 0 && auto.OnlyOnChanges {
		return 0, false
	}

	snapshotID, err := s.Client.SubmitChanges(ctx, clientmodels.SnapshotRequest{
		ProjectID: s.Creds.CurrentProjectID,
		Message:   "[AUTO-PRE] " + truncatePrompt(prompt),
		Changes:   changes,
		SessionID: sessionID,
	})
	if err != nil {
		return 0, false
	}

	// The diff is durably reported; only now may the baseline advance.
	_ = s.Store.PersistBaseline(current)
	_ = s.Store.SaveSession(models.SessionState{
		PreSnapshotID: snapshotID,
		Prompt:        prompt,
		SessionID:     sessionID,
		StartedAt:     timestamp,
	})

	return snapshotID, true
}

// PostPromptSnapshot captures the project state after an AI interaction,
// links it to the pre-prompt snapshot via the pending session record, and
// records the interaction. Without that record it does nothing.
func (s *Service) PostPromptSnapshot(ctx context.Context, endedAt string) (int64, bool) {
	state, ok := s.Store.LoadSession()
	if !ok {
		return 0, false
	}
	if !s.Creds.Authenticated() || !s.Creds.HasProject() {
		return 0, false
	}

	current, err := s.Engine.ScanTrackedFiles(s.Policy())
	if err != nil {
		return 0, false
	}
	baseline, hasBaseline := s.Store.LoadBaseline()
	changes := ComputeDiff(current, baseline, hasBaseline)

	if len(changes) == 0 && s.Config.AutoSnapshot.OnlyOnChanges {
		return 0, false
	}

	postSnapshotID, err := s.Client.SubmitChanges(ctx, clientmodels.SnapshotRequest{
		ProjectID:        s.Creds.CurrentProjectID,
		Message:          "[AUTO-POST] " + truncatePrompt(state.Prompt),
		Changes:          changes,
		SessionID:        state.SessionID,
		ParentSnapshotID: state.PreSnapshotID,
	})
	if err != nil {
		return 0, false
	}

	interactionID, err := s.Client.SubmitInteraction(ctx, clientmodels.InteractionRequest{
		ProjectID:       s.Creds.CurrentProjectID,
		PromptText:      state.Prompt,
		SessionID:       state.SessionID,
		PreSnapshotID:   state.PreSnapshotID,
		PostSnapshotID:  postSnapshotID,
		FilesModified:   len(changes),
		DurationSeconds: durationSeconds(state.StartedAt, endedAt),
	})
	if err != nil {
		return 0, false
	}

	_ = s.Store.PersistBaseline(current)
	s.Store.ClearSession()

	return interactionID, true
}

// matchesSkipPattern reports whether the prompt starts with one of the
// configured skip prefixes. The leading "^" of a pattern is decorative.
func matchesSkipPattern(prompt string, patterns []string) bool {
	lowered := strings.ToLower(prompt)
	for _, pattern := range patterns {
		prefix := strings.TrimPrefix(strings.ToLower(pattern), "^")
		if prefix != "" && strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// truncatePrompt caps the snapshot message at 100 characters of prompt text.
func truncatePrompt(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= 100 {
		return prompt
	}
	return string(runes[:100])
}

// durationSeconds computes the interaction duration from the hook timestamps.
// Unparseable timestamps yield 0 rather than an error.
func durationSeconds(startedAt, endedAt string) float64 {
	if startedAt == "" || endedAt == "" {
		return 0
	}
	start, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return 0
	}
	end, err := time.Parse(time.RFC3339, endedAt)
	if err != nil {
		return 0
	}
	return end.Sub(start).Seconds()
}
