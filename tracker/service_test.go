package tracker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	clientmodels "github.com/codetrackhq/codetrack/client/models"
	"github.com/codetrackhq/codetrack/config"
	"github.com/codetrackhq/codetrack/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient records submissions instead of talking to a server.
type fakeClient struct {
	nextSnapshotID    int64
	nextInteractionID int64
	failSnapshots     bool
	failInteractions  bool

	snapshots    []clientmodels.SnapshotRequest
	interactions []clientmodels.InteractionRequest
}

func (f *fakeClient) Register(ctx context.Context, req clientmodels.RegisterRequest) (*clientmodels.AuthResponse, error) {
	return &clientmodels.AuthResponse{APIKey: "key"}, nil
}

func (f *fakeClient) Login(ctx context.Context, req clientmodels.LoginRequest) (*clientmodels.AuthResponse, error) {
	return &clientmodels.AuthResponse{APIKey: "key"}, nil
}

func (f *fakeClient) CreateProject(ctx context.Context, req clientmodels.CreateProjectRequest) (int64, error) {
	return 1, nil
}

func (f *fakeClient) SubmitChanges(ctx context.Context, req clientmodels.SnapshotRequest) (int64, error) {
	if f.failSnapshots {
		return 0, errors.New("server unavailable")
	}
	f.snapshots = append(f.snapshots, req)
	f.nextSnapshotID++
	return f.nextSnapshotID, nil
}

func (f *fakeClient) SubmitInteraction(ctx context.Context, req clientmodels.InteractionRequest) (int64, error) {
	if f.failInteractions {
		return 0, errors.New("server unavailable")
	}
	f.interactions = append(f.interactions, req)
	f.nextInteractionID++
	return f.nextInteractionID, nil
}

func (f *fakeClient) UserStats(ctx context.Context) (*clientmodels.UserStats, error) {
	return &clientmodels.UserStats{}, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig
	cfg.TrackExtensions = []string{".py"}
	cfg.AutoSnapshot.MinIntervalSeconds = 0
	return &cfg
}

func testService(t *testing.T, cfg *config.Config, creds *credentials.Credentials) (*Service, *fakeClient, string) {
	t.Helper()
	root := t.TempDir()
	store, err := NewSnapshotStore(filepath.Join(root, ".codetracker", "cache"))
	require.NoError(t, err)

	fake := &fakeClient{}
	service := NewService(cfg, creds, NewEngine(root), store, fake)
	return service, fake, root
}

func authedCreds() *credentials.Credentials {
	return &credentials.Credentials{APIKey: "key", Username: "dev", CurrentProjectID: 7}
}

func TestPrePromptSnapshot_FirstRun(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	id, ok := service.PrePromptSnapshot(context.Background(), "add a cli flag", "sess-1", "2026-08-31T10:00:00Z")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	require.Len(t, fake.snapshots, 1)
	snapshot := fake.snapshots[0]
	assert.Equal(t, int64(7), snapshot.ProjectID)
	assert.Equal(t, "[AUTO-PRE] add a cli flag", snapshot.Message)
	assert.Equal(t, "sess-1", snapshot.SessionID)
	require.Len(t, snapshot.Changes, 1)

	// The baseline advanced and the session record is in place for the
	// post-prompt invocation.
	_, hasBaseline := service.Store.LoadBaseline()
	assert.True(t, hasBaseline)
	state, ok := service.Store.LoadSession()
	require.True(t, ok)
	assert.Equal(t, int64(1), state.PreSnapshotID)
	assert.Equal(t, "add a cli flag", state.Prompt)
	assert.Equal(t, "sess-1", state.SessionID)
	assert.Equal(t, "2026-08-31T10:00:00Z", state.StartedAt)
}

func TestPrePromptSnapshot_SkippedWithoutCredentials(t *testing.T) {
	service, fake, root := testService(t, testConfig(), &credentials.Credentials{})
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "do things", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

func TestPrePromptSnapshot_SkippedWithoutProject(t *testing.T) {
	service, fake, root := testService(t, testConfig(), &credentials.Credentials{APIKey: "key"})
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "do things", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

func TestPrePromptSnapshot_SkipPatterns(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "Explain this function to me", "s", "")
	assert.False(t, ok)
	_, ok = service.PrePromptSnapshot(context.Background(), "what is a goroutine", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

func TestPrePromptSnapshot_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.AutoSnapshot.Enabled = false
	service, fake, root := testService(t, cfg, authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

func TestPrePromptSnapshot_MinInterval(t *testing.T) {
	cfg := testConfig()
	cfg.AutoSnapshot.MinIntervalSeconds = 3600
	service, fake, root := testService(t, cfg, authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	// A freshly persisted baseline is younger than the interval.
	current, err := service.Engine.ScanTrackedFiles(service.Policy())
	require.NoError(t, err)
	require.NoError(t, service.Store.PersistBaseline(current))

	writeFile(t, root, "other.py", "x = 1\n")
	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

func TestPrePromptSnapshot_NoChangesOnlyOnChanges(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	current, err := service.Engine.ScanTrackedFiles(service.Policy())
	require.NoError(t, err)
	require.NoError(t, service.Store.PersistBaseline(current))

	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "s", "")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
}

// When the report fails, the baseline must not advance: the change would
// otherwise be lost on the next cycle.
func TestPrePromptSnapshot_FailedReportKeepsBaseline(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	fake.failSnapshots = true
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "s", "")
	assert.False(t, ok)

	_, hasBaseline := service.Store.LoadBaseline()
	assert.False(t, hasBaseline)
	_, hasSession := service.Store.LoadSession()
	assert.False(t, hasSession)

	// Once the server is back, the same changes are still pending.
	fake.failSnapshots = false
	changes, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestPostPromptSnapshot_NoSessionIsNoOp(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PostPromptSnapshot(context.Background(), "2026-08-31T10:00:30Z")
	assert.False(t, ok)
	assert.Empty(t, fake.snapshots)
	assert.Empty(t, fake.interactions)
}

func TestPostPromptSnapshot_RecordsInteraction(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "sess-1", "2026-08-31T10:00:00Z")
	require.True(t, ok)

	// The assistant edits a file and adds a new one.
	writeFile(t, root, "main.py", "print('hi')\nprint('bye')\n")
	writeFile(t, root, "feature.py", "def feature():\n    pass\n")

	id, ok := service.PostPromptSnapshot(context.Background(), "2026-08-31T10:00:30Z")
	require.True(t, ok)
	assert.Equal(t, int64(1), id)

	require.Len(t, fake.snapshots, 2)
	post := fake.snapshots[1]
	assert.Equal(t, "[AUTO-POST] add a feature", post.Message)
	assert.Equal(t, int64(1), post.ParentSnapshotID)
	assert.Len(t, post.Changes, 2)

	require.Len(t, fake.interactions, 1)
	interaction := fake.interactions[0]
	assert.Equal(t, int64(7), interaction.ProjectID)
	assert.Equal(t, "add a feature", interaction.PromptText)
	assert.Equal(t, int64(1), interaction.PreSnapshotID)
	assert.Equal(t, int64(2), interaction.PostSnapshotID)
	assert.Equal(t, 2, interaction.FilesModified)
	assert.Equal(t, 30.0, interaction.DurationSeconds)

	// Session consumed, baseline advanced.
	_, hasSession := service.Store.LoadSession()
	assert.False(t, hasSession)
	changes, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestPostPromptSnapshot_FailedInteractionKeepsState(t *testing.T) {
	service, fake, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	_, ok := service.PrePromptSnapshot(context.Background(), "add a feature", "sess-1", "2026-08-31T10:00:00Z")
	require.True(t, ok)

	writeFile(t, root, "main.py", "print('changed')\n")
	fake.failInteractions = true

	_, ok = service.PostPromptSnapshot(context.Background(), "2026-08-31T10:00:30Z")
	assert.False(t, ok)

	// The baseline did not advance and the session is still pending.
	_, hasSession := service.Store.LoadSession()
	assert.True(t, hasSession)
	changes, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Len(t, changes, 1)
}

func TestDurationSeconds(t *testing.T) {
	assert.Equal(t, 30.0, durationSeconds("2026-08-31T10:00:00Z", "2026-08-31T10:00:30Z"))
	assert.Equal(t, 0.0, durationSeconds("", "2026-08-31T10:00:30Z"))
	assert.Equal(t, 0.0, durationSeconds("garbage", "2026-08-31T10:00:30Z"))
	assert.Equal(t, 0.0, durationSeconds("2026-08-31T10:00:00Z", "garbage"))
}

func TestTruncatePrompt(t *testing.T) {
	assert.Equal(t, "short", truncatePrompt("short"))

	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, '가')
	}
	truncated := truncatePrompt(string(long))
	assert.Equal(t, 100, len([]rune(truncated)))
}

func TestMatchesSkipPattern(t *testing.T) {
	patterns := []string{"^help", "^what is", "^explain"}

	assert.True(t, matchesSkipPattern("help me out", patterns))
	assert.True(t, matchesSkipPattern("Explain the parser", patterns))
	assert.False(t, matchesSkipPattern("refactor the helper", patterns))
	assert.False(t, matchesSkipPattern("add help text", patterns))
}

func TestPendingChangesDoesNotAdvanceBaseline(t *testing.T) {
	service, _, root := testService(t, testConfig(), authedCreds())
	writeFile(t, root, "main.py", "print('hi')\n")

	first, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Len(t, second, 1)

	_ = os.Remove(filepath.Join(root, "main.py"))
	third, err := service.PendingChanges()
	require.NoError(t, err)
	assert.Empty(t, third)
}
