package contracts

import (
	"context"

	"github.com/codetrackhq/codetrack/client/models"
)

// ISnapshotClient is the boundary to the remote snapshot-storage service.
// Every call may fail with a network or auth error; automated callers treat
// failure as "no snapshot produced" and continue.
type ISnapshotClient interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	CreateProject(ctx context.Context, req models.CreateProjectRequest) (int64, error)
	SubmitChanges(ctx context.Context, req models.SnapshotRequest) (int64, error)
	SubmitInteraction(ctx context.Context, req models.InteractionRequest) (int64, error)
	UserStats(ctx context.Context) (*models.UserStats, error)
}
