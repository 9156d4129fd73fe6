package job

import (
	"context"

	"github.com/google/uuid"
)

// Repository tracks the status of derivation jobs. It never decides delivery.
type Repository interface {
	CreateJob(ctx context.Context, j DerivationJob) error
	MarkProcessing(ctx context.Context, id uuid.UUID, attempt int) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, status Status, reason string) error
	FetchJob(ctx context.Context, id uuid.UUID) (*Record, error)
}
