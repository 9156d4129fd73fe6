package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"files-manager-api/internal/domain/job"
	"files-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) job.Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateJob(ctx context.Context, j job.DerivationJob) error {
	_, err := r.db.Exec(ctx, InsertJob, j.ID, j.FileID, j.OwnerID, string(job.StatusPending))
	return err
}

func (r *Repository) MarkProcessing(ctx context.Context, id uuid.UUID, attempt int) error {
	_, err := r.db.Exec(ctx, UpdateProcessing, id, string(job.StatusProcessing), attempt)
	return err
}

func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, UpdateStatus, id, string(job.StatusCompleted), "")
	return err
}

func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, status job.Status, reason string) error {
	_, err := r.db.Exec(ctx, UpdateStatus, id, string(status), reason)
	return err
}

func (r *Repository) FetchJob(ctx context.Context, id uuid.UUID) (*job.Record, error) {
	var (
		rec    job.Record
		status string
	)
	err := r.db.QueryRow(ctx, SelectJob, id).Scan(
		&rec.ID,
		&rec.FileID,
		&rec.OwnerID,
		&status,
		&rec.Attempts,
		&rec.LastError,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.Status = job.Status(status)

	return &rec, nil
}
