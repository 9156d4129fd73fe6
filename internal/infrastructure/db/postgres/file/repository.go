package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"files-manager-api/internal/domain/file"
	"files-manager-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) file.Repository {
	return &Repository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.Seq,
		&f.UUID,
		&f.OwnerID,
		&f.Name,
		&f.Kind,
		&f.ParentID,
		&f.IsPublic,
		&f.LocalPath,

		&f.CreatedAt,
	)
	return f, err
}

func (r *Repository) fetchOne(ctx context.Context, query string, args ...any) (*file.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	return r.fetchOne(ctx, InsertFile,
		req.OwnerID, req.Name, string(req.Kind), parentArg(req.ParentID), req.IsPublic, localPathArg(req),
	)
}

func (r *Repository) FetchFileByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	return r.fetchOne(ctx, SelectFileByID, id)
}

func (r *Repository) FetchOwnedFile(ctx context.Context, id, ownerID uuid.UUID) (*file.File, error) {
	return r.fetchOne(ctx, SelectOwnedFile, id, ownerID)
}

func (r *Repository) FetchChildren(
	ctx context.Context,
	parent file.ParentRef,
	ownerID uuid.UUID,
	page int,
) (file.Files, error) {
	if page < 0 {
		page = 0
	}
	if page > file.MaxPage {
		return file.Files{}, nil
	}
	rows, err := r.db.Query(ctx, SelectChildren, ownerID, parentArg(parent), file.PageSize, page*file.PageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(fs), nil
}

func (r *Repository) SetPublic(ctx context.Context, id, ownerID uuid.UUID, isPublic bool) (*file.File, error) {
	return r.fetchOne(ctx, UpdateIsPublic, id, ownerID, isPublic)
}

func (r *Repository) CountFiles(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, CountFiles).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
