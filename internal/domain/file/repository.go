package file

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

const PageSize = 20

// MaxPage is the last page whose offset fits in an int64. Later pages are empty.
const MaxPage = math.MaxInt64 / PageSize

var (
	ErrNotFound        = errors.New("not found")
	ErrParentNotFound  = errors.New("parent not found")
	ErrParentNotFolder = errors.New("parent is not a folder")
	ErrNoContent       = errors.New("a folder doesn't have content")
)

type Repository interface {
	CreateFile(ctx context.Context, req *File) (*File, error)
	FetchFileByID(ctx context.Context, id uuid.UUID) (*File, error)
	FetchOwnedFile(ctx context.Context, id, ownerID uuid.UUID) (*File, error)
	FetchChildren(ctx context.Context, parent ParentRef, ownerID uuid.UUID, page int) (Files, error)
	SetPublic(ctx context.Context, id, ownerID uuid.UUID, isPublic bool) (*File, error)
	CountFiles(ctx context.Context) (int64, error)
}

// ValidateParent checks that a non-root parent resolves to a folder owned by ownerID.
func ValidateParent(ctx context.Context, repo Repository, parent ParentRef, ownerID uuid.UUID) error {
	id, ok := parent.FolderID()
	if !ok {
		return nil
	}
	p, err := repo.FetchOwnedFile(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrParentNotFound
	}
	if p.Kind != KindFolder {
		return ErrParentNotFolder
	}
	return nil
}
