package ports

import (
	"context"

	"github.com/google/uuid"

	"files-manager-api/internal/domain/file"
)

type FileService interface {
	Upload(ctx context.Context, ownerID uuid.UUID, in file.Upload) (*file.File, error)
	FindFile(ctx context.Context, ownerID, id uuid.UUID) (*file.File, error)
	FindFiles(ctx context.Context, ownerID uuid.UUID, parent file.ParentRef, page int) (file.Files, error)
	SetPublic(ctx context.Context, ownerID, id uuid.UUID, isPublic bool) (*file.File, error)
}

type ServingService interface {
	// Content returns the blob of a file and its MIME type. caller is nil for
	// anonymous requests.
	Content(ctx context.Context, id uuid.UUID, caller *uuid.UUID) ([]byte, string, error)
}
