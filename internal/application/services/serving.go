package services

import (
	"context"
	"errors"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"files-manager-api/internal/application/ports"
	domain "files-manager-api/internal/domain/file"
)

const defaultMimeType = "application/octet-stream"

type ServingService struct {
	fileRepository domain.Repository
	storage        ports.BlobStorage
}

func NewServingService(
	fileRepository domain.Repository,
	storage ports.BlobStorage,
) ports.ServingService {
	return &ServingService{
		fileRepository: fileRepository,
		storage:        storage,
	}
}

// Content resolves a file for caller. A missing file, a private file of
// someone else and a missing blob all yield ErrNotFound.
func (ss *ServingService) Content(ctx context.Context, id uuid.UUID, caller *uuid.UUID) ([]byte, string, error) {
	f, err := ss.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if f == nil {
		return nil, "", domain.ErrNotFound
	}
	if !f.IsPublic && (caller == nil || *caller != f.OwnerID) {
		return nil, "", domain.ErrNotFound
	}
	if !f.Kind.HasContent() {
		return nil, "", domain.ErrNoContent
	}

	b, err := ss.storage.Read(ctx, f.LocalPath)
	if err != nil {
		if errors.Is(err, ports.ErrBlobNotExist) {
			return nil, "", domain.ErrNotFound
		}
		return nil, "", err
	}

	return b, MimeType(f.Name), nil
}

// MimeType guesses the content type from the extension of name.
func MimeType(name string) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return defaultMimeType
}
