package file

import (
	"github.com/google/uuid"

	"files-manager-api/internal/domain/file"
)

type (
	File struct {
		UUID      uuid.UUID      `json:"id"`
		UserID    uuid.UUID      `json:"userId"`
		Name      string         `json:"name"`
		Type      file.Kind      `json:"type"`
		IsPublic  bool           `json:"isPublic"`
		ParentID  file.ParentRef `json:"parentId"`
		LocalPath string         `json:"localPath,omitempty"`
	}
	Files []File
)
