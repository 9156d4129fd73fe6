package file

import (
	"time"

	"github.com/google/uuid"
)

type (
	File struct {
		Seq       int64
		UUID      uuid.UUID
		OwnerID   uuid.UUID
		Name      string
		Kind      string
		ParentID  *uuid.UUID
		IsPublic  bool
		LocalPath *string

		CreatedAt time.Time
	}
	Files []*File
)
