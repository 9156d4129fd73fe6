package storage

import (
	"errors"

	"files-manager-api/internal/application/ports"
)

var (
	ErrNotExist    = ports.ErrBlobNotExist
	ErrInvalidPath = errors.New("blob path outside storage root")
)
