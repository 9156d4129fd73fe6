package ports

import (
	"context"
	"errors"
)

var (
	ErrBlobNotExist     = errors.New("blob does not exist")
	ErrUnsupportedImage = errors.New("unsupported or corrupt image")
)

type BlobStorage interface {
	// Path maps an opaque blob name to its location in the store.
	Path(name string) string
	Write(ctx context.Context, path string, data []byte) error
	// Read fails with ErrBlobNotExist when nothing is stored at path.
	Read(ctx context.Context, path string) ([]byte, error)
	Exists(ctx context.Context, path string) (bool, error)
	Ping(ctx context.Context) error
}

type Resizer interface {
	// Resize fails with ErrUnsupportedImage for input it cannot or will not decode.
	Resize(src []byte, width int) ([]byte, error)
}
