package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"

	"files-manager-api/internal/domain/file"
)

// FileRepository is a read-through LRU over file metadata lookups by id.
// Entries expire after ttl. Every write through this decorator refreshes or
// drops the entry, other instances may serve a stale entry until ttl passes.
type FileRepository struct {
	file.Repository

	lru     *expirable.LRU[uuid.UUID, file.File]
	lookups *prometheus.CounterVec
}

func NewFileRepository(next file.Repository, size int, ttl time.Duration, lookups *prometheus.CounterVec) *FileRepository {
	return &FileRepository{
		Repository: next,
		lru:        expirable.NewLRU[uuid.UUID, file.File](size, nil, ttl),
		lookups:    lookups,
	}
}

func (c *FileRepository) get(id uuid.UUID) (*file.File, bool) {
	f, ok := c.lru.Get(id)
	if !ok {
		c.lookups.WithLabelValues("miss").Inc()
		return nil, false
	}
	c.lookups.WithLabelValues("hit").Inc()
	return &f, true
}

func (c *FileRepository) put(f *file.File) {
	if f != nil {
		c.lru.Add(f.UUID, *f)
	}
}

func (c *FileRepository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	f, err := c.Repository.CreateFile(ctx, req)
	if err != nil {
		return nil, err
	}
	c.put(f)
	return f, nil
}

func (c *FileRepository) FetchFileByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	if f, ok := c.get(id); ok {
		return f, nil
	}
	f, err := c.Repository.FetchFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.put(f)
	return f, nil
}

// FetchOwnedFile serves from cache when the entry exists, ownership never changes.
func (c *FileRepository) FetchOwnedFile(ctx context.Context, id, ownerID uuid.UUID) (*file.File, error) {
	if f, ok := c.get(id); ok {
		if f.OwnerID != ownerID {
			return nil, nil
		}
		return f, nil
	}
	f, err := c.Repository.FetchOwnedFile(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	c.put(f)
	return f, nil
}

func (c *FileRepository) SetPublic(ctx context.Context, id, ownerID uuid.UUID, isPublic bool) (*file.File, error) {
	f, err := c.Repository.SetPublic(ctx, id, ownerID, isPublic)
	if err != nil {
		c.lru.Remove(id)
		return nil, err
	}
	if f == nil {
		return nil, nil
	}
	c.put(f)
	return f, nil
}

func (c *FileRepository) Len() int { return c.lru.Len() }
