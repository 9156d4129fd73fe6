package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/domain/file"
	"files-manager-api/internal/domain/user"
)

const pingTimeout = 2 * time.Second

// Ping probes one backend.
type Ping func(ctx context.Context) error

type StatusService struct {
	redis          Ping
	db             Ping
	storage        Ping
	userRepository user.Repository
	fileRepository file.Repository
}

func NewStatusService(
	redis Ping,
	db Ping,
	storage Ping,
	userRepository user.Repository,
	fileRepository file.Repository,
) ports.StatusService {
	return &StatusService{
		redis:          redis,
		db:             db,
		storage:        storage,
		userRepository: userRepository,
		fileRepository: fileRepository,
	}
}

// Status probes every backend concurrently.
func (ss *StatusService) Status(ctx context.Context) ports.Status {
	var st ports.Status

	var g errgroup.Group
	g.Go(func() error { st.Redis = alive(ctx, ss.redis); return nil })
	g.Go(func() error { st.DB = alive(ctx, ss.db); return nil })
	g.Go(func() error { st.Storage = alive(ctx, ss.storage); return nil })
	_ = g.Wait()

	return st
}

func (ss *StatusService) Stats(ctx context.Context) (ports.Stats, error) {
	var (
		st ports.Stats
		g  errgroup.Group
	)
	g.Go(func() (err error) {
		st.Users, err = ss.userRepository.CountUsers(ctx)
		return err
	})
	g.Go(func() (err error) {
		st.Files, err = ss.fileRepository.CountFiles(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return ports.Stats{}, err
	}
	return st, nil
}

func alive(ctx context.Context, ping Ping) bool {
	if ping == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return ping(ctx) == nil
}
