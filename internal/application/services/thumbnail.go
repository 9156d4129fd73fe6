package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/domain/file"
	"files-manager-api/internal/domain/job"
	"files-manager-api/pkg/rmqconsumer"
)

// ThumbnailService derives the fixed-width renditions of uploaded images.
// Rendition paths are deterministic so a redelivered job is safe to repeat.
type ThumbnailService struct {
	logger         *zap.Logger
	fileRepository file.Repository
	jobRepository  job.Repository
	storage        ports.BlobStorage
	resizer        ports.Resizer
	jobCounter     *prometheus.CounterVec
}

func NewThumbnailService(
	logger *zap.Logger,
	fileRepository file.Repository,
	jobRepository job.Repository,
	storage ports.BlobStorage,
	resizer ports.Resizer,
	jobCounter *prometheus.CounterVec,
) *ThumbnailService {
	return &ThumbnailService{
		logger:         logger,
		fileRepository: fileRepository,
		jobRepository:  jobRepository,
		storage:        storage,
		resizer:        resizer,
		jobCounter:     jobCounter,
	}
}

func (ts *ThumbnailService) Handle(ctx context.Context, msg rmqconsumer.Message) error {
	var j job.DerivationJob
	if err := json.Unmarshal(msg.Body, &j); err != nil {
		ts.jobCounter.WithLabelValues("malformed").Inc()
		return rmqconsumer.Permanent(fmt.Errorf("malformed job: %w", err))
	}
	log := ts.logger.With(
		zap.Stringer("job_id", j.ID),
		zap.String("file_id", j.FileID),
		zap.Int("attempt", msg.Attempt),
	)

	if j.ID != uuid.Nil {
		rec, err := ts.jobRepository.FetchJob(ctx, j.ID)
		if err != nil {
			log.Warn("FetchJob() error", zap.Error(err))
		}
		if rec != nil && rec.Status == job.StatusCompleted {
			log.Info("derivation job already completed, skipping")
			return nil
		}
		if err = ts.jobRepository.MarkProcessing(ctx, j.ID, msg.Attempt); err != nil {
			log.Warn("MarkProcessing() error", zap.Error(err))
		}
	}

	if err := ts.derive(ctx, j); err != nil {
		if !rmqconsumer.IsPermanent(err) {
			ts.record(ctx, log, j.ID, job.StatusFailed, err)
			ts.jobCounter.WithLabelValues("failed").Inc()
		}
		return err
	}

	if j.ID != uuid.Nil {
		if err := ts.jobRepository.MarkCompleted(ctx, j.ID); err != nil {
			log.Warn("MarkCompleted() error", zap.Error(err))
		}
	}
	ts.jobCounter.WithLabelValues("completed").Inc()
	log.Info("derivation job completed")

	return nil
}

// DeadLetter records a job that will not be retried anymore.
func (ts *ThumbnailService) DeadLetter(ctx context.Context, msg rmqconsumer.Message, cause error) {
	ts.jobCounter.WithLabelValues("dead").Inc()

	var j job.DerivationJob
	if err := json.Unmarshal(msg.Body, &j); err != nil {
		ts.logger.Error("derivation job dead-lettered", zap.String("message_id", msg.ID), zap.Error(cause))
		return
	}
	log := ts.logger.With(zap.Stringer("job_id", j.ID), zap.String("file_id", j.FileID))
	log.Error("derivation job dead-lettered", zap.Int("attempt", msg.Attempt), zap.Error(cause))

	ts.record(ctx, log, j.ID, job.StatusDead, cause)
}

func (ts *ThumbnailService) record(ctx context.Context, log *zap.Logger, id uuid.UUID, status job.Status, cause error) {
	if id == uuid.Nil {
		return
	}
	if err := ts.jobRepository.MarkFailed(ctx, id, status, cause.Error()); err != nil {
		log.Warn("MarkFailed() error", zap.Error(err))
	}
}

func (ts *ThumbnailService) derive(ctx context.Context, j job.DerivationJob) error {
	if j.FileID == "" {
		return rmqconsumer.Permanent(ErrMissingFileID)
	}
	if j.OwnerID == "" {
		return rmqconsumer.Permanent(ErrMissingUserID)
	}
	fileID, err := uuid.Parse(j.FileID)
	if err != nil {
		return rmqconsumer.Permanent(ErrFileNotFound)
	}
	ownerID, err := uuid.Parse(j.OwnerID)
	if err != nil {
		return rmqconsumer.Permanent(ErrFileNotFound)
	}

	f, err := ts.fileRepository.FetchOwnedFile(ctx, fileID, ownerID)
	if err != nil {
		return err
	}
	if f == nil {
		return rmqconsumer.Permanent(ErrFileNotFound)
	}
	if f.Kind != file.KindImage {
		return rmqconsumer.Permanent(ErrNotAnImage)
	}

	var src []byte
	for _, w := range file.RenditionWidths {
		dst := file.RenditionPath(f.LocalPath, w)

		// renditions are written atomically, an existing one is complete
		ok, err := ts.storage.Exists(ctx, dst)
		if err != nil {
			return err
		}
		if ok {
			continue
		}

		if src == nil {
			if src, err = ts.storage.Read(ctx, f.LocalPath); err != nil {
				if errors.Is(err, ports.ErrBlobNotExist) {
					return rmqconsumer.Permanent(ErrFileNotFound)
				}
				return err
			}
		}

		out, err := ts.resizer.Resize(src, w)
		if err != nil {
			if errors.Is(err, ports.ErrUnsupportedImage) {
				return rmqconsumer.Permanent(err)
			}
			return fmt.Errorf("resize to %d: %w", w, err)
		}
		if err = ts.storage.Write(ctx, dst, out); err != nil {
			return fmt.Errorf("write rendition %d: %w", w, err)
		}
	}

	return nil
}
