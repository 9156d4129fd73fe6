package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"files-manager-api/internal/application/ports"
	domain "files-manager-api/internal/domain/file"
	"files-manager-api/internal/domain/job"
)

type FileService struct {
	logger         *zap.Logger
	fileRepository domain.Repository
	jobRepository  job.Repository
	storage        ports.BlobStorage
	queue          ports.JobQueue
	mCounter       *prometheus.CounterVec
	newBlobName    func() string
}

func NewFileService(
	logger *zap.Logger,
	fileRepository domain.Repository,
	jobRepository job.Repository,
	storage ports.BlobStorage,
	queue ports.JobQueue,
	mCounter *prometheus.CounterVec,
) ports.FileService {
	return &FileService{
		logger:         logger,
		fileRepository: fileRepository,
		jobRepository:  jobRepository,
		storage:        storage,
		queue:          queue,
		mCounter:       mCounter,
		newBlobName:    uuid.NewString,
	}
}

// Upload validates in, writes the blob, then persists the metadata. Images
// get a derivation job once the metadata exists.
func (fs *FileService) Upload(ctx context.Context, ownerID uuid.UUID, in domain.Upload) (*domain.File, error) {
	name := normalizeName(in.Name)
	if name == "" {
		return nil, ErrMissingName
	}
	kind, ok := domain.ParseKind(in.Type)
	if !ok {
		return nil, ErrMissingType
	}

	var data []byte
	if kind.HasContent() {
		if in.Data == "" {
			return nil, ErrMissingData
		}
		var err error
		if data, err = decodeData(in.Data); err != nil {
			return nil, ErrInvalidData
		}
	}

	parent, err := domain.ParseParentRef(in.ParentID)
	if err != nil {
		return nil, domain.ErrParentNotFound
	}
	if err = domain.ValidateParent(ctx, fs.fileRepository, parent, ownerID); err != nil {
		return nil, err
	}

	f := &domain.File{
		OwnerID:  ownerID,
		Name:     name,
		Kind:     kind,
		ParentID: parent,
		IsPublic: in.IsPublic,
	}

	if kind.HasContent() {
		f.LocalPath = fs.storage.Path(fs.newBlobName())
		if err = fs.storage.Write(ctx, f.LocalPath, data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreFile, err)
		}
	}

	out, err := fs.fileRepository.CreateFile(ctx, f)
	if err != nil {
		if f.LocalPath != "" {
			fs.logger.Warn("orphan blob left after failed insert", zap.String("path", f.LocalPath))
		}
		return nil, err
	}

	fs.mCounter.WithLabelValues("files_created_" + string(kind) + "_total").Inc()

	if kind == domain.KindImage {
		fs.enqueueDerivation(ctx, out)
	}

	return out, nil
}

// enqueueDerivation never fails the upload, problems are only logged.
func (fs *FileService) enqueueDerivation(ctx context.Context, f *domain.File) {
	j := job.DerivationJob{
		ID:      uuid.New(),
		FileID:  f.UUID.String(),
		OwnerID: f.OwnerID.String(),
	}
	log := fs.logger.With(zap.Stringer("job_id", j.ID), zap.String("file_id", j.FileID))

	if err := fs.jobRepository.CreateJob(ctx, j); err != nil {
		log.Error("CreateJob() error", zap.Error(err))
	}
	if err := fs.queue.Enqueue(ctx, j); err != nil {
		// alert
		log.Error("Enqueue() error", zap.Error(err))
		if merr := fs.jobRepository.MarkFailed(ctx, j.ID, job.StatusFailed, "enqueue: "+err.Error()); merr != nil {
			log.Error("MarkFailed() error", zap.Error(merr))
		}
	}
}

func (fs *FileService) FindFile(ctx context.Context, ownerID, id uuid.UUID) (*domain.File, error) {
	f, err := fs.fileRepository.FetchOwnedFile(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (fs *FileService) FindFiles(ctx context.Context, ownerID uuid.UUID, parent domain.ParentRef, page int) (domain.Files, error) {
	if page < 0 {
		page = 0
	}
	files, err := fs.fileRepository.FetchChildren(ctx, parent, ownerID, page)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = domain.Files{}
	}
	return files, nil
}

// SetPublic flips visibility. Setting the current value again is a no-op success.
func (fs *FileService) SetPublic(ctx context.Context, ownerID, id uuid.UUID, isPublic bool) (*domain.File, error) {
	f, err := fs.fileRepository.SetPublic(ctx, id, ownerID, isPublic)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func normalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// decodeData accepts padded and unpadded standard base64.
func decodeData(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}
	if b, rerr := base64.RawStdEncoding.DecodeString(s); rerr == nil {
		return b, nil
	}
	return nil, errors.Join(ErrInvalidData, err)
}
