package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusDead       Status = "dead"
)

// DerivationJob asks the worker to produce the renditions of one image.
type DerivationJob struct {
	ID      uuid.UUID `json:"jobId"`
	FileID  string    `json:"fileId"`
	OwnerID string    `json:"userId"`
}

type Record struct {
	ID        uuid.UUID
	FileID    string
	OwnerID   string
	Status    Status
	Attempts  int
	LastError string
	UpdatedAt time.Time
}
