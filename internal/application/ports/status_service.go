package ports

import "context"

type (
	Status struct {
		Redis   bool `json:"redis"`
		DB      bool `json:"db"`
		Storage bool `json:"storage"`
	}
	Stats struct {
		Users int64 `json:"users"`
		Files int64 `json:"files"`
	}
)

type StatusService interface {
	Status(ctx context.Context) Status
	Stats(ctx context.Context) (Stats, error)
}
