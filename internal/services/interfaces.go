package services

import (
	"context"

	"hydroboard/internal/domain"
)

// Fetcher retrieves a point-in-time description of a dataset directory.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, target domain.Target) (domain.DatasetSnapshot, error)
}

// Trigger starts the remote ETL job. The call returns only once the backend
// has finished processing.
type Trigger interface {
	TriggerUpdate(ctx context.Context) error
}

// ChangeProvider produces the delta of the processed directory after a run.
// Implementations may ask the backend for a precomputed diff or derive one
// from the snapshot taken before the run.
type ChangeProvider interface {
	FetchChanges(ctx context.Context, before domain.DatasetSnapshot) (domain.DatasetChangeSet, error)
}
