package services

import (
	"context"
	"time"

	"hydroboard/internal/domain"
)

// MockBackend implements Fetcher, Trigger and ChangeProvider with fixed
// latency, for wiring the UI without a backend.
type MockBackend struct {
	Snapshots map[domain.Target]domain.DatasetSnapshot
	Changes   domain.DatasetChangeSet
	Err       error
	Delay     time.Duration
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		Snapshots: map[domain.Target]domain.DatasetSnapshot{},
		Delay:     350 * time.Millisecond,
	}
}

func (mock *MockBackend) FetchSnapshot(ctx context.Context, target domain.Target) (domain.DatasetSnapshot, error) {
	if err := mock.wait(ctx); err != nil {
		return domain.DatasetSnapshot{}, err
	}
	if mock.Err != nil {
		return domain.DatasetSnapshot{}, mock.Err
	}
	return mock.Snapshots[target], nil
}

func (mock *MockBackend) TriggerUpdate(ctx context.Context) error {
	if err := mock.wait(ctx); err != nil {
		return err
	}
	return mock.Err
}

func (mock *MockBackend) FetchChanges(ctx context.Context, before domain.DatasetSnapshot) (domain.DatasetChangeSet, error) {
	if err := mock.wait(ctx); err != nil {
		return domain.DatasetChangeSet{}, err
	}
	if mock.Err != nil {
		return domain.DatasetChangeSet{}, mock.Err
	}
	return mock.Changes, nil
}

func (mock *MockBackend) wait(ctx context.Context) error {
	if mock.Delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(mock.Delay):
		return nil
	}
}
