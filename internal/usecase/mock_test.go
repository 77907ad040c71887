package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
)

// mockObjectStorage implements repository.ObjectStorage and counts
// invocations so tests can assert that rejected uploads never reach
// the backend.
type mockObjectStorage struct {
	putFn    func(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	deleteFn func(ctx context.Context, key string) error

	putCalls    int
	deleteCalls int
}

func (m *mockObjectStorage) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	m.putCalls++
	if m.putFn != nil {
		return m.putFn(ctx, key, reader, size, contentType)
	}
	return nil
}

func (m *mockObjectStorage) Delete(ctx context.Context, key string) error {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

func (m *mockObjectStorage) Exists(ctx context.Context, key string) (bool, error) {
	return true, nil
}

func (m *mockObjectStorage) ObjectURL(key string) string {
	return "http://storage.test/bucket/" + key
}

// mockEventPublisher records published events.
type mockEventPublisher struct {
	publishFn func(ctx context.Context, event repository.VideoEvent) error
	events    []repository.VideoEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, event repository.VideoEvent) error {
	m.events = append(m.events, event)
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockEventPublisher) Close() error { return nil }

// mockVideoService implements VideoService for decorator tests.
type mockVideoService struct {
	uploadFn func(ctx context.Context, input UploadInput) (*model.VideoRecord, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)
	listFn   func(ctx context.Context) ([]*model.VideoRecord, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)
	clearFn  func(ctx context.Context) ([]*model.VideoRecord, error)

	getCalls int
}

func (m *mockVideoService) Upload(ctx context.Context, input UploadInput) (*model.VideoRecord, error) {
	if m.uploadFn != nil {
		return m.uploadFn(ctx, input)
	}
	return nil, nil
}

func (m *mockVideoService) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	m.getCalls++
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoService) List(ctx context.Context) ([]*model.VideoRecord, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockVideoService) Delete(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil, nil
}

func (m *mockVideoService) Clear(ctx context.Context) ([]*model.VideoRecord, error) {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil, nil
}

// mockVideoCache implements cache.VideoCache over a plain map.
type mockVideoCache struct {
	setFn    func(ctx context.Context, record *model.VideoRecord, ttl time.Duration) error
	deleteFn func(ctx context.Context, id uuid.UUID) error

	entries map[uuid.UUID]*model.VideoRecord
}

func newMockVideoCache() *mockVideoCache {
	return &mockVideoCache{entries: make(map[uuid.UUID]*model.VideoRecord)}
}

func (m *mockVideoCache) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	return m.entries[id], nil
}

func (m *mockVideoCache) Set(ctx context.Context, record *model.VideoRecord, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, record, ttl)
	}
	m.entries[record.ID] = record
	return nil
}

func (m *mockVideoCache) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	delete(m.entries, id)
	return nil
}
