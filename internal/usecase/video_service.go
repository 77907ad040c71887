package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
	"github.com/otto-sketch/video-player-1/internal/infrastructure/metrics"
)

// UploadInput contains the input parameters for uploading a video.
type UploadInput struct {
	File        io.Reader
	FileName    string
	ContentType string
	Size        int64
	Title       string // optional; defaults to FileName minus extension
}

// VideoService defines the interface for video business logic.
type VideoService interface {
	// Upload validates the file, writes it to the storage backend and,
	// only after the write is confirmed, registers a metadata record.
	Upload(ctx context.Context, input UploadInput) (*model.VideoRecord, error)

	// Get retrieves a record by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*model.VideoRecord, error)

	// Delete removes a record and best-effort deletes its backing
	// object. Returns the removed record for response echoing.
	Delete(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)

	// Clear removes every non-protected record and returns the removed
	// set. Backing objects are deleted best-effort per record.
	Clear(ctx context.Context) ([]*model.VideoRecord, error)
}

// VideoServiceConfig holds configuration for VideoService.
type VideoServiceConfig struct {
	Policy    UploadPolicy
	KeyPrefix string // object key prefix, e.g. "videos/"
}

type videoService struct {
	catalog repository.VideoCatalog
	storage repository.ObjectStorage
	events  repository.EventPublisher

	policy    UploadPolicy
	keyPrefix string
}

// NewVideoService creates a new VideoService instance.
func NewVideoService(
	catalog repository.VideoCatalog,
	storage repository.ObjectStorage,
	events repository.EventPublisher,
	cfg VideoServiceConfig,
) VideoService {
	prefix := cfg.KeyPrefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &videoService{
		catalog:   catalog,
		storage:   storage,
		events:    events,
		policy:    cfg.Policy,
		keyPrefix: prefix,
	}
}

// Upload runs the intake pipeline: validate, derive a storage key,
// write to the backend, then commit the record. No record is ever
// observable whose backing object was not confirmed written.
func (s *videoService) Upload(ctx context.Context, input UploadInput) (*model.VideoRecord, error) {
	if err := s.policy.Validate(input.ContentType, input.FileName, input.Size); err != nil {
		metrics.UploadsTotal.WithLabelValues(metrics.UploadRejected, rejectionReason(err)).Inc()
		return nil, err
	}

	key := s.keyPrefix + NewStorageKey(input.FileName, s.policy.ForcedExtension)

	if err := s.storage.Put(ctx, key, input.File, input.Size, input.ContentType); err != nil {
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpPut, metrics.StorageStatusError).Inc()
		metrics.UploadsTotal.WithLabelValues(metrics.UploadRejected, metrics.ReasonBackendError).Inc()
		return nil, fmt.Errorf("store object: %w", err)
	}
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpPut, metrics.StorageStatusSuccess).Inc()

	record := model.NewVideoRecord(
		key,
		input.FileName,
		input.Title,
		input.ContentType,
		s.storage.ObjectURL(key),
		input.Size,
	)

	if err := s.catalog.Insert(ctx, record); err != nil {
		// The object is already written; without a record it has no
		// recoverable reference.
		slog.Error("catalog insert failed after storage write",
			"storage_key", key,
			"error", err,
		)
		metrics.OrphanedObjectsTotal.Inc()
		return nil, fmt.Errorf("register video: %w", err)
	}

	metrics.UploadsTotal.WithLabelValues(metrics.UploadAccepted, metrics.ReasonOK).Inc()
	s.publish(ctx, repository.EventVideoUploaded, record)

	return record, nil
}

// Get retrieves a record by ID.
func (s *videoService) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	return s.catalog.Get(ctx, id)
}

// List returns all records, newest first.
func (s *videoService) List(ctx context.Context) ([]*model.VideoRecord, error) {
	return s.catalog.List(ctx)
}

// Delete removes a record. The backend delete is best-effort: a failure
// is logged and counted but never blocks metadata removal, trading a
// possibly-orphaned storage object for a clean index.
func (s *videoService) Delete(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	record, err := s.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Protected {
		return nil, repository.ErrProtectedVideo
	}

	s.deleteObject(ctx, record.StorageKey)

	removed, err := s.catalog.Remove(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, repository.EventVideoDeleted, removed)
	return removed, nil
}

// Clear removes all non-protected records, best-effort deleting each
// backing object.
func (s *videoService) Clear(ctx context.Context) ([]*model.VideoRecord, error) {
	removed, err := s.catalog.Clear(ctx)
	if err != nil {
		return nil, err
	}

	for _, record := range removed {
		s.deleteObject(ctx, record.StorageKey)
		s.publish(ctx, repository.EventVideoDeleted, record)
	}
	return removed, nil
}

// deleteObject issues a best-effort backend delete.
func (s *videoService) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		slog.Warn("backend delete failed, object orphaned",
			"storage_key", key,
			"error", err,
		)
		metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusError).Inc()
		metrics.OrphanedObjectsTotal.Inc()
		return
	}
	metrics.StorageOperationsTotal.WithLabelValues(metrics.StorageOpDelete, metrics.StorageStatusSuccess).Inc()
}

// publish emits a lifecycle event. Failures are logged, never surfaced.
func (s *videoService) publish(ctx context.Context, eventType string, record *model.VideoRecord) {
	event := repository.VideoEvent{
		Type:       eventType,
		VideoID:    record.ID,
		StorageKey: record.StorageKey,
		Title:      record.Title,
		Size:       record.Size,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish video event",
			"event_type", eventType,
			"video_id", record.ID,
			"error", err,
		)
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrFileTooLarge):
		return metrics.ReasonOversize
	case errors.Is(err, ErrMissingFile):
		return metrics.ReasonMissingFile
	default:
		return metrics.ReasonUnsupportedType
	}
}
