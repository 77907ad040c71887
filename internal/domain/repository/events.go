package repository

import (
	"context"

	"github.com/google/uuid"
)

// Lifecycle event types emitted by the video service.
const (
	EventVideoUploaded = "video.uploaded"
	EventVideoDeleted  = "video.deleted"
)

// VideoEvent describes a catalog mutation for downstream consumers.
type VideoEvent struct {
	Type       string    `json:"type"`
	VideoID    uuid.UUID `json:"video_id"`
	StorageKey string    `json:"storage_key"`
	Title      string    `json:"title"`
	Size       int64     `json:"size"`
	OccurredAt string    `json:"occurred_at"`
}

// EventPublisher defines the interface for emitting lifecycle events.
// Publishing is best-effort: the service logs failures but never fails
// a request because of one.
type EventPublisher interface {
	Publish(ctx context.Context, event VideoEvent) error

	// Close gracefully closes the underlying connection.
	Close() error
}
