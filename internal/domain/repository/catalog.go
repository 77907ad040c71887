package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
)

// VideoCatalog defines the interface for video metadata bookkeeping.
// The canonical implementation is in-memory and process-lifetime; the
// catalog is wiped on restart.
type VideoCatalog interface {
	// Insert adds a new record. Returns ErrDuplicateVideo if a record
	// with the same ID is already present.
	Insert(ctx context.Context, record *model.VideoRecord) error

	// Get retrieves a record by ID. Returns ErrVideoNotFound if absent.
	Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)

	// Remove deletes a record by ID and returns the removed record.
	// Returns ErrVideoNotFound if absent.
	Remove(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*model.VideoRecord, error)

	// Clear removes every non-protected record and returns them.
	Clear(ctx context.Context) ([]*model.VideoRecord, error)
}
