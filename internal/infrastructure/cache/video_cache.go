package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
)

// VideoCache defines the interface for caching video records.
// Implementations handle serialization transparently.
type VideoCache interface {
	// Get retrieves a record from cache by ID.
	// Returns nil, nil if the record is not cached (cache miss).
	Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error)

	// Set stores a record in cache with the specified TTL.
	Set(ctx context.Context, record *model.VideoRecord, ttl time.Duration) error

	// Delete removes a record from cache by ID.
	// Returns nil if the record was not cached.
	Delete(ctx context.Context, id uuid.UUID) error
}
