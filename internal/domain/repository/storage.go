package repository

import (
	"context"
	"io"
)

// ObjectStorage defines the interface for object storage operations.
// Implementations should be provided by the infrastructure layer
// (e.g., MinIO, S3). Objects are addressed by key within a single
// configured bucket.
type ObjectStorage interface {
	// Put stores an object and blocks until the write is confirmed.
	// size must be the exact byte length of the content.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Delete removes an object from the storage.
	Delete(ctx context.Context, key string) error

	// Exists checks whether an object is present.
	Exists(ctx context.Context, key string) (bool, error)

	// ObjectURL returns the externally resolvable URL for an object.
	// The URL is deterministic; no signing or expiry is involved.
	ObjectURL(key string) string
}
