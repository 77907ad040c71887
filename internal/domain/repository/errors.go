package repository

import "errors"

var (
	// ErrVideoNotFound is returned when a video record cannot be found.
	ErrVideoNotFound = errors.New("video not found")

	// ErrDuplicateVideo is returned when inserting a record whose ID is
	// already present in the catalog.
	ErrDuplicateVideo = errors.New("video already exists")

	// ErrProtectedVideo is returned when attempting to delete a seed
	// record flagged as non-removable.
	ErrProtectedVideo = errors.New("video is protected from deletion")

	// ErrBucketNotFound is returned when the configured storage bucket
	// does not exist.
	ErrBucketNotFound = errors.New("storage bucket not found")

	// ErrObjectNotFound is returned when a storage object cannot be found.
	ErrObjectNotFound = errors.New("storage object not found")
)
