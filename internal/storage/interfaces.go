// Package storage defines interfaces for image storage backends.
// The storage layer persists uploaded vehicle images under relative paths
// that are recorded on the vehicle row; the database never holds the bytes.
package storage

import (
	"context"
	"errors"
	"io"
)

// Storage errors
var (
	// ErrImageNotFound indicates the requested image does not exist.
	ErrImageNotFound = errors.New("image not found")
)

// ImageStore defines the interface for image storage backends.
// Implementations include the local filesystem and S3-compatible stores.
type ImageStore interface {
	// Save stores image content under the given relative path
	// (e.g. "uploads/vehicle/<uuid>.jpg"). An existing object at the
	// same path is overwritten.
	Save(ctx context.Context, relPath string, reader io.Reader, size int64) error

	// Open retrieves stored image content by its relative path.
	// Returns a ReadCloser that must be closed after use.
	// Returns ErrImageNotFound if no object exists at the path.
	Open(ctx context.Context, relPath string) (io.ReadCloser, error)

	// Delete removes the image at the given relative path.
	// Deleting a missing image is not an error.
	Delete(ctx context.Context, relPath string) error
}
