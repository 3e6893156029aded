package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FSStore implements ImageStore on the local filesystem.
// Relative paths are resolved under a media root directory.
type FSStore struct {
	root string
}

// NewFSStore creates a filesystem store rooted at the given directory.
// The directory is created if it does not exist.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// fullPath resolves a relative storage path under the media root.
func (s *FSStore) fullPath(relPath string) string {
	return filepath.Join(s.root, filepath.FromSlash(relPath))
}

// Save writes image content to disk, creating parent directories as needed.
func (s *FSStore) Save(ctx context.Context, relPath string, reader io.Reader, size int64) error {
	dst := s.fullPath(relPath)

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create image directory: %w", err)
	}

	// Write to a temp file first, then rename into place, so a partial
	// upload never becomes visible.
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize image: %w", err)
	}

	return nil
}

// Open opens a stored image for reading.
func (s *FSStore) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	f, err := os.Open(s.fullPath(relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return f, nil
}

// Delete removes a stored image. Missing files are ignored.
func (s *FSStore) Delete(ctx context.Context, relPath string) error {
	if err := os.Remove(s.fullPath(relPath)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// Ensure FSStore implements ImageStore.
var _ ImageStore = (*FSStore)(nil)
