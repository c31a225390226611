// internal/storage/archive/storage.go
package archive

import (
	"context"
	"errors"
	"path"
	"time"
)

// ErrNotFound is returned by Read when nothing is stored at the path.
var ErrNotFound = errors.New("archive: object not found")

// Storage defines the interface for report archive backends
type Storage interface {
	// Write stores data at the given path, replacing any previous content
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves data from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the data at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if data exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}

// DatedPath lays objects out as prefix/YYYY/MM/DD/name using the UTC date of at.
func DatedPath(prefix string, at time.Time, name string) string {
	return path.Join(prefix, at.UTC().Format("2006/01/02"), name)
}
