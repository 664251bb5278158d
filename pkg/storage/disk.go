// Package storage provides a small filesystem abstraction for exported
// files such as published menu cards.
//
// Two drivers are available:
//   - "local" writes under a root directory (default)
//   - "s3" writes to S3-compatible object storage (AWS S3, MinIO, R2)
//
// Disks are owned by a Manager built at startup:
//
//	disks, err := storage.FromConfig(ctx)
//	d, err := disks.Default()
//	err = d.Put(ctx, "menus/all-1700000000.txt", card, "text/plain; charset=utf-8")
//	url := d.URL("menus/all-1700000000.txt")
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing is stored at path.
var ErrNotFound = errors.New("storage: file not found")

// Disk is the driver interface.
type Disk interface {
	// Name is the driver name ("local", "s3").
	Name() string

	// Put writes content to path, replacing any existing file.
	Put(ctx context.Context, path string, content []byte, contentType string) error

	// Get returns the content at path, or ErrNotFound.
	Get(ctx context.Context, path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)

	// Delete removes the file at path. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
