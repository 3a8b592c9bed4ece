// Package blobstore reads input images and writes rendered outputs and
// reports to local files or object storage.
package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

// Store is a flat namespace of whole-object blobs.
type Store interface {
	// Get reads a blob completely.
	Get(ctx context.Context, name string) ([]byte, error)
	// Put writes a blob, replacing any existing one.
	Put(ctx context.Context, name string, data []byte, contentType string) error
}
