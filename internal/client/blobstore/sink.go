// Package blobstore stores downloaded document files: in a local directory,
// in a throwaway preview directory, or in an S3-compatible bucket.
package blobstore

import (
	"context"
	"io"
)

// Sink receives one file and reports where it ended up.
type Sink interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}
