package storage

import (
	"context"
	"io"
)

// Store is the attachment store the document services depend on.
// Upload returns a durable URL for the stored object; Delete is
// best-effort and callers log rather than propagate its failures.
type Store interface {
	Upload(ctx context.Context, reader io.Reader, size int64, filename, folder, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
