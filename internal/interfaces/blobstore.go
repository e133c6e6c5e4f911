package interfaces

import (
	"context"
	"io"
)

// BlobStore abstracts remote binary storage for profile assets.
type BlobStore interface {
	// Put streams body under key and returns the public URL of the stored object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	// Delete removes key. Deleting a key that does not exist is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns the public URL for a stored key without a remote call.
	URL(key string) string
}
