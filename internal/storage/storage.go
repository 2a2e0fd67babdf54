package storage

import (
	"context"
	"io"
)

// Storage abstracts where uploaded contact photos are kept.
type Storage interface {
	// Save stores data under key and returns the public URL of the file.
	// key is a slash-separated path unique within the storage
	// (e.g. "photos/<uuid>.jpg").
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Delete removes the file stored under key. Missing files are not an error.
	Delete(ctx context.Context, key string) error
}
