package blob

import (
	"context"

	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
)

// Repository defines the storage contract for blobs.
type Repository interface {
	Fetch(ctx context.Context, container, name string) (domblob.Blob, error)
	Put(ctx context.Context, container, name string, b domblob.Blob) error
	Delete(ctx context.Context, container, name string) error
	List(ctx context.Context, container string) ([]string, error)
}
