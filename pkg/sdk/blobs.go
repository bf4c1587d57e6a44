package biosearch

import (
	"context"
	"time"
)

// BlobService reads and writes stored transcripts and images.
type BlobService struct {
	svc blobUseCase
	obs *observer
}

// Get returns a stored blob, or ErrNotFound.
func (s *BlobService) Get(ctx context.Context, container, name string) (_ Blob, err error) {
	start := time.Now()
	defer func() { s.obs.observe("blobs.get", start, err) }()

	if s.svc == nil {
		return Blob{}, ErrBlobsNotConfigured
	}
	b, err := s.svc.Fetch(ctx, container, name)
	if err != nil {
		return Blob{}, err
	}
	return Blob{Data: b.Data, ContentType: b.ContentType}, nil
}

// Put stores a blob, replacing any previous one.
func (s *BlobService) Put(ctx context.Context, container, name string, b Blob) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("blobs.put", start, err) }()

	if s.svc == nil {
		return ErrBlobsNotConfigured
	}
	return s.svc.Put(ctx, container, name, b.Data, b.ContentType)
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (s *BlobService) Delete(ctx context.Context, container, name string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("blobs.delete", start, err) }()

	if s.svc == nil {
		return ErrBlobsNotConfigured
	}
	return s.svc.Delete(ctx, container, name)
}

// List returns the sorted blob names in a container.
func (s *BlobService) List(ctx context.Context, container string) (_ []string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("blobs.list", start, err) }()

	if s.svc == nil {
		return nil, ErrBlobsNotConfigured
	}
	return s.svc.List(ctx, container)
}
