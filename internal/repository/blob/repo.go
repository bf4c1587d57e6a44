// Package blob stores blobs as Redis hashes keyed by container and name.
package blob

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/biosearch/internal/db"
	"github.com/kailas-cloud/biosearch/internal/domain"
	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
)

var keyPrefix = domain.KeyPrefix + "blob:"

// store is the consumer interface for blobs (ISP).
type store interface {
	ReplaceHash(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/blob.Repository.
type Repo struct {
	store store
}

// New creates a blob repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Fetch returns the blob or domain.ErrNotFound.
func (r *Repo) Fetch(ctx context.Context, container, name string) (domblob.Blob, error) {
	m, err := r.store.HGetAll(ctx, blobKey(container, name))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domblob.Blob{}, domain.ErrNotFound
		}
		return domblob.Blob{}, fmt.Errorf("hgetall: %w", err)
	}
	b, err := blobFromHash(m)
	if err != nil {
		return domblob.Blob{}, fmt.Errorf("decode blob %s/%s: %w", container, name, err)
	}
	return b, nil
}

// Put stores b, replacing any existing blob with the same name.
func (r *Repo) Put(ctx context.Context, container, name string, b domblob.Blob) error {
	if err := r.store.ReplaceHash(ctx, blobKey(container, name), blobToHash(b)); err != nil {
		return fmt.Errorf("replace hash: %w", err)
	}
	return nil
}

// Delete removes a blob. Deleting a missing blob is not an error.
func (r *Repo) Delete(ctx context.Context, container, name string) error {
	if err := r.store.Del(ctx, blobKey(container, name)); err != nil {
		return fmt.Errorf("del: %w", err)
	}
	return nil
}

// List returns the sorted blob names in a container.
func (r *Repo) List(ctx context.Context, container string) ([]string, error) {
	prefix := containerPrefix(container)
	keys, err := r.store.Scan(ctx, prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, prefix))
	}
	sort.Strings(names)
	return names, nil
}

func containerPrefix(container string) string {
	return keyPrefix + container + ":"
}

func blobKey(container, name string) string {
	return containerPrefix(container) + name
}
