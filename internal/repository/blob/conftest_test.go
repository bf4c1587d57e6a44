package blob

import (
	"context"

	"github.com/kailas-cloud/biosearch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	replaceFn func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn func(ctx context.Context, key string) (map[string]string, error)
	delFn     func(ctx context.Context, key string) error
	scanFn    func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) ReplaceHash(ctx context.Context, key string, fields map[string]string) error {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}
