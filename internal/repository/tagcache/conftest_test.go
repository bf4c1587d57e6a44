package tagcache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/db"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
)

type mockSearcher struct {
	page  *result.Page
	err   error
	calls int
}

func (m *mockSearcher) Search(_ context.Context, _ string, _ *request.Request) (*result.Page, error) {
	m.calls++
	return m.page, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	return nil
}

func newTestCachedSearcher(t *testing.T, inner *mockSearcher) (*CachedSearcher, *mockKVStore) {
	t.Helper()
	ms := &mockKVStore{}
	cs := New(inner, ms, time.Minute, nil, zap.NewNop())
	return cs, ms
}
