package tagcache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/db"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
)

func tagRequest(filter string) *request.Request {
	return &request.Request{FreeText: "*", Mode: "any", Filter: filter, Facets: []string{"tags,count:1000"}}
}

func tagPage() *result.Page {
	return &result.Page{
		Facets:     map[string][]result.Bucket{"tags": {{Value: "jazz", Count: 12}}},
		TotalCount: 12,
	}
}

func TestSearch_CacheMiss(t *testing.T) {
	inner := &mockSearcher{page: tagPage()}
	cs, ms := newTestCachedSearcher(t, inner)

	var setKey string
	var setTTL time.Duration
	ms.setFn = func(_ context.Context, key string, _ []byte, ttl time.Duration) error {
		setKey = key
		setTTL = ttl
		return nil
	}

	page, err := cs.Search(context.Background(), "stories", tagRequest(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.TotalCount != 12 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 inner call, got %d", inner.calls)
	}
	if !strings.HasPrefix(setKey, "biosearch:tag_counts:") {
		t.Errorf("unexpected cache key %q", setKey)
	}
	if setTTL != time.Minute {
		t.Errorf("expected TTL 1m, got %v", setTTL)
	}
}

func TestSearch_CacheHit(t *testing.T) {
	inner := &mockSearcher{}
	cs, ms := newTestCachedSearcher(t, inner)

	cached, _ := json.Marshal(tagPage())
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return cached, nil
	}

	page, err := cs.Search(context.Background(), "stories", tagRequest(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Fatal("inner searcher should not be called on a hit")
	}
	buckets := page.FacetBuckets("tags")
	if len(buckets) != 1 || buckets[0].Value != "jazz" || buckets[0].Count != 12 {
		t.Errorf("unexpected buckets: %+v", buckets)
	}
}

func TestSearch_StoreErrorsDegradeToMiss(t *testing.T) {
	inner := &mockSearcher{page: tagPage()}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, &db.Error{Op: db.OpGet, Err: errors.New("connection reset")}
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		return &db.Error{Op: db.OpSet, Err: errors.New("connection reset")}
	}

	page, err := cs.Search(context.Background(), "stories", tagRequest(""))
	if err != nil {
		t.Fatalf("store failures must not fail the search: %v", err)
	}
	if page.TotalCount != 12 || inner.calls != 1 {
		t.Errorf("expected inner result, got %+v after %d calls", page, inner.calls)
	}
}

func TestSearch_CorruptEntryIsMiss(t *testing.T) {
	inner := &mockSearcher{page: tagPage()}
	cs, ms := newTestCachedSearcher(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("{not json"), nil
	}

	if _, err := cs.Search(context.Background(), "stories", tagRequest("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner call on corrupt entry, got %d", inner.calls)
	}
}

func TestSearch_InnerError(t *testing.T) {
	inner := &mockSearcher{err: errors.New("remote down")}
	cs, ms := newTestCachedSearcher(t, inner)

	var setCalled bool
	ms.setFn = func(_ context.Context, _ string, _ []byte, _ time.Duration) error {
		setCalled = true
		return nil
	}

	if _, err := cs.Search(context.Background(), "stories", tagRequest("")); err == nil {
		t.Fatal("expected error")
	}
	if setCalled {
		t.Error("errors must not be cached")
	}
}

func TestCacheKey_DependsOnFilterAndIndex(t *testing.T) {
	a, _ := cacheKey("stories", tagRequest("tags/any(x: x eq 'a')"))
	b, _ := cacheKey("stories", tagRequest("tags/any(x: x eq 'b')"))
	c, _ := cacheKey("stories-v2", tagRequest("tags/any(x: x eq 'a')"))
	a2, _ := cacheKey("stories", tagRequest("tags/any(x: x eq 'a')"))

	if a == b || a == c {
		t.Error("different requests must not share a key")
	}
	if a != a2 {
		t.Error("identical requests must share a key")
	}
}

func TestSearch_CountsHitsAndMisses(t *testing.T) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_tag_cache"}, []string{"result"})
	inner := &mockSearcher{page: tagPage()}
	ms := &mockKVStore{}
	cs := New(inner, ms, time.Minute, counter, zap.NewNop())

	if _, err := cs.Search(context.Background(), "stories", tagRequest("")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := testutil.ToFloat64(counter.WithLabelValues("miss")); got != 1 {
		t.Errorf("expected 1 miss, got %v", got)
	}
}
