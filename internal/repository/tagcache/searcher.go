// Package tagcache caches tag-frequency counts in a key-value store.
package tagcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/db"
	"github.com/kailas-cloud/biosearch/internal/domain"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
)

var cacheKeyPrefix = domain.KeyPrefix + "tag_counts:"

// store is the consumer interface for the tag count cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// searcher runs the uncached search.
type searcher interface {
	Search(ctx context.Context, index string, req *request.Request) (*result.Page, error)
}

// CachedSearcher caches search pages in a key-value store for a fixed TTL.
// Store failures degrade to a miss; they never fail the search.
type CachedSearcher struct {
	inner      searcher
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner searcher,
	s store,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedSearcher {
	return &CachedSearcher{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// Search returns a cached page or calls the inner searcher.
func (c *CachedSearcher) Search(ctx context.Context, index string, req *request.Request) (*result.Page, error) {
	key, err := cacheKey(index, req)
	if err != nil {
		return nil, err
	}

	if page, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return page, nil
	}

	c.incCache("miss")

	page, err := c.inner.Search(ctx, index, req)
	if err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}

	c.putToCache(ctx, key, page)
	return page, nil
}

func (c *CachedSearcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// cacheKey hashes the whole compiled request, so filter, facet bucket count
// and paging all take part.
func cacheKey(index string, req *request.Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(index))
	h.Write([]byte{0})
	h.Write(body)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil)), nil
}

func (c *CachedSearcher) getFromCache(ctx context.Context, key string) (*result.Page, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached tag counts", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var page result.Page
	if err := json.Unmarshal(data, &page); err != nil {
		c.logger.Warn("Failed to parse cached tag counts", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (c *CachedSearcher) putToCache(ctx context.Context, key string, page *result.Page) {
	data, err := json.Marshal(page)
	if err != nil {
		c.logger.Warn("Failed to encode tag counts", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache tag counts", zap.String("key", key), zap.Error(err))
	}
}
