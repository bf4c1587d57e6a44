package biosearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/clock"
	"github.com/kailas-cloud/biosearch/internal/db"
	dbRedis "github.com/kailas-cloud/biosearch/internal/db/redis"
	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	blobrepo "github.com/kailas-cloud/biosearch/internal/repository/blob"
	"github.com/kailas-cloud/biosearch/internal/repository/tagcache"
	"github.com/kailas-cloud/biosearch/internal/transport/azsearch"
	blobuc "github.com/kailas-cloud/biosearch/internal/usecase/blob"
	healthuc "github.com/kailas-cloud/biosearch/internal/usecase/health"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
	searchuc "github.com/kailas-cloud/biosearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultBiographyIndex   = "biographies"
	defaultStoryIndex       = "stories"
)

var defaultBlobContainers = []string{"transcripts", "images"}

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	SearchBiographies(ctx context.Context, q query.TextQuery) (*result.Page, error)
	BiographiesBorn(ctx context.Context, q query.DateQuery) (*result.Page, error)
	BiographiesByIDs(ctx context.Context, ids []string) (*result.Page, error)
	CountBiographies(ctx context.Context) (int64, error)
	SearchStories(ctx context.Context, q query.TextQuery) (*result.Page, error)
	StoriesByTags(ctx context.Context, q query.TagQuery) (*result.Page, error)
	StoriesByIDs(ctx context.Context, ids []string) (*result.Page, error)
	TagCounts(ctx context.Context, sel facet.Selection) (*result.Page, error)
	CountStories(ctx context.Context) (int64, error)
	Compile(e query.Entity, q query.TextQuery) (request.Request, error)
}

type blobUseCase interface {
	Fetch(ctx context.Context, container, name string) (domblob.Blob, error)
	Put(ctx context.Context, container, name string, data []byte, contentType string) error
	Delete(ctx context.Context, container, name string) error
	List(ctx context.Context, container string) ([]string, error)
}

// Client is the biosearch SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	searchSvc searchUseCase
	blobSvc   blobUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client. The search service is required; Redis is optional.
// The provided context is used for the initial Redis readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		biographyIndex: defaultBiographyIndex,
		storyIndex:     defaultStoryIndex,
		blobContainers: defaultBlobContainers,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.endpoint == "" {
		return nil, errors.New("biosearch: search service endpoint required (use WithSearchService)")
	}

	gateway, err := azsearch.New(azsearch.Config{
		Endpoint:   cfg.endpoint,
		APIKey:     cfg.apiKey,
		APIVersion: cfg.apiVersion,
		Timeout:    cfg.timeout,
		HTTPClient: cfg.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("biosearch: %w", err)
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Username: cfg.username,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("biosearch: create redis store: %w", err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("biosearch: database not ready: %w", err)
		}
		store = s
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	c, err := wireClient(gateway, store, cfg, obs)
	if err != nil && store != nil {
		store.Close()
	}
	return c, err
}

func wireClient(gateway *azsearch.Client, store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	forced := make(map[facet.Name]string, len(cfg.forced))
	for k, v := range cfg.forced {
		forced[facet.Name(k)] = v
	}
	compiler, err := facet.NewCompiler(forced)
	if err != nil {
		return nil, fmt.Errorf("biosearch: %w", err)
	}

	vocab := make(facet.Vocabulary, len(cfg.vocabulary))
	for k, v := range cfg.vocabulary {
		vocab[facet.Name(k)] = v
	}
	builder := query.NewBuilder(query.Config{
		MaxPageSize:            cfg.maxPageSize,
		DefaultPageSize:        cfg.defaultPageSize,
		BiographyDefaultFields: cfg.bioFields,
		StoryDefaultFields:     cfg.storyFields,
		HighlightPreTag:        cfg.highlightPre,
		HighlightPostTag:       cfg.highlightPost,
		TagFacetCount:          cfg.tagFacetCount,
		StrictFacets:           cfg.strict,
		Vocabulary:             vocab,
	}, compiler, datewindow.NewResolver(clock.System{}))

	// Pass nil interface (not typed nil pointer!) when the cache is not configured.
	var tags searchuc.Searcher
	if store != nil && cfg.tagCountsTTL > 0 {
		tags = tagcache.New(gateway, store, cfg.tagCountsTTL, nil, zap.NewNop())
	}

	c := &Client{
		store: store,
		searchSvc: searchuc.New(builder, gateway, tags, searchuc.Indexes{
			Biography: cfg.biographyIndex,
			Story:     cfg.storyIndex,
		}),
		obs: obs,
	}

	var dbPinger healthuc.DBPinger
	if store != nil {
		c.blobSvc = blobuc.New(blobrepo.New(store), cfg.blobContainers)
		dbPinger = store
	}
	c.healthSvc = healthuc.New(dbPinger, gateway)
	return c, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Biographies returns the biography search service.
func (c *Client) Biographies() *BiographyService {
	return &BiographyService{svc: c.searchSvc, obs: c.obs}
}

// Stories returns the story search service.
func (c *Client) Stories() *StoryService {
	return &StoryService{svc: c.searchSvc, obs: c.obs}
}

// Blobs returns the blob service. Without WithRedis every call fails with
// ErrBlobsNotConfigured.
func (c *Client) Blobs() *BlobService {
	return &BlobService{svc: c.blobSvc, obs: c.obs}
}

// Compile returns the JSON body a text search would send, without sending it.
func (c *Client) Compile(e Entity, q TextQuery) (json.RawMessage, error) {
	ent := query.Biography
	if e == EntityStory {
		ent = query.Story
	}
	req, err := c.searchSvc.Compile(ent, toTextQuery(q))
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	body, err := azsearch.MarshalSearch(&req)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return body, nil
}
