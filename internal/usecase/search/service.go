package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/biosearch/internal/domain"
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	"github.com/kailas-cloud/biosearch/internal/logger"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
)

// Indexes names the remote indexes per entity.
type Indexes struct {
	Biography string
	Story     string
}

// Service runs biography and story searches: it compiles the request,
// makes the single remote call and reorders ID lookups.
type Service struct {
	builder *query.Builder
	gateway Gateway
	tags    Searcher
	indexes Indexes
}

// New creates a search service. tags serves tag-frequency counts and may be a
// caching decorator over gateway; nil uses gateway directly.
func New(builder *query.Builder, gateway Gateway, tags Searcher, indexes Indexes) *Service {
	if tags == nil {
		tags = gateway
	}
	return &Service{builder: builder, gateway: gateway, tags: tags, indexes: indexes}
}

// SearchBiographies runs a free-text biography search.
func (s *Service) SearchBiographies(ctx context.Context, q query.TextQuery) (*result.Page, error) {
	req, err := s.builder.BiographySearch(q)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.gateway, s.indexes.Biography, &req, "search biographies")
}

// BiographiesBorn finds biographies born in a day/week/month window.
func (s *Service) BiographiesBorn(ctx context.Context, q query.DateQuery) (*result.Page, error) {
	req, err := s.builder.BiographyBorn(q)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.Date) != "" {
		if _, perr := datewindow.ParseDate(q.Date); perr != nil {
			logger.FromContext(ctx).Warn("malformed anchor date, using today",
				zap.String("date", q.Date), zap.String("window", string(q.Window)))
		}
	}
	return s.run(ctx, s.gateway, s.indexes.Biography, &req, "biographies born")
}

// SearchStories runs a free-text story search.
func (s *Service) SearchStories(ctx context.Context, q query.TextQuery) (*result.Page, error) {
	req, err := s.builder.StorySearch(q)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.gateway, s.indexes.Story, &req, "search stories")
}

// StoriesByTags finds stories carrying every selected tag.
func (s *Service) StoriesByTags(ctx context.Context, q query.TagQuery) (*result.Page, error) {
	req, err := s.builder.StoryByTags(q)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.gateway, s.indexes.Story, &req, "stories by tags")
}

// BiographiesByIDs looks up biographies and returns them in the order of ids.
func (s *Service) BiographiesByIDs(ctx context.Context, ids []string) (*result.Page, error) {
	return s.byIDs(ctx, query.Biography, s.indexes.Biography, ids)
}

// StoriesByIDs looks up stories and returns them in the order of ids.
func (s *Service) StoriesByIDs(ctx context.Context, ids []string) (*result.Page, error) {
	return s.byIDs(ctx, query.Story, s.indexes.Story, ids)
}

// TagCounts returns exact per-tag story counts under sel.
func (s *Service) TagCounts(ctx context.Context, sel facet.Selection) (*result.Page, error) {
	req, err := s.builder.TagCounts(sel)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, s.tags, s.indexes.Story, &req, "tag counts")
}

// CountBiographies returns the number of documents in the biography index.
func (s *Service) CountBiographies(ctx context.Context) (int64, error) {
	return s.count(ctx, s.indexes.Biography)
}

// CountStories returns the number of documents in the story index.
func (s *Service) CountStories(ctx context.Context) (int64, error) {
	return s.count(ctx, s.indexes.Story)
}

// Compile returns the request a search would send, without sending it.
func (s *Service) Compile(e query.Entity, q query.TextQuery) (request.Request, error) {
	if e == query.Story {
		return s.builder.StorySearch(q)
	}
	return s.builder.BiographySearch(q)
}

// byIDs preserves the caller's order. IDs with no match are dropped; a repeated
// ID repeats its document.
func (s *Service) byIDs(ctx context.Context, e query.Entity, index string, ids []string) (*result.Page, error) {
	req, err := s.builder.ByIDs(e, ids)
	if err != nil {
		return nil, err
	}
	page, err := s.run(ctx, s.gateway, index, &req, "lookup by ids")
	if err != nil {
		return nil, err
	}
	trimmed := make([]string, len(ids))
	for i, id := range ids {
		trimmed[i] = strings.TrimSpace(id)
	}
	docs := result.Reorder(trimmed, page.Documents)
	return &result.Page{Documents: docs, TotalCount: int64(len(docs))}, nil
}

func (s *Service) run(
	ctx context.Context, searcher Searcher, index string, req *request.Request, op string,
) (*result.Page, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	page, err := searcher.Search(ctx, index, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if page == nil {
		page = &result.Page{}
	}
	return page, nil
}

func (s *Service) count(ctx context.Context, index string) (int64, error) {
	n, err := s.gateway.Count(ctx, index)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", index, err)
	}
	return n, nil
}
