package biosearch

import (
	"context"
	"time"
)

// StoryService searches the story index.
type StoryService struct {
	svc searchUseCase
	obs *observer
}

// Search runs a free-text story search.
func (s *StoryService) Search(ctx context.Context, q TextQuery) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("stories.search", start, err) }()

	p, err := s.svc.SearchStories(ctx, toTextQuery(q))
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// ByTags finds stories carrying every tag in q.Facets.Tags.
func (s *StoryService) ByTags(ctx context.Context, q TagQuery) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("stories.by_tags", start, err) }()

	p, err := s.svc.StoriesByTags(ctx, toTagQuery(q))
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// ByIDs returns the stories in the order of ids. Unknown IDs are skipped.
func (s *StoryService) ByIDs(ctx context.Context, ids []string) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("stories.by_ids", start, err) }()

	p, err := s.svc.StoriesByIDs(ctx, ids)
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// TagCounts returns the number of stories per tag under f, in the "tags" facet.
func (s *StoryService) TagCounts(ctx context.Context, f Facets) (_ []FacetBucket, err error) {
	start := time.Now()
	defer func() { s.obs.observe("stories.tag_counts", start, err) }()

	p, err := s.svc.TagCounts(ctx, toSelection(f))
	if err != nil {
		return nil, err
	}
	return fromPage(p).Facets["tags"], nil
}

// Count returns the number of stories in the index.
func (s *StoryService) Count(ctx context.Context) (_ int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("stories.count", start, err) }()

	return s.svc.CountStories(ctx)
}
