package biosearch

import (
	"context"
	"time"
)

// BiographyService searches the biography index.
type BiographyService struct {
	svc searchUseCase
	obs *observer
}

// Search runs a free-text search. Browsing everything without an explicit
// sort orders by last name.
func (s *BiographyService) Search(ctx context.Context, q TextQuery) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("biographies.search", start, err) }()

	p, err := s.svc.SearchBiographies(ctx, toTextQuery(q))
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// Born finds biographies whose birthday falls in the day, week (Sunday to
// Saturday) or month around q.Date. The year is ignored.
func (s *BiographyService) Born(ctx context.Context, q DateQuery) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("biographies.born", start, err) }()

	p, err := s.svc.BiographiesBorn(ctx, toDateQuery(q))
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// ByIDs returns the biographies in the order of ids. Unknown IDs are skipped.
func (s *BiographyService) ByIDs(ctx context.Context, ids []string) (_ Page, err error) {
	start := time.Now()
	defer func() { s.obs.observe("biographies.by_ids", start, err) }()

	p, err := s.svc.BiographiesByIDs(ctx, ids)
	if err != nil {
		return Page{}, err
	}
	return fromPage(p), nil
}

// Count returns the number of biographies in the index.
func (s *BiographyService) Count(ctx context.Context) (_ int64, err error) {
	start := time.Now()
	defer func() { s.obs.observe("biographies.count", start, err) }()

	return s.svc.CountBiographies(ctx)
}
