package biosearch

import (
	"context"

	domblob "github.com/kailas-cloud/biosearch/internal/domain/blob"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/biosearch/internal/usecase/health"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchBiographiesFn func(ctx context.Context, q query.TextQuery) (*result.Page, error)
	bornFn              func(ctx context.Context, q query.DateQuery) (*result.Page, error)
	biographiesByIDsFn  func(ctx context.Context, ids []string) (*result.Page, error)
	countBiographiesFn  func(ctx context.Context) (int64, error)
	searchStoriesFn     func(ctx context.Context, q query.TextQuery) (*result.Page, error)
	byTagsFn            func(ctx context.Context, q query.TagQuery) (*result.Page, error)
	storiesByIDsFn      func(ctx context.Context, ids []string) (*result.Page, error)
	tagCountsFn         func(ctx context.Context, sel facet.Selection) (*result.Page, error)
	countStoriesFn      func(ctx context.Context) (int64, error)
	compileFn           func(e query.Entity, q query.TextQuery) (request.Request, error)
}

func (m *mockSearchUC) SearchBiographies(ctx context.Context, q query.TextQuery) (*result.Page, error) {
	return m.searchBiographiesFn(ctx, q)
}

func (m *mockSearchUC) BiographiesBorn(ctx context.Context, q query.DateQuery) (*result.Page, error) {
	return m.bornFn(ctx, q)
}

func (m *mockSearchUC) BiographiesByIDs(ctx context.Context, ids []string) (*result.Page, error) {
	return m.biographiesByIDsFn(ctx, ids)
}

func (m *mockSearchUC) CountBiographies(ctx context.Context) (int64, error) {
	return m.countBiographiesFn(ctx)
}

func (m *mockSearchUC) SearchStories(ctx context.Context, q query.TextQuery) (*result.Page, error) {
	return m.searchStoriesFn(ctx, q)
}

func (m *mockSearchUC) StoriesByTags(ctx context.Context, q query.TagQuery) (*result.Page, error) {
	return m.byTagsFn(ctx, q)
}

func (m *mockSearchUC) StoriesByIDs(ctx context.Context, ids []string) (*result.Page, error) {
	return m.storiesByIDsFn(ctx, ids)
}

func (m *mockSearchUC) TagCounts(ctx context.Context, sel facet.Selection) (*result.Page, error) {
	return m.tagCountsFn(ctx, sel)
}

func (m *mockSearchUC) CountStories(ctx context.Context) (int64, error) {
	return m.countStoriesFn(ctx)
}

func (m *mockSearchUC) Compile(e query.Entity, q query.TextQuery) (request.Request, error) {
	return m.compileFn(e, q)
}

// --- blobUseCase mock ---

type mockBlobUC struct {
	fetchFn  func(ctx context.Context, container, name string) (domblob.Blob, error)
	putFn    func(ctx context.Context, container, name string, data []byte, contentType string) error
	deleteFn func(ctx context.Context, container, name string) error
	listFn   func(ctx context.Context, container string) ([]string, error)
}

func (m *mockBlobUC) Fetch(ctx context.Context, container, name string) (domblob.Blob, error) {
	return m.fetchFn(ctx, container, name)
}

func (m *mockBlobUC) Put(ctx context.Context, container, name string, data []byte, contentType string) error {
	return m.putFn(ctx, container, name, data, contentType)
}

func (m *mockBlobUC) Delete(ctx context.Context, container, name string) error {
	return m.deleteFn(ctx, container, name)
}

func (m *mockBlobUC) List(ctx context.Context, container string) ([]string, error) {
	return m.listFn(ctx, container)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(context.Context) healthuc.Report { return m.report }

// --- helpers ---

func testClient(searchSvc searchUseCase, blobSvc blobUseCase) *Client {
	return &Client{
		searchSvc: searchSvc,
		blobSvc:   blobSvc,
	}
}

func page(ids ...string) *result.Page {
	docs := make([]result.Document, len(ids))
	for i, id := range ids {
		docs[i] = result.Document{ID: id, Fields: map[string]any{"id": id}}
	}
	return &result.Page{Documents: docs, TotalCount: int64(len(ids))}
}
