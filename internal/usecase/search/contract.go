package search

import (
	"context"

	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
)

// Searcher executes a compiled request against one index.
type Searcher interface {
	Search(ctx context.Context, index string, req *request.Request) (*result.Page, error)
}

// Gateway is the remote indexed-search service.
type Gateway interface {
	Searcher
	Count(ctx context.Context, index string) (int64, error)
}
