package query

import (
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
)

// Paging is the caller's 1-based page and page size. Zero values take defaults.
type Paging struct {
	Page     int
	PageSize int
}

// SortParam is an optional caller sort. An empty Field means "no explicit sort".
type SortParam struct {
	Field      string
	Descending bool
}

// YearBounds bounds the interview date by year. Zero means unset on either side.
type YearBounds struct {
	From int
	To   int
}

// TextQuery is a free-text search over biographies or stories.
type TextQuery struct {
	Text string
	// SearchFields is a comma-separated field list; blank uses the entity default.
	SearchFields   string
	Facets         facet.Selection
	InterviewYears YearBounds
	Paging         Paging
	Sort           SortParam
	Highlight      bool
}

// DateQuery finds biographies born in a day/week/month window.
type DateQuery struct {
	Window datewindow.Granularity
	// Date is the YYYY-MM-DD anchor; blank means today.
	Date   string
	Facets facet.Selection
	Paging Paging
	Sort   SortParam
}

// TagQuery finds stories by tags; the tags themselves travel in Facets.
type TagQuery struct {
	Facets facet.Selection
	Paging Paging
	Sort   SortParam
}
