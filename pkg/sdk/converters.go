package biosearch

import (
	"strings"

	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/result"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
)

func toSelection(f Facets) facet.Selection {
	sel := facet.Selection{}.
		WithGender(f.Gender).
		WithMakerCategories(f.MakerCategories...).
		WithJobTypes(f.JobTypes...).
		WithLastInitial(f.LastInitial).
		WithParentBiography(f.ParentBiography).
		WithTags(f.Tags...)
	if f.BirthDecade != nil {
		sel = sel.WithBirthDecade(*f.BirthDecade)
	}
	return sel
}

func toPaging(p Paging) query.Paging {
	return query.Paging{Page: p.Page, PageSize: p.PageSize}
}

func toSort(s Sort) query.SortParam {
	return query.SortParam{Field: s.Field, Descending: s.Descending}
}

func toTextQuery(q TextQuery) query.TextQuery {
	return query.TextQuery{
		Text:           q.Text,
		SearchFields:   strings.Join(q.SearchFields, ","),
		Facets:         toSelection(q.Facets),
		InterviewYears: query.YearBounds{From: q.InterviewYearFrom, To: q.InterviewYearTo},
		Paging:         toPaging(q.Paging),
		Sort:           toSort(q.Sort),
		Highlight:      q.Highlight,
	}
}

func toDateQuery(q DateQuery) query.DateQuery {
	w := datewindow.Granularity(strings.ToLower(string(q.Window)))
	if q.Window == "" {
		w = datewindow.Day
	}
	return query.DateQuery{
		Window: w,
		Date:   q.Date,
		Facets: toSelection(q.Facets),
		Paging: toPaging(q.Paging),
		Sort:   toSort(q.Sort),
	}
}

func toTagQuery(q TagQuery) query.TagQuery {
	return query.TagQuery{
		Facets: toSelection(q.Facets),
		Paging: toPaging(q.Paging),
		Sort:   toSort(q.Sort),
	}
}

func fromPage(p *result.Page) Page {
	if p == nil {
		return Page{}
	}
	out := Page{
		Documents:  make([]Document, len(p.Documents)),
		TotalCount: p.TotalCount,
	}
	for i, d := range p.Documents {
		out.Documents[i] = Document{
			ID:         d.ID,
			Score:      d.Score,
			Fields:     d.Fields,
			Highlights: d.Highlights,
		}
	}
	if len(p.Facets) > 0 {
		out.Facets = make(map[string][]FacetBucket, len(p.Facets))
		for name, buckets := range p.Facets {
			bs := make([]FacetBucket, len(buckets))
			for i, b := range buckets {
				bs[i] = FacetBucket{Value: b.Value, Count: b.Count}
			}
			out.Facets[name] = bs
		}
	}
	return out
}
