package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/oapi-codegen/runtime"

	"github.com/kailas-cloud/biosearch/internal/domain"
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/usecase/query"
)

// binding is one optional form-style query parameter. Lists are comma-separated
// (explode=false); scalars must appear at most once.
type binding struct {
	name    string
	explode bool
	dest    any
}

func scalar(name string, dest any) binding { return binding{name: name, explode: true, dest: dest} }

func list(name string, dest any) binding { return binding{name: name, explode: false, dest: dest} }

func bindQuery(q url.Values, bindings ...binding) error {
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", b.explode, false, b.name, q, b.dest); err != nil {
			return fmt.Errorf("%w: invalid %s parameter", domain.ErrInvalidInput, b.name)
		}
	}
	return nil
}

// facetParams are the facet filters shared by every listing endpoint.
type facetParams struct {
	Gender          *string
	BirthDecade     *string
	MakerCategories *[]string
	JobTypes        *[]string
	LastInitial     *string
	BiographyID     *string
	Tags            *[]string
}

func (p *facetParams) bindings() []binding {
	return []binding{
		scalar("gender", &p.Gender),
		scalar("birthDecade", &p.BirthDecade),
		list("makerCategories", &p.MakerCategories),
		list("jobTypes", &p.JobTypes),
		scalar("lastInitial", &p.LastInitial),
		scalar("biographyId", &p.BiographyID),
		list("tags", &p.Tags),
	}
}

func (p *facetParams) selection() facet.Selection {
	sel := facet.Selection{}.
		WithGender(deref(p.Gender)).
		WithMakerCategories(derefList(p.MakerCategories)...).
		WithJobTypes(derefList(p.JobTypes)...).
		WithLastInitial(deref(p.LastInitial)).
		WithParentBiography(deref(p.BiographyID)).
		WithTags(derefList(p.Tags)...)
	// A blank or non-numeric decade is no constraint.
	if decade, err := strconv.Atoi(strings.TrimSpace(deref(p.BirthDecade))); err == nil {
		sel = sel.WithBirthDecade(decade)
	}
	return sel
}

// listParams are paging and sorting.
type listParams struct {
	Page      *int
	PageSize  *int
	SortField *string
	SortDesc  *bool
}

func (p *listParams) bindings() []binding {
	return []binding{
		scalar("page", &p.Page),
		scalar("pageSize", &p.PageSize),
		scalar("sortField", &p.SortField),
		scalar("sortDesc", &p.SortDesc),
	}
}

func (p *listParams) paging() query.Paging {
	return query.Paging{Page: derefInt(p.Page), PageSize: derefInt(p.PageSize)}
}

func (p *listParams) sort() query.SortParam {
	return query.SortParam{Field: deref(p.SortField), Descending: p.SortDesc != nil && *p.SortDesc}
}

func parseTextQuery(q url.Values) (query.TextQuery, error) {
	var (
		f                facetParams
		l                listParams
		text, fields     *string
		highlight        *bool
		yearFrom, yearTo *int
	)
	bindings := append(f.bindings(), l.bindings()...)
	bindings = append(bindings,
		scalar("q", &text),
		scalar("searchFields", &fields),
		scalar("highlight", &highlight),
		scalar("interviewYearFrom", &yearFrom),
		scalar("interviewYearTo", &yearTo),
	)
	if err := bindQuery(q, bindings...); err != nil {
		return query.TextQuery{}, err
	}
	return query.TextQuery{
		Text:           deref(text),
		SearchFields:   deref(fields),
		Facets:         f.selection(),
		InterviewYears: query.YearBounds{From: derefInt(yearFrom), To: derefInt(yearTo)},
		Paging:         l.paging(),
		Sort:           l.sort(),
		Highlight:      highlight != nil && *highlight,
	}, nil
}

func parseDateQuery(q url.Values) (query.DateQuery, error) {
	var (
		f            facetParams
		l            listParams
		window, date *string
	)
	bindings := append(f.bindings(), l.bindings()...)
	bindings = append(bindings, scalar("window", &window), scalar("date", &date))
	if err := bindQuery(q, bindings...); err != nil {
		return query.DateQuery{}, err
	}
	g := datewindow.Day
	if window != nil {
		var err error
		if g, err = datewindow.ParseGranularity(*window); err != nil {
			return query.DateQuery{}, err
		}
	}
	return query.DateQuery{
		Window: g,
		Date:   deref(date),
		Facets: f.selection(),
		Paging: l.paging(),
		Sort:   l.sort(),
	}, nil
}

func parseTagQuery(q url.Values) (query.TagQuery, error) {
	var (
		f facetParams
		l listParams
	)
	if err := bindQuery(q, append(f.bindings(), l.bindings()...)...); err != nil {
		return query.TagQuery{}, err
	}
	return query.TagQuery{Facets: f.selection(), Paging: l.paging(), Sort: l.sort()}, nil
}

func parseSelection(q url.Values) (facet.Selection, error) {
	var f facetParams
	if err := bindQuery(q, f.bindings()...); err != nil {
		return facet.Selection{}, err
	}
	return f.selection(), nil
}

func parseIDs(q url.Values) ([]string, error) {
	var ids *[]string
	if err := bindQuery(q, list("ids", &ids)); err != nil {
		return nil, err
	}
	return derefList(ids), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func derefList(l *[]string) []string {
	if l == nil {
		return nil
	}
	return *l
}
