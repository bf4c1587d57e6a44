// Package query composes complete search requests for every supported entity search.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/biosearch/internal/domain"
	"github.com/kailas-cloud/biosearch/internal/domain/datewindow"
	"github.com/kailas-cloud/biosearch/internal/domain/facet"
	"github.com/kailas-cloud/biosearch/internal/domain/search/mode"
	"github.com/kailas-cloud/biosearch/internal/domain/search/odata"
	"github.com/kailas-cloud/biosearch/internal/domain/search/request"
)

// Entity selects the index a request targets.
type Entity string

// Searchable entities.
const (
	Biography Entity = "biography"
	Story     Entity = "story"
)

// DefaultTagFacetCount is requested for tag-frequency counts. It sits far above the
// number of distinct tags so the index returns exact counts instead of sampled ones.
const DefaultTagFacetCount = 1000

// FieldInterviewDate holds the interview date on both indexes.
const FieldInterviewDate = "interviewDate"

// FieldKey is the document key on both indexes.
const FieldKey = "id"

// browseAllSort orders "browse all" biography listings alphabetically.
var browseAllSort = request.Sort{Field: "lastName"}

var (
	defaultBiographyFields = []string{"shortDescription", "lastName", "preferredName", "accession"}
	defaultStoryFields     = []string{"title", "transcript"}

	biographyFacets = []string{
		facet.FieldGender,
		facet.FieldBirthYear + ",interval:10",
		facet.FieldMakerCategories + ",count:50",
		facet.FieldJobTypes + ",count:50",
		facet.FieldLastInitial + ",count:26",
	}
	storyFacets = []string{
		facet.FieldGender,
		facet.FieldBirthYear + ",interval:10",
		facet.FieldMakerCategories + ",count:50",
		facet.FieldJobTypes + ",count:50",
		facet.FieldTags + ",count:50",
	}

	biographySelect = []string{
		FieldKey, "accession", "preferredName", "firstName", "lastName", "shortDescription",
		facet.FieldGender, "birthDate", facet.FieldMakerCategories, facet.FieldJobTypes,
		"imageUrl", "sessionCount",
	}
	storySelect = []string{
		FieldKey, facet.FieldBiographyID, "accession", "title", "sessionOrder", "tapeOrder",
		"storyOrder", "startTime", "duration", facet.FieldTags, FieldInterviewDate,
	}
)

// Config holds the immutable builder settings.
type Config struct {
	MaxPageSize            int
	DefaultPageSize        int
	BiographyDefaultFields []string
	StoryDefaultFields     []string
	HighlightPreTag        string
	HighlightPostTag       string
	TagFacetCount          int
	// StrictFacets rejects facet values outside Vocabulary instead of compiling them.
	StrictFacets bool
	Vocabulary   facet.Vocabulary
}

func (c *Config) applyDefaults() {
	if c.MaxPageSize <= 0 || c.MaxPageSize > request.MaxPageSize {
		c.MaxPageSize = request.MaxPageSize
	}
	if c.DefaultPageSize <= 0 {
		c.DefaultPageSize = min(request.DefaultPageSize, c.MaxPageSize)
	}
	if len(c.BiographyDefaultFields) == 0 {
		c.BiographyDefaultFields = defaultBiographyFields
	}
	if len(c.StoryDefaultFields) == 0 {
		c.StoryDefaultFields = defaultStoryFields
	}
	if c.TagFacetCount <= 0 {
		c.TagFacetCount = DefaultTagFacetCount
	}
}

// Builder composes search requests. It is safe for concurrent use.
type Builder struct {
	cfg      Config
	compiler *facet.Compiler
	dates    *datewindow.Resolver
}

// NewBuilder creates a Builder. A nil compiler compiles without forced facets;
// a nil resolver anchors date windows on the system clock.
func NewBuilder(cfg Config, compiler *facet.Compiler, dates *datewindow.Resolver) *Builder {
	cfg.applyDefaults()
	if compiler == nil {
		compiler, _ = facet.NewCompiler(nil)
	}
	if dates == nil {
		dates = datewindow.NewResolver(nil)
	}
	return &Builder{cfg: cfg, compiler: compiler, dates: dates}
}

// BiographySearch builds a free-text biography search.
// A browse-all query with no explicit sort is ordered by last name.
func (b *Builder) BiographySearch(q TextQuery) (request.Request, error) {
	req, err := b.textRequest(q, b.cfg.BiographyDefaultFields, biographyFacets, biographySelect)
	if err != nil {
		return request.Request{}, err
	}
	if req.Sort == nil && request.IsBrowseAll(q.Text) {
		s := browseAllSort
		req.Sort = &s
	}
	return req, nil
}

// StorySearch builds a free-text story search.
func (b *Builder) StorySearch(q TextQuery) (request.Request, error) {
	return b.textRequest(q, b.cfg.StoryDefaultFields, storyFacets, storySelect)
}

// BiographyBorn builds a "born this day/week/month" biography search.
func (b *Builder) BiographyBorn(q DateQuery) (request.Request, error) {
	if !q.Window.IsValid() {
		return request.Request{}, fmt.Errorf("%w: unknown date window %q", domain.ErrInvalidInput, q.Window)
	}
	ranges, ok := b.dates.Window(q.Window, q.Date)
	if !ok && b.cfg.StrictFacets {
		_, err := datewindow.ParseDate(q.Date)
		return request.Request{}, err
	}
	filter, err := b.compile(q.Facets)
	if err != nil {
		return request.Request{}, err
	}
	page, err := b.page(q.Paging)
	if err != nil {
		return request.Request{}, err
	}
	sort, err := sortParam(q.Sort)
	if err != nil {
		return request.Request{}, err
	}

	return request.Request{
		FreeText:     request.Wildcard,
		Mode:         mode.Any,
		Filter:       odata.And(filter, datewindow.Predicate(ranges)),
		Facets:       biographyFacets,
		Select:       biographySelect,
		Top:          page.Size(),
		Skip:         page.Skip(),
		IncludeCount: true,
		Sort:         sort,
		KeyField:     FieldKey,
	}, nil
}

// StoryByTags builds a story search driven only by facets, typically tags.
func (b *Builder) StoryByTags(q TagQuery) (request.Request, error) {
	filter, err := b.compile(q.Facets)
	if err != nil {
		return request.Request{}, err
	}
	page, err := b.page(q.Paging)
	if err != nil {
		return request.Request{}, err
	}
	sort, err := sortParam(q.Sort)
	if err != nil {
		return request.Request{}, err
	}

	return request.Request{
		FreeText:     request.Wildcard,
		Mode:         mode.Any,
		Filter:       filter,
		Facets:       storyFacets,
		Select:       storySelect,
		Top:          page.Size(),
		Skip:         page.Skip(),
		IncludeCount: true,
		Sort:         sort,
		KeyField:     FieldKey,
	}, nil
}

// ByIDs builds a lookup of the given document IDs. Forced facets still apply.
// Result order is not meaningful; callers reorder by ids.
func (b *Builder) ByIDs(e Entity, ids []string) (request.Request, error) {
	unique := distinct(ids)
	if len(unique) == 0 {
		return request.Request{}, fmt.Errorf("%w: at least one id is required", domain.ErrInvalidInput)
	}
	if len(unique) > b.cfg.MaxPageSize {
		return request.Request{}, fmt.Errorf("%w: at most %d ids per lookup, got %d",
			domain.ErrInvalidInput, b.cfg.MaxPageSize, len(unique))
	}
	for _, id := range unique {
		if strings.Contains(id, odata.InDelimiter) {
			return request.Request{}, fmt.Errorf("%w: id %q contains %q",
				domain.ErrInvalidInput, id, odata.InDelimiter)
		}
	}

	sel := biographySelect
	if e == Story {
		sel = storySelect
	}

	return request.Request{
		FreeText: request.Wildcard,
		Mode:     mode.Any,
		Filter:   odata.And(b.compiler.Compile(facet.Selection{}), odata.In(FieldKey, unique)),
		Select:   sel,
		Top:      len(unique),
		KeyField: FieldKey,
	}, nil
}

// TagCounts builds a zero-document request for exact per-tag story counts.
func (b *Builder) TagCounts(sel facet.Selection) (request.Request, error) {
	filter, err := b.compile(sel)
	if err != nil {
		return request.Request{}, err
	}
	return request.Request{
		FreeText:     request.Wildcard,
		Mode:         mode.Any,
		Filter:       filter,
		Facets:       []string{facet.FieldTags + ",count:" + strconv.Itoa(b.cfg.TagFacetCount)},
		Top:          0,
		IncludeCount: true,
		KeyField:     FieldKey,
	}, nil
}

func (b *Builder) textRequest(
	q TextQuery, defaultFields, facets, sel []string,
) (request.Request, error) {
	filter, err := b.compile(q.Facets)
	if err != nil {
		return request.Request{}, err
	}
	page, err := b.page(q.Paging)
	if err != nil {
		return request.Request{}, err
	}
	sort, err := sortParam(q.Sort)
	if err != nil {
		return request.Request{}, err
	}

	text := strings.TrimSpace(q.Text)
	if text == "" {
		text = request.Wildcard
	}
	if len(text) > request.MaxQueryLength {
		return request.Request{}, fmt.Errorf("%w: query too long (max %d chars)",
			domain.ErrInvalidInput, request.MaxQueryLength)
	}

	fields := facet.SplitList(q.SearchFields)
	if len(fields) == 0 {
		fields = defaultFields
	}

	req := request.Request{
		FreeText:     text,
		SearchFields: fields,
		Mode:         mode.All,
		Filter:       odata.And(filter, interviewYears(q.InterviewYears)),
		Facets:       facets,
		Select:       sel,
		Top:          page.Size(),
		Skip:         page.Skip(),
		IncludeCount: true,
		Sort:         sort,
		KeyField:     FieldKey,
	}
	if q.Highlight && !request.IsBrowseAll(text) {
		req.HighlightFields = fields
		req.HighlightPreTag = b.cfg.HighlightPreTag
		req.HighlightPostTag = b.cfg.HighlightPostTag
	}
	return req, nil
}

// compile applies strict validation when configured, then compiles permissively.
func (b *Builder) compile(sel facet.Selection) (string, error) {
	if b.cfg.StrictFacets {
		if err := facet.Validate(sel, b.cfg.Vocabulary); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrInvalidFacet, err)
		}
	}
	return b.compiler.Compile(sel), nil
}

func (b *Builder) page(p Paging) (request.Page, error) {
	size := p.PageSize
	if size == 0 {
		size = b.cfg.DefaultPageSize
	}
	page, err := request.NewPage(p.Page, size, b.cfg.MaxPageSize)
	if err != nil {
		return request.Page{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	return page, nil
}

func sortParam(s SortParam) (*request.Sort, error) {
	field := strings.TrimSpace(s.Field)
	if field == "" {
		return nil, nil
	}
	if !odata.IsIdentifier(field) {
		return nil, fmt.Errorf("%w: invalid sort field %q", domain.ErrInvalidInput, field)
	}
	return &request.Sort{Field: field, Descending: s.Descending}, nil
}

// interviewYears renders inclusive year bounds on the interview date. Zero is unset.
func interviewYears(y YearBounds) string {
	var parts []string
	if y.From != 0 {
		parts = append(parts, odata.Compare(FieldInterviewDate, odata.OpGe, fmt.Sprintf("%04d-01-01", y.From)))
	}
	if y.To != 0 {
		parts = append(parts, odata.Compare(FieldInterviewDate, odata.OpLe, fmt.Sprintf("%04d-12-31", y.To)))
	}
	return odata.And(parts...)
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
