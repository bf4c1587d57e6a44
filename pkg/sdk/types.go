package biosearch

// Facet names a facet dimension.
type Facet string

// Facet constants.
const (
	FacetGender          Facet = "gender"
	FacetBirthDecade     Facet = "birth_decade"
	FacetMakerCategories Facet = "maker_categories"
	FacetJobTypes        Facet = "job_types"
	FacetLastInitial     Facet = "last_initial"
	FacetParentBiography Facet = "parent_biography"
	FacetTags            Facet = "tags"
)

// Window is the size of a "born in" date window.
type Window string

// Window constants.
const (
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Entity selects the biography or story index.
type Entity string

// Entity constants.
const (
	EntityBiography Entity = "biography"
	EntityStory     Entity = "story"
)

// Facets is a set of optional filters. Zero values are unset.
// Multi-valued facets require every listed value.
type Facets struct {
	Gender          string
	BirthDecade     *int // decade start year, e.g. 1950
	MakerCategories []string
	JobTypes        []string
	LastInitial     string
	ParentBiography string // story facet
	Tags            []string
}

// Paging selects a 1-based page. Zero values take the configured defaults.
type Paging struct {
	Page     int
	PageSize int
}

// Sort is an explicit order. An empty Field keeps relevance order.
type Sort struct {
	Field      string
	Descending bool
}

// TextQuery is a free-text search. Empty or "*" text browses everything.
type TextQuery struct {
	Text              string
	SearchFields      []string
	Facets            Facets
	InterviewYearFrom int
	InterviewYearTo   int
	Paging            Paging
	Sort              Sort
	Highlight         bool
}

// DateQuery finds biographies born in a window around Date (YYYY-MM-DD, blank = today).
type DateQuery struct {
	Window Window
	Date   string
	Facets Facets
	Paging Paging
	Sort   Sort
}

// TagQuery finds stories carrying every tag in Facets.Tags.
type TagQuery struct {
	Facets Facets
	Paging Paging
	Sort   Sort
}

// Document is a single search hit.
type Document struct {
	ID         string
	Score      float64
	Fields     map[string]any
	Highlights map[string][]string
}

// FacetBucket is one facet value and its document count.
type FacetBucket struct {
	Value any
	Count int64
}

// Page is one page of results.
type Page struct {
	Documents  []Document
	Facets     map[string][]FacetBucket
	TotalCount int64
}

// Blob is a stored transcript, image or other document.
type Blob struct {
	Data        []byte
	ContentType string
}
